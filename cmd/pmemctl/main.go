package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/pmemops/internal/cliconfig"
	logAdapter "github.com/bft-labs/pmemops/pkg/log"
)

const helpDescription = `
Inspect and exercise the persistent-memory flush backends of this host.

Highlights:
  - Reports which of CLWB, CLFLUSHOPT and the non-temporal store widths the CPU offers.
  - Runs a memset/memcpy content check through every backend the host can construct.
  - Fills a mapped file or DAX device and persists it through the chosen backend.

Configure via file ($HOME/.pmemops/config.toml), PMEMOPS_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  pmemctl caps --plan 260
  pmemctl check --backend auto
  pmemctl fill --path /mnt/pmem0/probe --size 64M --char z
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the resolved configuration to the subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	sizeArg string
	log     zerolog.Logger
}

// load applies file and env configuration under the flags the user set, then
// validates the result. Flags win over env, env over the file.
func (c *cli) load(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if changed["size"] {
		n, err := cliconfig.ParseSize(c.sizeArg)
		if err != nil {
			return fmt.Errorf("parse size: %w", err)
		}
		c.cfg.Size = n
	}

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return fmt.Errorf("env config: %w", err)
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	l, err := cliconfig.LoggerWithLevel(c.cfg.LogLevel)
	if err != nil {
		return err
	}
	c.log = l
	c.log.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func (c *cli) adapter() *logAdapter.ZerologAdapter {
	return logAdapter.NewZerologAdapterWithLogger(c.log)
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig(), log: cliconfig.Logger()}

	root := &cobra.Command{
		Use:           "pmemctl",
		Short:         "Inspect and exercise persistent-memory flush backends",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.pmemops/config.toml)")
	pf.StringVar(&c.cfg.Backend, "backend", c.cfg.Backend, "persistence backend: auto, clwb, clflushopt, msync, nopersist")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: trace, debug, info, warn, error")
	pf.BoolVar(&c.cfg.SkipValidation, "skip-validation", c.cfg.SkipValidation, "construct backends without checking CPU support (failures become fatal on first use)")
	pf.BoolVar(&c.cfg.StreamingTail, "streaming-tail", c.cfg.StreamingTail, "let streaming writes finish sub-4-byte remainders with a flushed plain store")
	if err := pf.MarkHidden("skip-validation"); err != nil {
		c.log.Info().Err(err).Msg("failed to hide skip-validation flag")
	}

	root.AddCommand(c.capsCommand(), c.checkCommand(), c.fillCommand())

	if err := root.Execute(); err != nil {
		c.log.Error().Err(err).Msg("pmemctl")
		os.Exit(1)
	}
}
