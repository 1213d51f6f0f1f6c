package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bft-labs/pmemops/internal/mapping"
	"github.com/bft-labs/pmemops/internal/selfcheck"
	"github.com/bft-labs/pmemops/pkg/pmem"
)

func (c *cli) capsCommand() *cobra.Command {
	var plan int

	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print detected CPU capabilities and the preferred backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := pmem.DetectCapabilities()
			out := cmd.OutOrStdout()

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "instructions\t%s\n", strings.Join(caps.Instructions(), " "))
			fmt.Fprintf(w, "stream widths\t%v\n", caps.StreamWidths())
			fmt.Fprintf(w, "preferred\t%s\n", pmem.PreferredKind(caps))
			fmt.Fprintf(w, "available\t%v\n", pmem.Available(caps))
			if err := w.Flush(); err != nil {
				return err
			}

			if plan > 0 {
				chunks, rest := pmem.PlanChunks(plan, caps.StreamWidths())
				fmt.Fprintf(out, "plan %d: chunks=%v rest=%d\n", plan, chunks, rest)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&plan, "plan", 0, "show how a streaming write of this many bytes is split")
	return cmd
}

func (c *cli) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the memset/memcpy content check against host backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := pmem.DetectCapabilities()

			var kinds []pmem.Kind
			if c.cfg.Backend == "auto" {
				kinds = pmem.Available(caps)
			} else {
				k, err := c.cfg.Kind(caps)
				if err != nil {
					return err
				}
				kinds = []pmem.Kind{k}
			}

			var failed []error
			for _, k := range kinds {
				ops, err := pmem.New(k, c.cfg.BackendOptions(c.adapter())...)
				if err != nil {
					failed = append(failed, err)
					c.log.Error().Err(err).Str("backend", k.String()).Msg("construct backend")
					continue
				}

				res, err := selfcheck.Run(ops, selfcheck.DefaultSize, selfcheck.DefaultChar)
				if err != nil {
					failed = append(failed, err)
					c.log.Error().Err(err).Str("backend", k.String()).Int("diffs", res.Diffs).Msg("check failed")
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s ok (%d bytes of %q)\n", res.Backend, res.Size, res.Char)
			}
			return errors.Join(failed...)
		},
	}
}

func (c *cli) fillCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a mapped file or DAX device and persist it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if c.cfg.Path == "" {
				return fmt.Errorf("fill: --path is required")
			}

			kind, err := c.cfg.Kind(pmem.DetectCapabilities())
			if err != nil {
				return err
			}
			ops, err := pmem.New(kind, c.cfg.BackendOptions(c.adapter())...)
			if err != nil {
				return fmt.Errorf("create backend: %w", err)
			}

			region, err := mapping.Open(c.cfg.Path, c.cfg.Size)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := region.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			ops.Memset(region.Bytes(), c.cfg.FillByte())

			c.log.Info().
				Str("path", region.Path()).
				Int("bytes", region.Len()).
				Str("backend", ops.Kind().String()).
				Str("char", string(c.cfg.FillByte())).
				Msg("filled and persisted")
			return nil
		},
	}
	cmd.Flags().StringVar(&c.cfg.Path, "path", c.cfg.Path, "file or DAX device to map")
	cmd.Flags().StringVar(&c.sizeArg, "size", "", "bytes to map, with optional K/M/G suffix (default: 1M, or the file size when 0)")
	cmd.Flags().StringVar(&c.cfg.Char, "char", c.cfg.Char, "fill byte")
	return cmd
}
