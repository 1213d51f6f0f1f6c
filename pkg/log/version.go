package log

// Version information for the log module.
const (
	// Version is the current version of the log module.
	Version = "1.1.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	// 1.1.0 added the Trace level to Logger.
	MinCompatibleVersion = "1.1.0"
)
