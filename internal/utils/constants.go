package utils

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

const (
	// ConfigFileName is the name of the defaults file looked up in the working directory.
	ConfigFileName = ".codic.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global defaults.
	GlobalConfigDirectoryName = ".codic"
	// GlobalConfigFileName is the global defaults file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
)
