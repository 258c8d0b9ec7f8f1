package utils

// LoggerInitializationFailedMessageFormat wraps logger construction failures
// raised before any logging is possible.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command failures.
const ApplicationExecutionFailedMessage = "Application execution failed"
