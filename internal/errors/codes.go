package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrNotImplemented  ErrorCode = "not_implemented"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "invalid_configuration"
	ErrMissingConfig ErrorCode = "missing_configuration"
	ErrBindFlags     ErrorCode = "bind_flags_failed"
	ErrReadConfig    ErrorCode = "read_config_failed"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Collection errors
	ErrAccessDenied     ErrorCode = "access_denied"
	ErrProviderNotFound ErrorCode = "provider_not_found"
	ErrCollectTimeout   ErrorCode = "collection_timeout"
	ErrCollectFailed    ErrorCode = "collection_failed"
	ErrInvalidReading   ErrorCode = "invalid_reading"

	// Scan input errors
	ErrReadScan  ErrorCode = "read_scan_failed"
	ErrParseScan ErrorCode = "parse_scan_failed"

	// Scoring errors
	ErrComputeScore ErrorCode = "compute_score_failed"
	ErrWriteReport  ErrorCode = "write_report_failed"

	// Operation errors
	ErrOperationFailed  ErrorCode = "operation_failed"
	ErrTimeout          ErrorCode = "operation_timeout"
	ErrInvalidOperation ErrorCode = "invalid_operation"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrNotImplemented:   "Operation not implemented",
	ErrUnavailable:      "Service unavailable",
	ErrInvalidConfig:    "Invalid configuration",
	ErrMissingConfig:    "Missing configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrReadConfig:       "Failed to read configuration",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInitFailed:       "Initialization failed",
	ErrShutdownFailed:   "Shutdown failed",
	ErrAlreadyRunning:   "Another instance is already running",
	ErrAccessDenied:     "Access denied by the operating system",
	ErrProviderNotFound: "Event provider not found",
	ErrCollectTimeout:   "Collection timed out",
	ErrCollectFailed:    "Collection failed",
	ErrInvalidReading:   "Reading outside physically plausible range",
	ErrReadScan:         "Failed to read scan file",
	ErrParseScan:        "Failed to parse scan file",
	ErrComputeScore:     "Failed to compute health score",
	ErrWriteReport:      "Failed to write report",
	ErrOperationFailed:  "Operation failed",
	ErrTimeout:          "Operation timed out",
	ErrInvalidOperation: "Invalid operation",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
