package reportstore

import "codeberg.org/mutker/syshealth/internal/errors"

const (
	// Configuration errors
	ErrInvalidConfig = errors.ErrorCode("reportstore_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("reportstore_invalid_db_path")

	// Storage errors
	ErrStorageInit   = errors.ErrorCode("reportstore_storage_init_failed")
	ErrStorageAccess = errors.ErrorCode("reportstore_storage_access_failed")
	ErrStorageClose  = errors.ErrorCode("reportstore_storage_close_failed")
	ErrEncodeReport  = errors.ErrorCode("reportstore_encode_report_failed")
	ErrDecodeReport  = errors.ErrorCode("reportstore_decode_report_failed")
	ErrNoReport      = errors.ErrorCode("reportstore_no_report")

	// Operation errors
	ErrInvalidReport    = errors.ErrorCode("reportstore_invalid_report")
	ErrOperationTimeout = errors.ErrorCode("reportstore_operation_timeout")
	ErrServiceShutdown  = errors.ErrorCode("reportstore_shutdown_failed")
)
