package sensors

import "codeberg.org/mutker/syshealth/internal/errors"

const (
	ErrInitFailed     = errors.ErrorCode("sensors_init_failed")
	ErrShutdownFailed = errors.ErrorCode("sensors_shutdown_failed")
	ErrNoDevice       = errors.ErrorCode("sensors_no_device")
	ErrReadFailed     = errors.ErrorCode("sensors_read_failed")
)
