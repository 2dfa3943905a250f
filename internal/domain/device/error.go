package device

import "errors"

var (
	ErrBridgeUnavailable = errors.New("device bridge unavailable")
	ErrTransferFailed    = errors.New("transfer failed")
)
