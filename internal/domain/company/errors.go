package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company not found")
	// ErrInvalidQRCode means no company is registered at the scanned coordinates.
	ErrInvalidQRCode = errors.New("invalid QR code: no company registered at these coordinates")
)
