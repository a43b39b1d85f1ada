package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInsufficientRole        = errors.New("insufficient role for this action")
	ErrVerificationNotFound    = errors.New("verification not found")
	ErrInvalidPayload          = errors.New("document payload does not match expected format")
	ErrUnsupportedKind         = errors.New("unsupported document kind")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrInvalidAmount           = errors.New("amount must be a non-negative number")
	ErrSnapshotUnavailable     = errors.New("no archived snapshot for this verification")
	ErrArchiveFailed           = errors.New("snapshot upload to storage failed")
)
