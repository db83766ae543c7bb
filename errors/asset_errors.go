// errors/asset_errors.go
package errors

import "errors"

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrStorageUnavailable = errors.New("object storage unavailable")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
)
