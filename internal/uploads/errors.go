package uploads

import "errors"

var (
	// ErrMissingFile means the request carried no usable file part.
	ErrMissingFile = errors.New("no file received")
	// ErrFileTooLarge means the file part exceeds the configured ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrWriteFailure wraps storage errors.
	ErrWriteFailure = errors.New("write failed")
)
