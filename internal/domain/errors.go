package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrNotAuthorized          = errors.New("not authorized")
	ErrTransport              = errors.New("transport failure")
	ErrEmptyOutput            = errors.New("empty output buffer")
	ErrInvalidExtensionTarget = errors.New("invalid extension target")
	ErrJobStalled             = errors.New("job stalled")
	ErrInvalidInput           = errors.New("invalid input")
)
