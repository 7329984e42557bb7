package entity

import "errors"

var (
	// Dataset errors
	ErrDatasetUnavailable = errors.New("dataset is not loaded")
	ErrMissingColumn      = errors.New("dataset is missing a required column")
	ErrUnknownChart       = errors.New("unknown chart")

	// Image errors
	ErrDecode                  = errors.New("file is not a valid image")
	ErrUnsupportedFormat       = errors.New("unsupported image format, expected JPEG or PNG")
	ErrUnknownVariant          = errors.New("unknown image variant")
	ErrDefaultImageUnavailable = errors.New("default image is not loaded")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
