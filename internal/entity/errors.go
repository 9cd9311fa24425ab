package entity

import "errors"

var (
	// Validation errors
	ErrMissingDimensions = errors.New("at least one of width or height must be specified")
	ErrInvalidDimension  = errors.New("width and height must be positive")
	ErrInputNotFile      = errors.New("input path does not exist or is not a file")
	ErrNotAnImage        = errors.New("input file is not a recognized image")
	ErrBadExtension      = errors.New("output extension must be jpeg, jpg, png or empty")
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// Pipeline errors
	ErrDecode     = errors.New("cannot decode image")
	ErrEmptyImage = errors.New("image has no pixels")
	ErrEncode     = errors.New("cannot encode image")

	// Path errors
	ErrDirNotFound = errors.New("output directory cannot be found")

	// ErrAborted is returned when the user declines to replace an existing
	// output file.
	ErrAborted = errors.New("operation cancelled")
)
