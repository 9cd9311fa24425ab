package entity

import (
	"fmt"
	"strings"
)

// Format is an output image format supported by the tool.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
)

// ParseFormat maps a user-supplied format name or file extension onto a
// supported Format. "jpg" is an alias for jpeg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the canonical file extension for the format, without
// the leading dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

func (f Format) String() string {
	return string(f)
}

// InvocationRequest carries the validated arguments of a single invocation.
// Width and Height are in pixels; 0 means not requested. At least one of
// them must be set.
type InvocationRequest struct {
	Input     string
	Width     int
	Height    int
	Format    Format // empty: keep the format implied by the output path
	Output    string // empty: <stem>_resized next to the input file
	Overwrite bool
}

// ResolvedOutput is the final destination of the encoded image, derived
// once per invocation.
type ResolvedOutput struct {
	Path   string
	Format Format
}

// Result describes the image that was written.
type Result struct {
	Width  int
	Height int
	Format Format
	Path   string
}
