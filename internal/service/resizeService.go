package service

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/idr4n/image-resizer-go/internal/entity"
	"github.com/idr4n/image-resizer-go/internal/pkg/output"
	"github.com/idr4n/image-resizer-go/internal/pkg/processor"
)

// Resize runs one invocation end to end: decode the input, resolve the
// final dimensions, resample, resolve the output path and format, and write
// the encoded result. Every error is terminal and leaves no output file
// behind.
func (s *resizeService) Resize(req *entity.InvocationRequest) (*entity.Result, error) {
	if req.Width == 0 && req.Height == 0 {
		return nil, entity.ErrMissingDimensions
	}

	file, err := s.storage.Get(req.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", entity.ErrInputNotFile, req.Input)
	}
	defer file.Close()

	img, srcFormat, err := s.processor.Decode(file)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	logrus.WithFields(logrus.Fields{
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
		"format": srcFormat,
	}).Debug("decoded input image")

	width, height, err := processor.ResolveDimensions(bounds.Dx(), bounds.Dy(), req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	resized := s.processor.Resize(img, width, height)

	resolved, err := output.Resolve(req.Input, req.Output, req.Format, srcFormat)
	if err != nil {
		return nil, err
	}

	if !req.Overwrite && s.storage.Exists(resolved.Path) {
		if s.confirm == nil || !s.confirm(resolved.Path) {
			return nil, fmt.Errorf("%w: %q already exists", entity.ErrAborted, resolved.Path)
		}
	}

	var buf bytes.Buffer
	if err := s.processor.Encode(&buf, resized, resolved.Format); err != nil {
		return nil, err
	}

	if err := s.storage.Save(resolved.Path, &buf); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", entity.ErrDirNotFound, resolved.Path)
		}
		return nil, err
	}

	return &entity.Result{
		Width:  width,
		Height: height,
		Format: resolved.Format,
		Path:   resolved.Path,
	}, nil
}
