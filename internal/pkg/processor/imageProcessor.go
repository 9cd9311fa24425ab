package processor

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/idr4n/image-resizer-go/internal/entity"
)

type ImageProcessor interface {
	Decode(r io.Reader) (image.Image, entity.Format, error)
	Resize(img image.Image, width, height int) image.Image
	Encode(w io.Writer, img image.Image, format entity.Format) error
}

type imageProcessor struct {
	filterName  string
	filter      imaging.ResampleFilter
	jpegQuality int
}

func NewImageProcessor(filterName string, jpegQuality int) ImageProcessor {
	return &imageProcessor{
		filterName:  filterName,
		filter:      filterByName(filterName),
		jpegQuality: jpegQuality,
	}
}

// ResolveDimensions computes the final output dimensions from the source
// dimensions and the requested ones (0 means not requested). When only one
// dimension is requested the other is derived from the source aspect ratio,
// rounded to the nearest pixel and clamped to at least 1.
func ResolveDimensions(srcWidth, srcHeight, reqWidth, reqHeight int) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", entity.ErrEmptyImage, srcWidth, srcHeight)
	}

	switch {
	case reqWidth > 0 && reqHeight > 0:
		return reqWidth, reqHeight, nil
	case reqWidth > 0:
		height := math.Round(float64(reqWidth) * float64(srcHeight) / float64(srcWidth))
		return reqWidth, atLeastOne(height), nil
	case reqHeight > 0:
		width := math.Round(float64(reqHeight) * float64(srcWidth) / float64(srcHeight))
		return atLeastOne(width), reqHeight, nil
	default:
		return 0, 0, entity.ErrMissingDimensions
	}
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

func (p *imageProcessor) Decode(r io.Reader) (image.Image, entity.Format, error) {
	img, formatName, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	format, err := entity.ParseFormat(formatName)
	if err != nil {
		return nil, "", fmt.Errorf("%w: input format %q", entity.ErrDecode, formatName)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, "", entity.ErrEmptyImage
	}

	return img, format, nil
}

func (p *imageProcessor) Resize(img image.Image, width, height int) image.Image {
	logrus.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"filter": p.filterName,
	}).Debug("resampling image")

	return imaging.Resize(img, width, height, p.filter)
}

func (p *imageProcessor) Encode(w io.Writer, img image.Image, format entity.Format) error {
	switch format {
	case entity.JPEG:
		if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(p.jpegQuality)); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrEncode, err)
		}
	case entity.PNG:
		if err := imaging.Encode(w, img, imaging.PNG); err != nil {
			return fmt.Errorf("%w: %v", entity.ErrEncode, err)
		}
	default:
		return fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, format)
	}
	return nil
}

func filterByName(name string) imaging.ResampleFilter {
	switch name {
	case "nearest":
		return imaging.NearestNeighbor
	case "box":
		return imaging.Box
	case "linear":
		return imaging.Linear
	case "catmullrom":
		return imaging.CatmullRom
	case "lanczos":
		return imaging.Lanczos
	default:
		logrus.Warnf("Unknown resample filter %q, using lanczos", name)
		return imaging.Lanczos
	}
}
