// Package output derives the destination path and encoding format of a
// resized image from the input path and the optional --output/--format
// arguments.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idr4n/image-resizer-go/internal/entity"
)

// Resolve determines where the resized image is written and in which
// format. format is the explicit --format value (empty when not given);
// fallback is the decoded input format, used when neither the flag nor the
// path extension settles it. The resolver never creates directories: a
// missing parent directory is an error.
func Resolve(input, output string, format, fallback entity.Format) (*entity.ResolvedOutput, error) {
	path, err := resolvePath(input, output, fallback)
	if err != nil {
		return nil, err
	}

	saveFormat := format
	if saveFormat == "" {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if saveFormat, err = entity.ParseFormat(ext); err != nil {
			return nil, fmt.Errorf("%w: cannot infer output format from %q, specify one with --format", entity.ErrUnsupportedFormat, path)
		}
	}

	path = withFormatExtension(path, saveFormat)

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", entity.ErrDirNotFound, dir)
	}

	logrus.WithFields(logrus.Fields{"path": path, "format": saveFormat}).Debug("resolved output")

	return &entity.ResolvedOutput{Path: path, Format: saveFormat}, nil
}

// resolvePath applies the path rules: no output means <stem>_resized next
// to the input; a bare file name is placed in the input's directory; a path
// with a directory component is used as-is; a missing extension inherits
// the input's.
func resolvePath(input, output string, fallback entity.Format) (string, error) {
	inputExt := strings.TrimPrefix(filepath.Ext(input), ".")
	if inputExt == "" {
		inputExt = fallback.Extension()
	}

	if output == "" {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return filepath.Join(filepath.Dir(input), stem+"_resized."+inputExt), nil
	}

	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	switch strings.ToLower(ext) {
	case "jpeg", "jpg", "png":
	case "":
		output += "." + inputExt
	default:
		return "", fmt.Errorf("%w, got %q", entity.ErrBadExtension, ext)
	}

	if filepath.Base(output) == output {
		return filepath.Join(filepath.Dir(input), output), nil
	}
	return filepath.Clean(output), nil
}

// withFormatExtension rewrites the path extension to match the save format.
// An existing jpg/jpeg spelling is kept when the format is jpeg.
func withFormatExtension(path string, format entity.Format) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == entity.JPEG && (ext == "jpg" || ext == "jpeg") {
		return path
	}
	if ext == string(format) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + format.Extension()
}
