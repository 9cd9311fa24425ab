// Package cli defines the command-line surface of image-resizer and turns
// flags into a validated invocation request.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idr4n/image-resizer-go/config"
	"github.com/idr4n/image-resizer-go/internal/entity"
	"github.com/idr4n/image-resizer-go/internal/pkg/processor"
	"github.com/idr4n/image-resizer-go/internal/pkg/storage"
	"github.com/idr4n/image-resizer-go/internal/service"
)

func NewRootCmd() *cobra.Command {
	var (
		width     int
		height    int
		format    string
		output    string
		overwrite bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:           "image-resizer <input_file>",
		Short:         "Resizes JPEG and PNG images based on provided dimensions",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], width, height, format, output, overwrite, verbose)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "W", 0, "new width of the image, required if --height not provided")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "new height of the image, required if --width not provided")
	cmd.Flags().StringVarP(&format, "format", "F", "", "output image format (jpeg or png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "absolute or relative output path; a bare file name is placed next to the input image")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing output file without asking")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, input string, width, height int, format, output string, overwrite, verbose bool) error {
	v, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return err
	}
	setupLogger(cfg, verbose)

	req, err := buildRequest(input, width, height, format, output, overwrite)
	if err != nil {
		return err
	}

	fileStorage := storage.NewFileStorage()
	imgProcessor := processor.NewImageProcessor(cfg.Resize.Filter, cfg.Encoder.JPEGQuality)
	resizeService := service.NewResizeService(fileStorage, imgProcessor, confirmOverwrite(cmd))

	result, err := resizeService.Resize(req)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Image resized and saved!")
	fmt.Fprintf(cmd.OutOrStdout(), "New dimensions: %dx%d\n", result.Width, result.Height)
	fmt.Fprintf(cmd.OutOrStdout(), "Format: %s\n", result.Format)
	fmt.Fprintf(cmd.OutOrStdout(), "Output path: %s\n", result.Path)
	return nil
}

func buildRequest(input string, width, height int, formatName, output string, overwrite bool) (*entity.InvocationRequest, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w, got %dx%d", entity.ErrInvalidDimension, width, height)
	}
	if width == 0 && height == 0 {
		return nil, entity.ErrMissingDimensions
	}

	info, err := os.Stat(input)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInputNotFile, input)
	}
	if err := sniffImage(input); err != nil {
		return nil, err
	}

	var format entity.Format
	if formatName != "" {
		if format, err = entity.ParseFormat(formatName); err != nil {
			return nil, err
		}
	}

	return &entity.InvocationRequest{
		Input:     input,
		Width:     width,
		Height:    height,
		Format:    format,
		Output:    output,
		Overwrite: overwrite,
	}, nil
}

// sniffImage checks the file's leading bytes before the whole file is read,
// so a non-image input fails fast with a clear message.
func sniffImage(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %q", entity.ErrInputNotFile, path)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: %q", entity.ErrNotAnImage, path)
	}

	switch http.DetectContentType(buffer[:n]) {
	case "image/jpeg", "image/png":
		return nil
	default:
		return fmt.Errorf("%w: %q", entity.ErrNotAnImage, path)
	}
}

func confirmOverwrite(cmd *cobra.Command) service.ConfirmFunc {
	return func(path string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%q already exists. Do you want to replace it? (y/n): ", path)

		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}

func setupLogger(cfg *config.Config, verbose bool) {
	if cfg.Log.Format == "json" {
		logrus.SetFormatter(new(logrus.JSONFormatter))
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}
