package service

import (
	"github.com/idr4n/image-resizer-go/internal/entity"
	"github.com/idr4n/image-resizer-go/internal/pkg/processor"
	"github.com/idr4n/image-resizer-go/internal/pkg/storage"
)

// ConfirmFunc asks whether an existing file at path may be replaced.
type ConfirmFunc func(path string) bool

type ResizeService interface {
	Resize(req *entity.InvocationRequest) (*entity.Result, error)
}

type resizeService struct {
	storage   storage.FileStorage
	processor processor.ImageProcessor
	confirm   ConfirmFunc
}

func NewResizeService(storage storage.FileStorage, processor processor.ImageProcessor, confirm ConfirmFunc) ResizeService {
	return &resizeService{
		storage:   storage,
		processor: processor,
		confirm:   confirm,
	}
}
