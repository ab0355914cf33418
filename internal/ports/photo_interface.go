package ports

import (
	"context"
	"lookescolar-server/internal/model"
)

type PhotoService interface {
	UploadPreviews(ctx context.Context, eventID string, files []model.UploadFile) (*model.UploadResult, error)
	PreviewURL(ctx context.Context, eventID, filename string) (string, error)
	DeletePreview(ctx context.Context, eventID, filename string) error
}
