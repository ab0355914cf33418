package service

import (
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"lookescolar-server/internal/imageproc"
	"lookescolar-server/internal/metrics"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/util"
	"path"
	"strings"
	"time"
)

const previewContentType = "image/jpeg"

type batchProcessor interface {
	ProcessImageBatch(items []imageproc.BatchItem, wm model.WatermarkConfig, opts imageproc.BatchOptions) imageproc.BatchResult
}

// PhotoService : превью события с водяным знаком, загрузка в S3 и выдача ссылок
type PhotoService struct {
	pipeline    batchProcessor
	settings    ports.SettingsService
	storage     ports.S3Storage
	concurrency int
	presignTTL  time.Duration
	logger      logrus.FieldLogger
}

func NewPhotoService(pipeline batchProcessor, settings ports.SettingsService, storage ports.S3Storage, concurrency int, presignTTL time.Duration) *PhotoService {
	return &PhotoService{
		pipeline:    pipeline,
		settings:    settings,
		storage:     storage,
		concurrency: concurrency,
		presignTTL:  presignTTL,
		logger:      util.Logger.WithField("service", "photos"),
	}
}

// UploadPreviews : для каждого файла загружает производную по настройкам обработки
// и превью до 300KB. Ошибка отдельного файла, в том числе при загрузке в S3,
// попадает в Errors и не прерывает остальные
func (s *PhotoService) UploadPreviews(ctx context.Context, eventID string, files []model.UploadFile) (*model.UploadResult, error) {
	if !validSegment(eventID) {
		return nil, model.ErrMissingResource
	}
	start := time.Now()

	watermark, err := s.settings.Watermark(ctx)
	if err != nil {
		return nil, err
	}
	processing, err := s.settings.Processing(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]imageproc.BatchItem, 0, len(files))
	for _, file := range files {
		items = append(items, imageproc.BatchItem{Filename: file.Filename, Data: file.Data})
	}

	batch := s.pipeline.ProcessImageBatch(items, watermark.Normalize(), imageproc.BatchOptions{
		Concurrency: s.concurrency,
		Preview:     true,
		Options:     imageproc.Options{MaxDimension: processing.MaxDimension, Quality: processing.Quality},
	})

	result := &model.UploadResult{
		Uploaded:   []model.UploadedPreview{},
		Duplicates: []model.DuplicateUpload{},
		Errors:     []model.UploadError{},
	}
	for _, duplicate := range batch.Duplicates {
		result.Duplicates = append(result.Duplicates, model.DuplicateUpload{
			Filename:    duplicate.Filename,
			DuplicateOf: duplicate.DuplicateOf,
			Hash:        duplicate.Hash,
		})
	}
	for _, failed := range batch.Errors {
		result.Errors = append(result.Errors, model.UploadError{Filename: failed.Filename, Error: failed.Err.Error()})
	}

	uploaded := make([]*model.UploadedPreview, len(batch.Processed))
	uploadErrs := make([]error, len(batch.Processed))

	var group errgroup.Group
	group.SetLimit(s.uploadConcurrency())
	for i, processed := range batch.Processed {
		i, processed := i, processed
		group.Go(func() error {
			watermarkedKey := WatermarkedObjectKey(eventID, processed.Image.Filename)
			if err := s.storage.PutObject(ctx, watermarkedKey, processed.Image.Data, previewContentType); err != nil {
				uploadErrs[i] = err
				return nil
			}
			previewKey := PreviewObjectKey(eventID, processed.Preview.Filename)
			if err := s.storage.PutObject(ctx, previewKey, processed.Preview.Data, previewContentType); err != nil {
				uploadErrs[i] = err
				return nil
			}
			uploaded[i] = &model.UploadedPreview{
				OriginalName: processed.OriginalName,
				Filename:     processed.Preview.Filename,
				ObjectKey:    previewKey,
				Width:        processed.Preview.Width,
				Height:       processed.Preview.Height,
				Size:         processed.Preview.Size,
				Watermarked: model.UploadedVariant{
					Filename:  processed.Image.Filename,
					ObjectKey: watermarkedKey,
					Width:     processed.Image.Width,
					Height:    processed.Image.Height,
					Size:      processed.Image.Size,
				},
			}
			return nil
		})
	}
	_ = group.Wait()

	for i, processed := range batch.Processed {
		if uploadErrs[i] != nil {
			result.Errors = append(result.Errors, model.UploadError{
				Filename: processed.OriginalName,
				Error:    fmt.Sprintf("upload failed: %v", uploadErrs[i]),
			})
			continue
		}
		metrics.PreviewBytes.Observe(float64(uploaded[i].Size))
		result.Uploaded = append(result.Uploaded, *uploaded[i])
	}

	metrics.ImagesProcessed.WithLabelValues("processed").Add(float64(len(result.Uploaded)))
	metrics.ImagesProcessed.WithLabelValues("duplicate").Add(float64(len(result.Duplicates)))
	metrics.ImagesProcessed.WithLabelValues("error").Add(float64(len(result.Errors)))
	metrics.BatchDuration.Observe(time.Since(start).Seconds())

	s.logger.WithFields(logrus.Fields{
		"event_id":   eventID,
		"uploaded":   len(result.Uploaded),
		"duplicates": len(result.Duplicates),
		"errors":     len(result.Errors),
	}).Info("пакет превью обработан")

	return result, nil
}

// PreviewURL : временная ссылка на превью
func (s *PhotoService) PreviewURL(ctx context.Context, eventID, filename string) (string, error) {
	if !validSegment(eventID) || !validSegment(filename) {
		return "", fmt.Errorf("[PhotoService] %w: %q", ErrInvalidPreviewName, filename)
	}
	return s.storage.GeneratePresignedGetURL(ctx, PreviewObjectKey(eventID, filename), s.presignTTL)
}

// DeletePreview : удаляет превью события из хранилища
func (s *PhotoService) DeletePreview(ctx context.Context, eventID, filename string) error {
	if !validSegment(eventID) || !validSegment(filename) {
		return fmt.Errorf("[PhotoService] %w: %q", ErrInvalidPreviewName, filename)
	}
	return s.storage.DeleteObject(ctx, PreviewObjectKey(eventID, filename))
}

func (s *PhotoService) uploadConcurrency() int {
	if s.concurrency <= 0 {
		return imageproc.DefaultBatchConcurrency
	}
	return s.concurrency
}

// WatermarkedObjectKey : events/<event>/watermarked/<file>
func WatermarkedObjectKey(eventID, filename string) string {
	return path.Join("events", eventID, "watermarked", filename)
}

// PreviewObjectKey : events/<event>/previews/<file>
func PreviewObjectKey(eventID, filename string) string {
	return path.Join("events", eventID, "previews", filename)
}

// validSegment : один элемент пути без разделителей и точек в начале
func validSegment(value string) bool {
	return value != "" && !strings.ContainsAny(value, `/\`) && !strings.HasPrefix(value, ".")
}
