package imageproc

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"lookescolar-server/internal/model"
)

const DefaultBatchConcurrency = 3

type BatchItem struct {
	Filename string
	Data     []byte
}

// BatchProcessed : Image строится по Options, Preview заполнен только при BatchOptions.Preview
type BatchProcessed struct {
	OriginalName string
	Hash         string
	Image        *model.ProcessedImage
	Preview      *model.ProcessedImage
}

type BatchDuplicate struct {
	Filename    string
	DuplicateOf string
	Hash        string
}

type BatchError struct {
	Filename string
	Err      error
}

type BatchResult struct {
	Processed  []BatchProcessed
	Duplicates []BatchDuplicate
	Errors     []BatchError
}

type BatchOptions struct {
	Concurrency int
	// Preview : дополнительно к основному проходу строить превью до 300KB
	Preview bool
	Options Options
}

type batchOutcome struct {
	processed *BatchProcessed
	err       error
}

// ProcessImageBatch : дубликаты по sha256 отсеиваются до обработки и ссылаются
// на первое имя с тем же хэшем. Ошибка одного файла не останавливает остальные.
// Запущенную обработку прервать нельзя.
func (p *Pipeline) ProcessImageBatch(items []BatchItem, wm model.WatermarkConfig, opts BatchOptions) BatchResult {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	var result BatchResult
	outcomes := make([]*batchOutcome, len(items))
	firstSeen := make(map[string]string, len(items))

	var group errgroup.Group
	group.SetLimit(concurrency)

	for i, item := range items {
		hash := ContentHash(item.Data)
		if original, ok := firstSeen[hash]; ok {
			result.Duplicates = append(result.Duplicates, BatchDuplicate{
				Filename:    item.Filename,
				DuplicateOf: original,
				Hash:        hash,
			})
			p.logger.WithFields(logrus.Fields{"file": item.Filename, "duplicate_of": original}).Info("дубликат загрузки пропущен")
			continue
		}
		firstSeen[hash] = item.Filename

		i, item := i, item
		group.Go(func() error {
			img, preview, err := p.processItem(item.Data, wm, opts)
			if err != nil {
				outcomes[i] = &batchOutcome{err: err}
				return nil
			}
			outcomes[i] = &batchOutcome{processed: &BatchProcessed{
				OriginalName: item.Filename,
				Hash:         hash,
				Image:        img,
				Preview:      preview,
			}}
			return nil
		})
	}
	_ = group.Wait()

	for i, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		if outcome.err != nil {
			p.logger.WithError(outcome.err).WithField("file", items[i].Filename).Warn("ошибка обработки изображения")
			result.Errors = append(result.Errors, BatchError{Filename: items[i].Filename, Err: outcome.err})
			continue
		}
		result.Processed = append(result.Processed, *outcome.processed)
	}

	return result
}

// processItem : проверка, очистка метаданных, водяной знак по Options и, если
// нужно, превью. Паника декодера превращается в ошибку этого файла.
func (p *Pipeline) processItem(data []byte, wm model.WatermarkConfig, opts BatchOptions) (img, preview *model.ProcessedImage, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, preview = nil, nil
			err = fmt.Errorf("паника при обработке изображения: %v", r)
		}
	}()

	validation := ValidateImageSecurity(data)
	if !validation.Valid {
		return nil, nil, errors.New(validation.Error)
	}

	clean, err := StripImageMetadata(data)
	if err != nil {
		return nil, nil, err
	}

	img, err = p.ProcessImageWithWatermark(clean, wm, opts.Options)
	if err != nil {
		return nil, nil, err
	}
	if !opts.Preview {
		return img, nil, nil
	}

	preview, err = p.ProcessImagePreview(clean, wm)
	if err != nil {
		return nil, nil, err
	}
	return img, preview, nil
}

// ContentHash : sha256 от исходных байт в hex
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
