package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// ObjectStore загрузка и удаление объектов в бакетах.
type ObjectStore interface {
	ObjectUploader
	Delete(ctx context.Context, bucket, objectPath string) error
}

// MediaService загрузка изображений из форм админки вне сохранения черновика.
type MediaService struct {
	store ObjectStore
	now   func() time.Time
}

// NewMediaService создаёт сервис.
func NewMediaService(store ObjectStore) *MediaService {
	return &MediaService{store: store, now: time.Now}
}

// MediaObject загруженный объект.
type MediaObject struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

// Upload сохраняет файл под именем <unix-millis>-<имя файла> и возвращает публичный адрес.
func (s *MediaService) Upload(ctx context.Context, bucket, filename string, r io.Reader) (*MediaObject, error) {
	if err := checkBucket(bucket); err != nil {
		return nil, err
	}

	objectPath := fmt.Sprintf("%d-%s", s.now().UnixMilli(), storage.SanitizeFilename(filename))
	url, err := s.store.Upload(ctx, bucket, objectPath, r)
	if err != nil {
		logger.Component("media").WithFields(map[string]interface{}{
			"bucket": bucket,
			"file":   filename,
		}).WithError(err).Warn("загрузка файла не удалась")
		return nil, apperror.Wrap(err, apperror.ErrCodeUploadFailed, uploadMessage(filename, err))
	}

	return &MediaObject{Bucket: bucket, Path: objectPath, URL: url}, nil
}

// Delete удаляет объект из бакета.
func (s *MediaService) Delete(ctx context.Context, bucket, objectPath string) error {
	if err := checkBucket(bucket); err != nil {
		return err
	}

	objectPath = strings.TrimPrefix(objectPath, "/")
	if err := s.store.Delete(ctx, bucket, objectPath); err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректный путь файла")
		}
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить файл")
	}
	return nil
}

func checkBucket(bucket string) error {
	if _, ok := models.ValidBuckets[bucket]; !ok {
		return apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("неизвестный бакет %s", bucket))
	}
	return nil
}
