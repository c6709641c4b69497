package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository/common"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// EntityStore описывает зависимости ContentService от слоя хранилища.
type EntityStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, fields map[string]any) (*T, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObjectUploader загружает файлы в объектное хранилище.
type ObjectUploader interface {
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error)
}

// FileUpload файл, приложенный к черновику.
type FileUpload struct {
	// Field поле черновика, в которое попадёт адрес файла.
	Field    string
	Filename string
	Content  io.Reader
}

// ContentConfig описывает отличия одного экрана управления контентом от другого.
type ContentConfig[T any, D dto.Draft] struct {
	// Name имя сущности, оно же ключ кэша.
	Name     string
	NewDraft func() D
	ToDraft  func(*T) D
	Less     func(a, b *T) bool
	// Assets поля черновика, принимающие файлы, и их бакеты.
	Assets map[string]string
}

// SubmitResult результат сохранения черновика.
type SubmitResult[T any, D dto.Draft] struct {
	Item  *T
	Draft D
}

// ContentService контроллер экрана управления сущностью:
// список, черновик формы, сохранение с загрузкой файлов и удаление с подтверждением.
type ContentService[T any, D dto.Draft] struct {
	store    EntityStore[T]
	uploader ObjectUploader
	cache    *QueryCache
	cfg      ContentConfig[T, D]
	now      func() time.Time
}

// NewContentService создаёт контроллер экрана.
func NewContentService[T any, D dto.Draft](store EntityStore[T], uploader ObjectUploader, cache *QueryCache, cfg ContentConfig[T, D]) *ContentService[T, D] {
	return &ContentService[T, D]{
		store:    store,
		uploader: uploader,
		cache:    cache,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Name возвращает имя сущности.
func (s *ContentService[T, D]) Name() string {
	return s.cfg.Name
}

// List возвращает записи в порядке отображения. Результат кэшируется по имени сущности.
func (s *ContentService[T, D]) List(ctx context.Context) ([]T, error) {
	items, err := cachedList(ctx, s.cache, s.cfg.Name, func(ctx context.Context) ([]T, error) {
		items, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.cfg.Less != nil {
			sort.SliceStable(items, func(i, j int) bool { return s.cfg.Less(&items[i], &items[j]) })
		}
		return items, nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return items, nil
}

// Single возвращает первую запись списка. Используется для профиля.
func (s *ContentService[T, D]) Single(ctx context.Context) (*T, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.ErrEntityNotFound
	}
	item := items[0]
	return &item, nil
}

// Get возвращает запись по идентификатору.
func (s *ContentService[T, D]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return item, nil
}

// NewDraft возвращает пустой черновик для создания записи.
func (s *ContentService[T, D]) NewDraft() D {
	return s.cfg.NewDraft()
}

// EditDraft загружает запись и переводит её в черновик формы.
func (s *ContentService[T, D]) EditDraft(ctx context.Context, id uuid.UUID) (D, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		var zero D
		return zero, err
	}
	return s.cfg.ToDraft(item), nil
}

// Submit проверяет черновик, загружает приложенные файлы и сохраняет запись.
// Если загрузка файла не удалась, запись не выполняется.
func (s *ContentService[T, D]) Submit(ctx context.Context, draft D, uploads []FileUpload) (*SubmitResult[T, D], error) {
	if p, ok := any(draft).(dto.Preparer); ok {
		p.Prepare()
	}
	if err := draft.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	for _, upload := range uploads {
		if err := s.attach(ctx, draft, upload); err != nil {
			return nil, err
		}
	}

	var (
		item *T
		err  error
	)
	if id, ok := draft.DraftID(); ok {
		fields := draft.Fields()
		if partial, ok := any(draft).(dto.UpdateFielder); ok {
			fields = partial.UpdateFields()
		}
		item, err = s.store.Update(ctx, id, fields)
	} else {
		item, err = s.store.Create(ctx, draft.Fields())
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.cache.Invalidate(s.cfg.Name)

	return &SubmitResult[T, D]{Item: item, Draft: s.cfg.NewDraft()}, nil
}

// attach загружает файл в бакет поля и записывает его адрес в черновик.
func (s *ContentService[T, D]) attach(ctx context.Context, draft D, upload FileUpload) error {
	bucket, ok := s.cfg.Assets[upload.Field]
	if !ok {
		return apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("поле %s не принимает файлы", upload.Field))
	}

	objectPath := fmt.Sprintf("%d-%s", s.now().UnixMilli(), storage.SanitizeFilename(upload.Filename))
	url, err := s.uploader.Upload(ctx, bucket, objectPath, upload.Content)
	if err != nil {
		logger.Component("content").WithFields(map[string]interface{}{
			"entity": s.cfg.Name,
			"bucket": bucket,
			"file":   upload.Filename,
		}).WithError(err).Warn("загрузка файла не удалась")
		return apperror.Wrap(err, apperror.ErrCodeUploadFailed, uploadMessage(upload.Filename, err))
	}

	draft.AttachAsset(upload.Field, url)
	return nil
}

// Delete удаляет запись только после подтверждения.
func (s *ContentService[T, D]) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return apperror.ErrConfirmationRequired
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	s.cache.Invalidate(s.cfg.Name)
	return nil
}

func uploadMessage(filename string, err error) string {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return fmt.Sprintf("файл %s: неподдерживаемый тип", filename)
	case errors.Is(err, storage.ErrFileTooLarge):
		return fmt.Sprintf("файл %s превышает допустимый размер", filename)
	default:
		return fmt.Sprintf("не удалось загрузить файл %s", filename)
	}
}

// mapStoreError переводит ошибки репозиториев в ошибки приложения.
func mapStoreError(err error) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, common.ErrNotFound):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, apperror.ErrEntityNotFound.Message)
	case errors.Is(err, common.ErrAlreadyExists):
		return apperror.Wrap(err, apperror.ErrCodeConflict, apperror.ErrEntityExists.Message)
	case errors.Is(err, common.ErrUnknownColumn), errors.Is(err, common.ErrInvalidInput):
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректные данные записи")
	default:
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "ошибка хранилища данных")
	}
}
