package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

var (
	// ErrBucketNotFound возвращается, если каталог бакета отсутствует.
	ErrBucketNotFound = errors.New("storage: бакет не найден")
	// ErrFileTooLarge возвращается, если файл превышает лимит.
	ErrFileTooLarge = errors.New("storage: размер файла превышает лимит")
	// ErrUnsupportedType возвращается, если содержимое файла не разрешено для бакета.
	ErrUnsupportedType = errors.New("storage: неподдерживаемый тип файла")
	// ErrInvalidPath возвращается для пустых путей и попыток выйти за пределы бакета.
	ErrInvalidPath = errors.New("storage: некорректный путь")
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorage хранит файлы в бакетах. Бакет это подкаталог корня хранилища.
type ObjectStorage struct {
	rootPath       string
	publicBaseURL  string
	maxUploadBytes int64
	allowed        map[string]map[string]bool
}

// NewObjectStorage создаёт хранилище. Корневой каталог создаётся при необходимости.
func NewObjectStorage(rootPath, publicBaseURL string, maxUploadMB int64) (*ObjectStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &ObjectStorage{
		rootPath:       rootPath,
		publicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		allowed:        make(map[string]map[string]bool),
	}, nil
}

// Root возвращает корневой каталог хранилища.
func (s *ObjectStorage) Root() string {
	return s.rootPath
}

// AllowTypes задаёт MIME типы для бакета. Без вызова бакет принимает изображения.
func (s *ObjectStorage) AllowTypes(bucket string, mimeTypes ...string) {
	set := make(map[string]bool, len(mimeTypes))
	for _, t := range mimeTypes {
		set[t] = true
	}
	s.allowed[bucket] = set
}

// EnsureBuckets создаёт каталоги бакетов. В production бакеты создаются вручную.
func (s *ObjectStorage) EnsureBuckets(buckets ...string) error {
	for _, bucket := range buckets {
		if err := os.MkdirAll(filepath.Join(s.rootPath, bucket), 0o755); err != nil {
			return fmt.Errorf("storage: не удалось создать бакет %s: %w", bucket, err)
		}
	}
	return nil
}

// BucketExists сообщает, существует ли бакет.
func (s *ObjectStorage) BucketExists(ctx context.Context, bucket string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(filepath.Join(s.rootPath, bucket))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: не удалось проверить бакет %s: %w", bucket, err)
	}
	return info.IsDir(), nil
}

// Upload сохраняет файл в бакет по пути objectPath и возвращает публичный URL.
// Существующий объект с тем же путём перезаписывается.
func (s *ObjectStorage) Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}

	exists, err := s.BucketExists(ctx, bucket)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	if err := s.checkType(bucket, head); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог: %w", err)
	}

	// Каждая загрузка пишет в свой временный файл, rename атомарно заменяет объект.
	f, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	tempPath := f.Name()
	defer f.Close()

	limited := io.LimitedReader{R: br, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("%w (%d байт)", ErrFileTooLarge, s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: не удалось выставить права файла: %w", err)
	}
	if err := os.Rename(tempPath, target); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return s.PublicURL(bucket, objectPath), nil
}

// Delete удаляет объект. Отсутствующий объект не считается ошибкой.
func (s *ObjectStorage) Delete(ctx context.Context, bucket, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// PublicURL возвращает адрес, по которому объект раздаётся публично.
func (s *ObjectStorage) PublicURL(bucket, objectPath string) string {
	return s.publicBaseURL + "/" + path.Join(bucket, strings.TrimLeft(filepath.ToSlash(objectPath), "/"))
}

// resolve переводит путь объекта в путь на диске, не выпуская его за пределы бакета.
func (s *ObjectStorage) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return "", fmt.Errorf("%w: бакет %q", ErrInvalidPath, bucket)
	}

	clean := path.Clean("/" + filepath.ToSlash(objectPath))
	if clean == "/" {
		return "", fmt.Errorf("%w: пустой путь", ErrInvalidPath)
	}
	return filepath.Join(s.rootPath, bucket, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// checkType сверяет магические байты файла со списком разрешённых типов бакета.
func (s *ObjectStorage) checkType(bucket string, head []byte) error {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return fmt.Errorf("%w: не удалось определить тип", ErrUnsupportedType)
	}

	allowed, ok := s.allowed[bucket]
	if !ok {
		allowed = imageTypes
	}
	if !allowed[kind.MIME.Value] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, kind.MIME.Value)
	}
	return nil
}

// SanitizeFilename удаляет из имени файла разделители пути и пробелы.
func SanitizeFilename(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.Join(strings.Fields(name), "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
