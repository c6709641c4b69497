package service

import (
	"context"
	"strings"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// VisitStore сохраняет просмотры страниц.
type VisitStore interface {
	Create(ctx context.Context, visit *models.SiteVisit) error
}

// VisitService учитывает просмотры публичного сайта.
type VisitService struct {
	repo VisitStore
}

// NewVisitService создаёт сервис учёта просмотров.
func NewVisitService(repo VisitStore) *VisitService {
	return &VisitService{repo: repo}
}

// Record сохраняет просмотр страницы. Пустые referrer и user agent хранятся как NULL.
func (s *VisitService) Record(ctx context.Context, req dto.VisitRequest) error {
	page := strings.TrimSpace(req.Page)
	if err := validation.ValidateRequired("страница", page, validation.MaxExternalURLLength); err != nil {
		return apperror.Validation(err)
	}

	visit := &models.SiteVisit{
		Page:      page,
		Referrer:  trimmedOrNil(req.Referrer),
		UserAgent: trimmedOrNil(req.UserAgent),
	}
	if err := s.repo.Create(ctx, visit); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
