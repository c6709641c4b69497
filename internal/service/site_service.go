package service

import (
	"context"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
)

// ContentServices набор экранов управления контентом.
type ContentServices struct {
	Profile      *ProfileContent
	Services     *ServiceContent
	Skills       *SkillContent
	Projects     *ProjectContent
	Experiences  *ExperienceContent
	Testimonials *TestimonialContent
	Settings     *SettingContent
}

// SiteService собирает содержимое публичной главной страницы.
type SiteService struct {
	content ContentServices
}

// NewSiteService создаёт сервис публичного сайта.
func NewSiteService(content ContentServices) *SiteService {
	return &SiteService{content: content}
}

// Content читает все разделы сайта через кэш. Отсутствие профиля не считается ошибкой.
func (s *SiteService) Content(ctx context.Context) (*dto.SiteContent, error) {
	out := &dto.SiteContent{Settings: map[string]string{}}

	profile, err := s.content.Profile.Single(ctx)
	switch {
	case err == nil:
		out.Profile = profile
	case !apperror.IsNotFound(err):
		return nil, err
	}

	if out.Services, err = s.content.Services.List(ctx); err != nil {
		return nil, err
	}
	if out.Skills, err = s.content.Skills.List(ctx); err != nil {
		return nil, err
	}
	if out.Projects, err = s.content.Projects.List(ctx); err != nil {
		return nil, err
	}
	if out.Experiences, err = s.content.Experiences.List(ctx); err != nil {
		return nil, err
	}
	if out.Testimonials, err = s.content.Testimonials.List(ctx); err != nil {
		return nil, err
	}

	settings, err := s.content.Settings.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, setting := range settings {
		out.Settings[setting.Key] = setting.Value
	}

	return out, nil
}
