package service

import (
	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

type (
	ProfileContent     = ContentService[models.Profile, *dto.ProfileDraft]
	ServiceContent     = ContentService[models.Service, *dto.ServiceDraft]
	SkillContent       = ContentService[models.Skill, *dto.SkillDraft]
	ProjectContent     = ContentService[models.Project, *dto.ProjectDraft]
	ExperienceContent  = ContentService[models.Experience, *dto.ExperienceDraft]
	TestimonialContent = ContentService[models.Testimonial, *dto.TestimonialDraft]
	SettingContent     = ContentService[models.SiteSetting, *dto.SettingDraft]
)

// NewProfileContent создаёт экран профиля. Аватар и резюме хранятся в отдельных бакетах.
func NewProfileContent(store EntityStore[models.Profile], uploader ObjectUploader, cache *QueryCache) *ProfileContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.Profile, *dto.ProfileDraft]{
		Name:     models.TableProfiles,
		NewDraft: func() *dto.ProfileDraft { return &dto.ProfileDraft{} },
		ToDraft:  dto.ProfileDraftFrom,
		Less:     func(a, b *models.Profile) bool { return a.CreatedAt.Before(b.CreatedAt) },
		Assets: map[string]string{
			"avatar_url": models.BucketAvatars,
			"resume_url": models.BucketResumes,
		},
	})
}

// NewServiceContent создаёт экран услуг.
func NewServiceContent(store EntityStore[models.Service], uploader ObjectUploader, cache *QueryCache) *ServiceContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.Service, *dto.ServiceDraft]{
		Name:     models.TableServices,
		NewDraft: func() *dto.ServiceDraft { return &dto.ServiceDraft{} },
		ToDraft:  dto.ServiceDraftFrom,
		Less:     func(a, b *models.Service) bool { return a.Order < b.Order },
	})
}

// NewSkillContent создаёт экран навыков.
func NewSkillContent(store EntityStore[models.Skill], uploader ObjectUploader, cache *QueryCache) *SkillContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.Skill, *dto.SkillDraft]{
		Name:     models.TableSkills,
		NewDraft: func() *dto.SkillDraft { return &dto.SkillDraft{Proficiency: 50} },
		ToDraft:  dto.SkillDraftFrom,
		Less:     func(a, b *models.Skill) bool { return a.Order < b.Order },
	})
}

// NewProjectContent создаёт экран портфолио. Избранные проекты идут первыми.
func NewProjectContent(store EntityStore[models.Project], uploader ObjectUploader, cache *QueryCache) *ProjectContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.Project, *dto.ProjectDraft]{
		Name: models.TableProjects,
		NewDraft: func() *dto.ProjectDraft {
			return &dto.ProjectDraft{Technologies: dto.TagList{}, Categories: dto.TagList{}}
		},
		ToDraft: dto.ProjectDraftFrom,
		Less: func(a, b *models.Project) bool {
			if a.Featured != b.Featured {
				return a.Featured
			}
			return a.Order < b.Order
		},
		Assets: map[string]string{"image_url": models.BucketProjectImages},
	})
}

// NewExperienceContent создаёт экран опыта работы.
func NewExperienceContent(store EntityStore[models.Experience], uploader ObjectUploader, cache *QueryCache) *ExperienceContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.Experience, *dto.ExperienceDraft]{
		Name:     models.TableExperiences,
		NewDraft: func() *dto.ExperienceDraft { return &dto.ExperienceDraft{} },
		ToDraft:  dto.ExperienceDraftFrom,
		Less: func(a, b *models.Experience) bool {
			if a.Order != b.Order {
				return a.Order < b.Order
			}
			return a.StartDate.After(b.StartDate)
		},
		Assets: map[string]string{"company_logo": models.BucketCompanyLogos},
	})
}

// NewTestimonialContent создаёт экран отзывов.
func NewTestimonialContent(store EntityStore[models.Testimonial], uploader ObjectUploader, cache *QueryCache) *TestimonialContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.Testimonial, *dto.TestimonialDraft]{
		Name:     models.TableTestimonials,
		NewDraft: func() *dto.TestimonialDraft { return &dto.TestimonialDraft{} },
		ToDraft:  dto.TestimonialDraftFrom,
		Less:     func(a, b *models.Testimonial) bool { return a.Order < b.Order },
		Assets:   map[string]string{"avatar_url": models.BucketTestimonialAvatars},
	})
}

// NewSettingContent создаёт экран настроек сайта.
func NewSettingContent(store EntityStore[models.SiteSetting], uploader ObjectUploader, cache *QueryCache) *SettingContent {
	return NewContentService(store, uploader, cache, ContentConfig[models.SiteSetting, *dto.SettingDraft]{
		Name:     models.TableSettings,
		NewDraft: func() *dto.SettingDraft { return &dto.SettingDraft{} },
		ToDraft:  dto.SettingDraftFrom,
		Less:     func(a, b *models.SiteSetting) bool { return a.Key < b.Key },
	})
}
