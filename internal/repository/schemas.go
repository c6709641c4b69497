package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// Схемы таблиц контента
var (
	ProfileSchema = Schema{
		Table: models.TableProfiles,
		Columns: []string{
			"full_name", "title", "bio", "email", "phone", "location", "avatar_url",
			"resume_url", "github_url", "linkedin_url", "twitter_url", "website_url",
		},
		OrderBy: "created_at ASC",
	}

	ServiceSchema = Schema{
		Table:   models.TableServices,
		Columns: []string{"title", "description", "icon_name", "display_order"},
		OrderBy: "display_order ASC, created_at ASC",
	}

	SkillSchema = Schema{
		Table:   models.TableSkills,
		Columns: []string{"name", "category", "proficiency", "display_order"},
		OrderBy: "display_order ASC, created_at ASC",
	}

	ProjectSchema = Schema{
		Table: models.TableProjects,
		Columns: []string{
			"title", "description", "image_url", "live_url", "github_url",
			"technologies", "categories", "featured", "display_order",
		},
		OrderBy: "featured DESC, display_order ASC, created_at ASC",
	}

	ExperienceSchema = Schema{
		Table: models.TableExperiences,
		Columns: []string{
			"title", "company", "location", "start_date", "end_date", "current",
			"description", "company_logo", "display_order",
		},
		OrderBy: "display_order ASC, start_date DESC",
	}

	TestimonialSchema = Schema{
		Table:   models.TableTestimonials,
		Columns: []string{"name", "position", "company", "content", "avatar_url", "display_order"},
		OrderBy: "display_order ASC, created_at ASC",
	}

	SettingSchema = Schema{
		Table:   models.TableSettings,
		Columns: []string{"key", "value", "description"},
		OrderBy: "key ASC",
	}
)

// NewProfileRepository создаёт репозиторий профиля.
func NewProfileRepository(db *sqlx.DB) *EntityRepository[models.Profile] {
	return NewEntityRepository[models.Profile](db, ProfileSchema)
}

// NewServiceRepository создаёт репозиторий услуг.
func NewServiceRepository(db *sqlx.DB) *EntityRepository[models.Service] {
	return NewEntityRepository[models.Service](db, ServiceSchema)
}

// NewSkillRepository создаёт репозиторий навыков.
func NewSkillRepository(db *sqlx.DB) *EntityRepository[models.Skill] {
	return NewEntityRepository[models.Skill](db, SkillSchema)
}

// NewProjectRepository создаёт репозиторий проектов.
func NewProjectRepository(db *sqlx.DB) *EntityRepository[models.Project] {
	return NewEntityRepository[models.Project](db, ProjectSchema)
}

// NewExperienceRepository создаёт репозиторий опыта работы.
func NewExperienceRepository(db *sqlx.DB) *EntityRepository[models.Experience] {
	return NewEntityRepository[models.Experience](db, ExperienceSchema)
}

// NewTestimonialRepository создаёт репозиторий отзывов.
func NewTestimonialRepository(db *sqlx.DB) *EntityRepository[models.Testimonial] {
	return NewEntityRepository[models.Testimonial](db, TestimonialSchema)
}

// NewSettingRepository создаёт репозиторий настроек сайта.
func NewSettingRepository(db *sqlx.DB) *EntityRepository[models.SiteSetting] {
	return NewEntityRepository[models.SiteSetting](db, SettingSchema)
}
