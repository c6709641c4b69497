package models

// Имена таблиц, они же ключи кэша списков.
const (
	TableProfiles     = "profiles"
	TableServices     = "services"
	TableSkills       = "skills"
	TableProjects     = "projects"
	TableExperiences  = "experiences"
	TableTestimonials = "testimonials"
	TableMessages     = "messages"
	TableSettings     = "site_settings"
	TableVisits       = "site_visits"
)

// Tables перечисляет таблицы контента в порядке проверки при старте.
var Tables = []string{
	TableProfiles,
	TableServices,
	TableSkills,
	TableProjects,
	TableExperiences,
	TableTestimonials,
	TableMessages,
	TableSettings,
	TableVisits,
}

// Бакеты объектного хранилища
const (
	BucketAvatars            = "avatars"
	BucketProjectImages      = "project-images"
	BucketResumes            = "resumes"
	BucketTestimonialAvatars = "testimonial-avatars"
	BucketCompanyLogos       = "company-logos"
)

// Buckets список бакетов, которые ожидает приложение.
var Buckets = []string{
	BucketAvatars,
	BucketProjectImages,
	BucketResumes,
	BucketTestimonialAvatars,
	BucketCompanyLogos,
}

// ValidBuckets множество известных бакетов
var ValidBuckets = map[string]struct{}{
	BucketAvatars:            {},
	BucketProjectImages:      {},
	BucketResumes:            {},
	BucketTestimonialAvatars: {},
	BucketCompanyLogos:       {},
}

// События, которые публикует менеджер сессий
const (
	AuthEventSignedIn  = "SIGNED_IN"
	AuthEventSignedOut = "SIGNED_OUT"
)
