package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile описывает владельца сайта. В таблице хранится одна строка.
type Profile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name"`
	Title       string    `db:"title" json:"title"`
	Bio         string    `db:"bio" json:"bio"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	AvatarURL   *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	ResumeURL   *string   `db:"resume_url" json:"resume_url,omitempty"`
	GithubURL   *string   `db:"github_url" json:"github_url,omitempty"`
	LinkedinURL *string   `db:"linkedin_url" json:"linkedin_url,omitempty"`
	TwitterURL  *string   `db:"twitter_url" json:"twitter_url,omitempty"`
	WebsiteURL  *string   `db:"website_url" json:"website_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Service описывает услугу, которую предлагает владелец сайта.
type Service struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	IconName    string    `db:"icon_name" json:"icon_name"`
	Order       int       `db:"display_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Skill описывает навык с уровнем владения от 0 до 100.
type Skill struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Category    string    `db:"category" json:"category"`
	Proficiency int       `db:"proficiency" json:"proficiency"`
	Order       int       `db:"display_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Project описывает работу в портфолио.
type Project struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Description  string         `db:"description" json:"description"`
	ImageURL     *string        `db:"image_url" json:"image_url,omitempty"`
	LiveURL      *string        `db:"live_url" json:"live_url,omitempty"`
	GithubURL    *string        `db:"github_url" json:"github_url,omitempty"`
	Technologies pq.StringArray `db:"technologies" json:"technologies"`
	Categories   pq.StringArray `db:"categories" json:"categories"`
	Featured     bool           `db:"featured" json:"featured"`
	Order        int            `db:"display_order" json:"order"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// Experience описывает место работы. У текущего места нет даты окончания.
type Experience struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Company     string     `db:"company" json:"company"`
	Location    string     `db:"location" json:"location"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	Current     bool       `db:"current" json:"current"`
	Description string     `db:"description" json:"description"`
	CompanyLogo *string    `db:"company_logo" json:"company_logo,omitempty"`
	Order       int        `db:"display_order" json:"order"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Testimonial описывает отзыв клиента.
type Testimonial struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Position  string    `db:"position" json:"position"`
	Company   string    `db:"company" json:"company"`
	Content   string    `db:"content" json:"content"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Order     int       `db:"display_order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SiteSetting хранит пару ключ/значение настроек сайта.
type SiteSetting struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Key         string    `db:"key" json:"key"`
	Value       string    `db:"value" json:"value"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
