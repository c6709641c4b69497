package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

// SessionResponse ответ на успешный вход и на запрос текущей сессии.
type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Redirect  string    `json:"redirect,omitempty"`
}

// SubmitResponse ответ на сохранение черновика: запись и чистый черновик для формы.
type SubmitResponse struct {
	Item  any `json:"item"`
	Draft any `json:"draft"`
}

// DashboardResponse сводка для главной страницы админки.
type DashboardResponse struct {
	RecentMessages []models.Message `json:"recent_messages"`
	UnreadMessages int              `json:"unread_messages"`
	TotalVisits    int              `json:"total_visits"`
	UniqueVisitors int              `json:"unique_visitors"`
	Trends         []Trend          `json:"trends"`
}

// Trend статический показатель динамики на дашборде.
type Trend struct {
	Label  string `json:"label"`
	Change string `json:"change"`
}

// SiteContent содержимое публичной главной страницы.
type SiteContent struct {
	Profile      *models.Profile      `json:"profile"`
	Services     []models.Service     `json:"services"`
	Skills       []models.Skill       `json:"skills"`
	Projects     []models.Project     `json:"projects"`
	Experiences  []models.Experience  `json:"experiences"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Settings     map[string]string    `json:"settings"`
}
