package models

import (
	"time"

	"github.com/google/uuid"
)

// Message описывает обращение через контактную форму.
// Флаг Read только устанавливается, обратно в false его никто не сбрасывает.
type Message struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SiteVisit описывает просмотр страницы публичного сайта.
type SiteVisit struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Page      string    `db:"page" json:"page"`
	Referrer  *string   `db:"referrer" json:"referrer,omitempty"`
	UserAgent *string   `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
