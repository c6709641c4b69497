package dto

// LoginRequest запрос на вход в админку.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// ContactMessageRequest сообщение из контактной формы публичного сайта.
type ContactMessageRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=100"`
	Email   string `json:"email" form:"email" binding:"required"`
	Subject string `json:"subject" form:"subject" binding:"required,max=200"`
	Message string `json:"message" form:"message" binding:"required,max=5000"`
}

// VisitRequest отметка о просмотре страницы.
type VisitRequest struct {
	Page      string  `json:"page" binding:"required,max=500"`
	Referrer  *string `json:"referrer"`
	UserAgent *string `json:"user_agent"`
}
