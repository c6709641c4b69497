package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/validation"
)

// Draft черновик формы редактирования сущности.
// Черновик без идентификатора создаёт запись, с идентификатором обновляет её.
type Draft interface {
	DraftID() (uuid.UUID, bool)
	SetID(id uuid.UUID)
	Validate() error
	Fields() map[string]any
	// AttachAsset записывает адрес загруженного файла в поле черновика.
	AttachAsset(field, url string) bool
}

// UpdateFielder реализуют черновики, у которых при обновлении меняется только часть полей.
type UpdateFielder interface {
	UpdateFields() map[string]any
}

// Preparer реализуют черновики, которые приводят поля к согласованному виду перед проверкой.
type Preparer interface {
	Prepare()
}

// DraftBase общая часть всех черновиков.
type DraftBase struct {
	ID string `json:"id,omitempty" form:"id"`
}

func (d *DraftBase) DraftID() (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(d.ID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (d *DraftBase) SetID(id uuid.UUID) {
	d.ID = id.String()
}

func (d *DraftBase) validateID() error {
	if strings.TrimSpace(d.ID) == "" {
		return nil
	}
	if _, err := uuid.Parse(strings.TrimSpace(d.ID)); err != nil {
		return fmt.Errorf("некорректный идентификатор записи")
	}
	return nil
}

// nullable переводит пустую строку в NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return v
}

func strPtr(s string) *string {
	return &s
}

// ServiceDraft черновик услуги.
type ServiceDraft struct {
	DraftBase
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	IconName    string `json:"icon_name" form:"icon_name"`
	Order       int    `json:"order" form:"order"`
}

func (d *ServiceDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateRequired("название", d.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("описание", d.Description, validation.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("иконка", d.IconName, validation.MaxIconNameLength); err != nil {
		return err
	}
	return validation.ValidateOrder(d.Order)
}

func (d *ServiceDraft) Fields() map[string]any {
	return map[string]any{
		"title":         strings.TrimSpace(d.Title),
		"description":   strings.TrimSpace(d.Description),
		"icon_name":     strings.TrimSpace(d.IconName),
		"display_order": d.Order,
	}
}

func (d *ServiceDraft) AttachAsset(string, string) bool { return false }

// ServiceDraftFrom заполняет черновик из сохранённой услуги.
func ServiceDraftFrom(s *models.Service) *ServiceDraft {
	return &ServiceDraft{
		DraftBase:   DraftBase{ID: s.ID.String()},
		Title:       s.Title,
		Description: s.Description,
		IconName:    s.IconName,
		Order:       s.Order,
	}
}

// SkillDraft черновик навыка.
type SkillDraft struct {
	DraftBase
	Name        string `json:"name" form:"name"`
	Category    string `json:"category" form:"category"`
	Proficiency int    `json:"proficiency" form:"proficiency"`
	Order       int    `json:"order" form:"order"`
}

func (d *SkillDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateRequired("название навыка", d.Name, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("категория", d.Category, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateProficiency(d.Proficiency); err != nil {
		return err
	}
	return validation.ValidateOrder(d.Order)
}

func (d *SkillDraft) Fields() map[string]any {
	return map[string]any{
		"name":          strings.TrimSpace(d.Name),
		"category":      strings.TrimSpace(d.Category),
		"proficiency":   d.Proficiency,
		"display_order": d.Order,
	}
}

func (d *SkillDraft) AttachAsset(string, string) bool { return false }

// SkillDraftFrom заполняет черновик из сохранённого навыка.
func SkillDraftFrom(s *models.Skill) *SkillDraft {
	return &SkillDraft{
		DraftBase:   DraftBase{ID: s.ID.String()},
		Name:        s.Name,
		Category:    s.Category,
		Proficiency: s.Proficiency,
		Order:       s.Order,
	}
}

// ProjectDraft черновик проекта портфолио.
type ProjectDraft struct {
	DraftBase
	Title        string  `json:"title" form:"title"`
	Description  string  `json:"description" form:"description"`
	ImageURL     *string `json:"image_url,omitempty" form:"image_url"`
	LiveURL      *string `json:"live_url,omitempty" form:"live_url"`
	GithubURL    *string `json:"github_url,omitempty" form:"github_url"`
	Technologies TagList `json:"technologies" form:"technologies"`
	Categories   TagList `json:"categories" form:"categories"`
	Featured     bool    `json:"featured" form:"featured"`
	Order        int     `json:"order" form:"order"`
}

// Prepare убирает повторяющиеся теги, как бы ни был собран черновик.
func (d *ProjectDraft) Prepare() {
	d.Technologies = d.Technologies.Dedup()
	d.Categories = d.Categories.Dedup()
}

func (d *ProjectDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateRequired("название проекта", d.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("описание проекта", d.Description, validation.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateExternalURL("изображение", d.ImageURL); err != nil {
		return err
	}
	if err := validation.ValidateExternalURL("демо", d.LiveURL); err != nil {
		return err
	}
	if err := validation.ValidateExternalURL("репозиторий", d.GithubURL); err != nil {
		return err
	}
	if err := validation.ValidateTags("технологии", d.Technologies); err != nil {
		return err
	}
	if err := validation.ValidateTags("категории", d.Categories); err != nil {
		return err
	}
	return validation.ValidateOrder(d.Order)
}

func (d *ProjectDraft) Fields() map[string]any {
	return map[string]any{
		"title":         strings.TrimSpace(d.Title),
		"description":   strings.TrimSpace(d.Description),
		"image_url":     nullable(d.ImageURL),
		"live_url":      nullable(d.LiveURL),
		"github_url":    nullable(d.GithubURL),
		"technologies":  pq.StringArray(d.Technologies.Dedup().Strings()),
		"categories":    pq.StringArray(d.Categories.Dedup().Strings()),
		"featured":      d.Featured,
		"display_order": d.Order,
	}
}

func (d *ProjectDraft) AttachAsset(field, url string) bool {
	if field != "image_url" {
		return false
	}
	d.ImageURL = strPtr(url)
	return true
}

// ProjectDraftFrom заполняет черновик из сохранённого проекта.
// Отсутствующие списки тегов становятся пустыми.
func ProjectDraftFrom(p *models.Project) *ProjectDraft {
	return &ProjectDraft{
		DraftBase:    DraftBase{ID: p.ID.String()},
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		Technologies: TagList(p.Technologies).Dedup(),
		Categories:   TagList(p.Categories).Dedup(),
		Featured:     p.Featured,
		Order:        p.Order,
	}
}

// ExperienceDraft черновик места работы.
type ExperienceDraft struct {
	DraftBase
	Title       string  `json:"title" form:"title"`
	Company     string  `json:"company" form:"company"`
	Location    string  `json:"location" form:"location"`
	StartDate   string  `json:"start_date" form:"start_date"`
	EndDate     string  `json:"end_date,omitempty" form:"end_date"`
	Current     bool    `json:"current" form:"current"`
	Description string  `json:"description" form:"description"`
	CompanyLogo *string `json:"company_logo,omitempty" form:"company_logo"`
	Order       int     `json:"order" form:"order"`
}

// SetCurrent переключает признак текущего места работы. Включение очищает дату окончания.
func (d *ExperienceDraft) SetCurrent(current bool) {
	d.Current = current
	if current {
		d.EndDate = ""
	}
}

// Prepare применяет переключатель "текущее место работы": дата окончания сбрасывается.
func (d *ExperienceDraft) Prepare() {
	d.SetCurrent(d.Current)
}

func (d *ExperienceDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateRequired("должность", d.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("компания", d.Company, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateLength("описание", d.Description, 0, validation.MaxDescriptionLength); err != nil {
		return err
	}
	start, err := validation.ParseDate("дата начала", d.StartDate)
	if err != nil {
		return err
	}

	endRaw := strings.TrimSpace(d.EndDate)
	if d.Current && endRaw != "" {
		return fmt.Errorf("у текущего места работы не может быть даты окончания")
	}
	if endRaw != "" {
		end, err := validation.ParseDate("дата окончания", endRaw)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return fmt.Errorf("дата окончания не может быть раньше даты начала")
		}
	}
	if err := validation.ValidateExternalURL("логотип", d.CompanyLogo); err != nil {
		return err
	}
	return validation.ValidateOrder(d.Order)
}

// Fields ожидает, что черновик уже прошёл Validate.
func (d *ExperienceDraft) Fields() map[string]any {
	start, _ := validation.ParseDate("дата начала", d.StartDate)

	var end any
	if !d.Current && strings.TrimSpace(d.EndDate) != "" {
		if parsed, err := validation.ParseDate("дата окончания", d.EndDate); err == nil {
			end = parsed
		}
	}

	return map[string]any{
		"title":         strings.TrimSpace(d.Title),
		"company":       strings.TrimSpace(d.Company),
		"location":      strings.TrimSpace(d.Location),
		"start_date":    start,
		"end_date":      end,
		"current":       d.Current,
		"description":   strings.TrimSpace(d.Description),
		"company_logo":  nullable(d.CompanyLogo),
		"display_order": d.Order,
	}
}

func (d *ExperienceDraft) AttachAsset(field, url string) bool {
	if field != "company_logo" {
		return false
	}
	d.CompanyLogo = strPtr(url)
	return true
}

// ExperienceDraftFrom заполняет черновик из сохранённого места работы.
func ExperienceDraftFrom(e *models.Experience) *ExperienceDraft {
	d := &ExperienceDraft{
		DraftBase:   DraftBase{ID: e.ID.String()},
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate.Format(validation.DateLayout),
		Current:     e.Current,
		Description: e.Description,
		CompanyLogo: e.CompanyLogo,
		Order:       e.Order,
	}
	if e.EndDate != nil && !e.Current {
		d.EndDate = e.EndDate.Format(validation.DateLayout)
	}
	return d
}

// TestimonialDraft черновик отзыва.
type TestimonialDraft struct {
	DraftBase
	Name      string  `json:"name" form:"name"`
	Position  string  `json:"position" form:"position"`
	Company   string  `json:"company" form:"company"`
	Content   string  `json:"content" form:"content"`
	AvatarURL *string `json:"avatar_url,omitempty" form:"avatar_url"`
	Order     int     `json:"order" form:"order"`
}

func (d *TestimonialDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateRequired("имя", d.Name, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateLength("должность", d.Position, 0, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateLength("компания", d.Company, 0, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("текст отзыва", d.Content, validation.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateExternalURL("аватар", d.AvatarURL); err != nil {
		return err
	}
	return validation.ValidateOrder(d.Order)
}

func (d *TestimonialDraft) Fields() map[string]any {
	return map[string]any{
		"name":          strings.TrimSpace(d.Name),
		"position":      strings.TrimSpace(d.Position),
		"company":       strings.TrimSpace(d.Company),
		"content":       strings.TrimSpace(d.Content),
		"avatar_url":    nullable(d.AvatarURL),
		"display_order": d.Order,
	}
}

func (d *TestimonialDraft) AttachAsset(field, url string) bool {
	if field != "avatar_url" {
		return false
	}
	d.AvatarURL = strPtr(url)
	return true
}

// TestimonialDraftFrom заполняет черновик из сохранённого отзыва.
func TestimonialDraftFrom(t *models.Testimonial) *TestimonialDraft {
	return &TestimonialDraft{
		DraftBase: DraftBase{ID: t.ID.String()},
		Name:      t.Name,
		Position:  t.Position,
		Company:   t.Company,
		Content:   t.Content,
		AvatarURL: t.AvatarURL,
		Order:     t.Order,
	}
}

// SettingDraft черновик настройки сайта.
type SettingDraft struct {
	DraftBase
	Key         string  `json:"key" form:"key"`
	Value       string  `json:"value" form:"value"`
	Description *string `json:"description,omitempty" form:"description"`
}

func (d *SettingDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateSettingKey(d.Key); err != nil {
		return err
	}
	return validation.ValidateLength("значение", d.Value, 0, validation.MaxSettingValueLen)
}

func (d *SettingDraft) Fields() map[string]any {
	fields := d.UpdateFields()
	fields["key"] = strings.TrimSpace(d.Key)
	return fields
}

// UpdateFields при обновлении ключ настройки не меняется.
func (d *SettingDraft) UpdateFields() map[string]any {
	return map[string]any{
		"value":       d.Value,
		"description": nullable(d.Description),
	}
}

func (d *SettingDraft) AttachAsset(string, string) bool { return false }

// SettingDraftFrom заполняет черновик из сохранённой настройки.
func SettingDraftFrom(s *models.SiteSetting) *SettingDraft {
	return &SettingDraft{
		DraftBase:   DraftBase{ID: s.ID.String()},
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
	}
}

// ProfileDraft черновик профиля владельца сайта.
type ProfileDraft struct {
	DraftBase
	FullName    string  `json:"full_name" form:"full_name"`
	Title       string  `json:"title" form:"title"`
	Bio         string  `json:"bio" form:"bio"`
	Email       *string `json:"email,omitempty" form:"email"`
	Phone       *string `json:"phone,omitempty" form:"phone"`
	Location    *string `json:"location,omitempty" form:"location"`
	AvatarURL   *string `json:"avatar_url,omitempty" form:"avatar_url"`
	ResumeURL   *string `json:"resume_url,omitempty" form:"resume_url"`
	GithubURL   *string `json:"github_url,omitempty" form:"github_url"`
	LinkedinURL *string `json:"linkedin_url,omitempty" form:"linkedin_url"`
	TwitterURL  *string `json:"twitter_url,omitempty" form:"twitter_url"`
	WebsiteURL  *string `json:"website_url,omitempty" form:"website_url"`
}

func (d *ProfileDraft) Validate() error {
	if err := d.validateID(); err != nil {
		return err
	}
	if err := validation.ValidateRequired("имя", d.FullName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.ValidateRequired("заголовок", d.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateLength("биография", d.Bio, 0, validation.MaxBioLength); err != nil {
		return err
	}
	if err := validation.ValidateOptionalEmail(d.Email); err != nil {
		return err
	}

	links := []struct {
		name  string
		value *string
	}{
		{"аватар", d.AvatarURL},
		{"резюме", d.ResumeURL},
		{"GitHub", d.GithubURL},
		{"LinkedIn", d.LinkedinURL},
		{"Twitter", d.TwitterURL},
		{"сайт", d.WebsiteURL},
	}
	for _, link := range links {
		if err := validation.ValidateExternalURL(link.name, link.value); err != nil {
			return err
		}
	}
	return nil
}

func (d *ProfileDraft) Fields() map[string]any {
	return map[string]any{
		"full_name":    strings.TrimSpace(d.FullName),
		"title":        strings.TrimSpace(d.Title),
		"bio":          strings.TrimSpace(d.Bio),
		"email":        nullable(d.Email),
		"phone":        nullable(d.Phone),
		"location":     nullable(d.Location),
		"avatar_url":   nullable(d.AvatarURL),
		"resume_url":   nullable(d.ResumeURL),
		"github_url":   nullable(d.GithubURL),
		"linkedin_url": nullable(d.LinkedinURL),
		"twitter_url":  nullable(d.TwitterURL),
		"website_url":  nullable(d.WebsiteURL),
	}
}

func (d *ProfileDraft) AttachAsset(field, url string) bool {
	switch field {
	case "avatar_url":
		d.AvatarURL = strPtr(url)
	case "resume_url":
		d.ResumeURL = strPtr(url)
	default:
		return false
	}
	return true
}

// ProfileDraftFrom заполняет черновик из сохранённого профиля.
func ProfileDraftFrom(p *models.Profile) *ProfileDraft {
	return &ProfileDraft{
		DraftBase:   DraftBase{ID: p.ID.String()},
		FullName:    p.FullName,
		Title:       p.Title,
		Bio:         p.Bio,
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		AvatarURL:   p.AvatarURL,
		ResumeURL:   p.ResumeURL,
		GithubURL:   p.GithubURL,
		LinkedinURL: p.LinkedinURL,
		TwitterURL:  p.TwitterURL,
		WebsiteURL:  p.WebsiteURL,
	}
}
