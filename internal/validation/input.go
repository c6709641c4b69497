package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxTitleLength       = 200
	MaxNameLength        = 100
	MaxDescriptionLength = 5000
	MaxBioLength         = 2000
	MaxIconNameLength    = 50
	MaxTagLength         = 50
	MaxTagsCount         = 30
	MaxSubjectLength     = 200
	MaxMessageLength     = 5000
	MaxExternalURLLength = 500
	MaxSettingKeyLength  = 100
	MaxSettingValueLen   = 10000
	MinProficiency       = 0
	MaxProficiency       = 100
	DateLayout           = "2006-01-02"
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	settingKeyRegex  = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateRequired проверяет, что строка не пустая и не длиннее max.
func ValidateRequired(fieldName, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return ValidateLength(fieldName, strings.TrimSpace(value), 0, max)
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}
	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateOptionalEmail проверяет email, если он задан.
func ValidateOptionalEmail(email *string) error {
	if email == nil || strings.TrimSpace(*email) == "" {
		return nil
	}
	return ValidateEmail(*email)
}

// ValidateExternalURL проверяет внешнюю ссылку, если она задана.
// Допускаются только http и https адреса, а также относительные пути хранилища.
func ValidateExternalURL(fieldName string, link *string) error {
	if link == nil || *link == "" {
		return nil
	}

	linkStr := strings.TrimSpace(*link)
	if err := ValidateLength(fieldName, linkStr, 0, MaxExternalURLLength); err != nil {
		return err
	}
	if strings.HasPrefix(linkStr, "/") && !strings.HasPrefix(linkStr, "//") {
		return nil
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil {
		return fmt.Errorf("%s: некорректный формат URL", fieldName)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s: ссылка должна начинаться с http:// или https://", fieldName)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s: ссылка должна содержать доменное имя", fieldName)
	}
	return nil
}

// ValidateProficiency проверяет уровень владения навыком.
func ValidateProficiency(value int) error {
	if value < MinProficiency || value > MaxProficiency {
		return fmt.Errorf("уровень владения должен быть от %d до %d", MinProficiency, MaxProficiency)
	}
	return nil
}

// ValidateOrder проверяет порядок отображения.
func ValidateOrder(value int) error {
	if value < 0 {
		return fmt.Errorf("порядок отображения не может быть отрицательным")
	}
	return nil
}

// ValidateTags проверяет список тегов проекта.
func ValidateTags(fieldName string, tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("%s: не более %d значений", fieldName, MaxTagsCount)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%s: значение не может быть пустым", fieldName)
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("%s: значение не может быть длиннее %d символов", fieldName, MaxTagLength)
		}
	}
	return nil
}

// ValidateSettingKey проверяет формат ключа настройки.
func ValidateSettingKey(key string) error {
	if err := ValidateRequired("ключ", key, MaxSettingKeyLength); err != nil {
		return err
	}
	if !settingKeyRegex.MatchString(key) {
		return fmt.Errorf("ключ может содержать только строчные латинские буквы, цифры, точку, дефис и подчеркивание")
	}
	return nil
}

// ParseDate разбирает дату в формате ГГГГ-ММ-ДД.
func ParseDate(fieldName, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: ожидается дата в формате ГГГГ-ММ-ДД", fieldName)
	}
	return t, nil
}
