package validation

import (
	"fmt"
	"unicode"
)

// MinAdminPasswordLength минимальная длина пароля администратора.
const MinAdminPasswordLength = 10

// ValidateAdminPassword проверяет пароль администратора, который задаётся через окружение.
// Нужны буквы в обоих регистрах и хотя бы одна цифра.
func ValidateAdminPassword(password string) error {
	if len([]rune(password)) < MinAdminPasswordLength {
		return fmt.Errorf("пароль администратора должен быть не менее %d символов", MinAdminPasswordLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if !hasUpper || !hasLower {
		return fmt.Errorf("пароль администратора должен содержать строчные и заглавные буквы")
	}
	if !hasNumber {
		return fmt.Errorf("пароль администратора должен содержать хотя бы одну цифру")
	}
	return nil
}
