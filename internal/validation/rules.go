// Package validation содержит проверки полей пользователя при регистрации.
// Все функции чистые и не имеют побочных эффектов.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/magabrotheeeer/task-tracker/internal/models"
)

const (
	forbiddenNameChars = "!@#$%^&*()_+=-"
	minPasswordLen     = 5
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^(8|\+7)\d{10}$`)
)

// NameValid возвращает false, если имя содержит хотя бы один из символов ! @ # $ % ^ & * ( ) _ + = -.
// Пустое имя допустимо.
func NameValid(name string) bool {
	return !strings.ContainsAny(name, forbiddenNameChars)
}

// EmailValid проверяет email по шаблону local@host.tld, где tld не короче двух букв.
func EmailValid(email string) bool {
	return emailRe.MatchString(email)
}

// PhoneValid принимает номера вида 8XXXXXXXXXX и +7XXXXXXXXXX (ровно 10 цифр после префикса).
func PhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}

// PasswordValid требует не менее пяти символов, каждый из которых буква.
// Цифры и спецсимволы запрещены.
func PasswordValid(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return false
	}
	for _, r := range password {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// FieldError сообщает, какое поле не прошло проверку.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s is not valid", e.Field)
}

// Unwrap позволяет сравнивать ошибку с models.ErrValidation.
func (e *FieldError) Unwrap() error {
	return models.ErrValidation
}

// ValidateUser проверяет все поля кандидата и возвращает *FieldError для первого неверного поля.
func ValidateUser(u models.User) error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"name", NameValid(u.Name)},
		{"email", EmailValid(u.Email)},
		{"phone", PhoneValid(u.Phone)},
		{"password", PasswordValid(u.Password)},
	}
	for _, c := range checks {
		if !c.ok {
			return &FieldError{Field: c.field}
		}
	}
	return nil
}
