// Package password реализует хранение и сверку паролей пользователей.
//
// Plain хранит пароль как есть и сравнивает строки побайтно; это формат по умолчанию.
// Bcrypt хранит bcrypt-хэш и сверяет введённый пароль с ним.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher готовит пароль к записи и сверяет введённый пароль с сохранённым значением.
type Hasher interface {
	Hash(raw string) (string, error)
	Match(stored, raw string) bool
}

// Plain хранит пароль открытым текстом.
type Plain struct{}

// Hash возвращает пароль без изменений.
func (Plain) Hash(raw string) (string, error) {
	return raw, nil
}

// Match сравнивает пароли на точное совпадение.
func (Plain) Match(stored, raw string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) == 1
}

// Bcrypt хранит bcrypt-хэш пароля. Нулевое значение Cost означает bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func (b Bcrypt) Hash(raw string) (string, error) {
	const op = "password.Hash"
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Match сверяет bcrypt‑хэш с введённым паролем.
func (Bcrypt) Match(stored, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)) == nil
}

// New выбирает реализацию по флагу конфигурации.
func New(hashed bool) Hasher {
	if hashed {
		return Bcrypt{}
	}
	return Plain{}
}
