package models

import (
	"errors"
	"fmt"
)

// Ожидаемые ошибки бизнес-уровня. Вызывающий код сравнивает их через errors.Is.
var (
	// ErrValidation поле не прошло проверку формата.
	ErrValidation = errors.New("validation failed")
	// ErrConflict email или телефон уже заняты.
	ErrConflict = errors.New("user already exists")
	// ErrEmailTaken пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = fmt.Errorf("email is taken: %w", ErrConflict)
	// ErrPhoneTaken пользователь с таким телефоном уже зарегистрирован.
	ErrPhoneTaken = fmt.Errorf("phone is taken: %w", ErrConflict)
	// ErrInvalidCredentials неверный email/телефон или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound задача с таким текстом не найдена.
	ErrNotFound = errors.New("task not found")
	// ErrTrashEmpty корзина уже пуста.
	ErrTrashEmpty = fmt.Errorf("trash is empty: %w", ErrNotFound)
)
