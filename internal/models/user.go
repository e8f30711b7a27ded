// Package models содержит доменные структуры трекера задач: пользователя, задачу,
// фильтры списка и общие ошибки бизнес-уровня.
// Теги json задают формат хранимых документов.
package models

// User представляет зарегистрированного пользователя системы.
// Email и телефон уникальны среди всех пользователей, запись не меняется после регистрации.
type User struct {
	Name     string `json:"name"`     // Имя пользователя
	Email    string `json:"email"`    // Электронная почта, ключ списков задач
	Phone    string `json:"phone"`    // Телефон в формате 8XXXXXXXXXX или +7XXXXXXXXXX
	Password string `json:"password"` // Пароль как есть либо bcrypt-хэш при включённом хэшировании
}
