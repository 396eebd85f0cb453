// Package models содержит доменные структуры сервиса уроков: пользователя с уровнем доступа,
// запись об оплате и урок. Структуры используются в бизнес-логике, хранилище и HTTP-слое.
package models

import "time"

// Tier уровень доступа пользователя (и требуемый уровень доступа урока).
type Tier string

const (
	// TierFree бесплатный уровень, выдается при регистрации.
	TierFree Tier = "Free"
	// TierPremium платный уровень, выдается после подтвержденной оплаты.
	TierPremium Tier = "Premium"
)

// Valid сообщает, является ли значение известным уровнем.
func (t Tier) Valid() bool {
	return t == TierFree || t == TierPremium
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID        string    `json:"_id,omitempty"`
	Email     string    `json:"email"` // Электронная почта, уникальна, с учетом регистра
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
	Role      Tier      `json:"role"` // Текущий уровень доступа
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest тело запроса POST /users.
type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}
