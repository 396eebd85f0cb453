// Package storage содержит общие для всех драйверов ошибки хранилища.
// Реализации лежат в подпакетах postgresql и mongodb и возвращают эти ошибки,
// чтобы бизнес-логика не зависела от конкретного драйвера.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrUserExists пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrPaymentExists оплата с таким идентификатором транзакции уже записана.
	ErrPaymentExists = errors.New("payment already recorded")
)
