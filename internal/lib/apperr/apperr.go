// Package apperr описывает классы ошибок, которые бизнес-логика возвращает наружу.
// Внутренние ошибки хранилища и провайдера оборачиваются в Error с одним из Kind,
// а транспортный слой по Kind выбирает HTTP-статус и текст ответа.
package apperr

import (
	"context"
	"errors"
)

// Kind класс ошибки.
type Kind string

const (
	// BadRequest некорректные или отсутствующие идентификаторы и параметры.
	BadRequest Kind = "bad_request"
	// NotFound запрошенная сущность не существует.
	NotFound Kind = "not_found"
	// Forbidden у пользователя нет прав на операцию.
	Forbidden Kind = "forbidden"
	// Unavailable внешний провайдер или хранилище недоступны, повтор безопасен.
	Unavailable Kind = "service_unavailable"
	// Conflict конкурентное нарушение уникальности.
	Conflict Kind = "conflict"
	// Internal неклассифицированная ошибка.
	Internal Kind = "internal"
)

// Error ошибка с классом и человеко-читаемым сообщением.
// Err хранит исходную причину и никогда не попадает в ответ клиенту.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создает ошибку заданного класса.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap оборачивает причину в ошибку заданного класса.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// UnavailableErr оборачивает сбой инфраструктуры, после которого клиент может повторить запрос.
func UnavailableErr(msg string, err error) error {
	return Wrap(Unavailable, msg, err)
}

// KindOf возвращает класс ошибки. Истекший контекст без явного класса считается Unavailable.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Unavailable
	}
	return Internal
}

// MessageOf возвращает сообщение, которое безопасно показать клиенту.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "service temporarily unavailable"
	}
	return "internal error"
}

// Is сообщает, относится ли ошибка к заданному классу.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
