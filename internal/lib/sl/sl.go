// Package sl содержит атрибуты slog, которые повторяются во всех слоях сервиса.
package sl

import "log/slog"

// Err кладет текст ошибки под ключ "error". Для nil возвращает пустой атрибут,
// который slog не выводит.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Op помечает запись лога именем операции в формате "пакет.Метод".
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
