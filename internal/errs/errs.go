package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind классифицирует ошибку приложения и определяет HTTP-статус ответа.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindUnavailable
	KindInvalidState
)

// Error — ошибка приложения с видом, сообщением для клиента и причиной.
// Message безопасен для выдачи наружу; Err логируется только на сервере.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string // для KindValidation: имена полей с нарушениями
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation — ошибка валидации входных данных. Поля перечисляются все разом.
func Validation(msg string, fields ...string) *Error {
	if msg == "" && len(fields) > 0 {
		msg = "field wajib diisi: " + strings.Join(fields, ", ")
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Conflict — нарушение уникальности или удаление заблокировано связями.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound — сущность не найдена (или вне зоны видимости вызывающего).
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " tidak ditemukan", Err: fmt.Errorf("%s %q not found", entity, id)}
}

func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
}

func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "Forbidden"
	}
	return &Error{Kind: KindForbidden, Message: msg}
}

// Unavailable — хранилище недоступно; повторов не делаем, отдаём 503.
func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: "database tidak tersedia", Err: err}
}

// InvalidState — недопустимый переход состояния (например approve не из PENDING).
func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf возвращает вид ошибки; всё неклассифицированное считается internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus отображает вид ошибки в HTTP-статус по таксономии API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindInvalidState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage — сообщение, безопасное для клиента. Для internal отдаём общий текст.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}
