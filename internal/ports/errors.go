package ports

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindCredentialMissing Kind = "credential_missing"
	KindAuthentication    Kind = "authentication"
	KindService           Kind = "service"
	KindSynthesis         Kind = "synthesis"
)

// Error — ошибка внешнего вызова с типом для контроллера сессии.
type Error struct {
	Kind Kind
	Op   string
	Err  error
	// Hint — текст для пользователя, если адаптер умеет объяснить ошибку
	Hint string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var ErrCredentialMissing = &Error{Kind: KindCredentialMissing, Op: "resolve credential"}

func AuthenticationError(op string, err error) error {
	return &Error{Kind: KindAuthentication, Op: op, Err: err}
}

func ServiceError(op string, err error) error {
	return &Error{Kind: KindService, Op: op, Err: err}
}

func SynthesisError(op string, err error) error {
	return &Error{Kind: KindSynthesis, Op: op, Err: err}
}

// WithHint добавляет пояснение к *Error, остальные ошибки не трогает
func WithHint(err error, hint string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Hint = hint
	}
	return err
}

// HintOf — пояснение для пользователя, иначе текст ошибки
func HintOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Hint != "" {
		return e.Hint
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// KindOf — непомеченные ошибки считаем сервисными
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindService
}
