package credential

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Resolver выбирает ключ: поле пользователя > файл конфигурации > окружение.
type Resolver struct {
	fallback string
}

func NewResolver(fallback string) *Resolver {
	return &Resolver{fallback: strings.TrimSpace(fallback)}
}

// NewResolverFromFile читает OPENAI_API_KEY из .env-файла.
// Если файла нет или ключ в нём пустой — берём из окружения процесса.
func NewResolverFromFile(path string) *Resolver {
	if path != "" {
		values, err := godotenv.Read(path)
		if err == nil {
			if v := strings.TrimSpace(values[EnvKey]); v != "" {
				return NewResolver(v)
			}
		}
	}
	return NewResolver(os.Getenv(EnvKey))
}

// Resolve — отсутствие ключа это нормальное состояние, не ошибка.
func (r *Resolver) Resolve(field string) (Credential, bool) {
	if v := strings.TrimSpace(field); v != "" {
		return Credential(v), true
	}
	if r.fallback != "" {
		return Credential(r.fallback), true
	}
	return "", false
}

// HasFallback — есть ли ключ из конфигурации
func (r *Resolver) HasFallback() bool {
	return r.fallback != ""
}
