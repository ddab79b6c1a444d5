package credential

// EnvKey — имя ключа в .env и в окружении
const EnvKey = "OPENAI_API_KEY"

// Credential — секрет для внешних API. В логах всегда замаскирован.
type Credential string

func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "***"
}

// GoString закрывает и %#v
func (c Credential) GoString() string {
	return c.String()
}

// Reveal отдаёт сырое значение, только для заголовков запроса.
func (c Credential) Reveal() string {
	return string(c)
}
