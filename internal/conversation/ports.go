package conversation

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn — одна реплика диалога
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// DefaultSystemPrompt — инструкция ассистента по умолчанию
const DefaultSystemPrompt = "Vous êtes un assistant vocal français, utile et courtois. Répondez de manière concise."
