package session

import "github.com/Vovarama1992/voice_assist/internal/ports"

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice — сообщение пользователю (успех, предупреждение, ошибка)
type Notice struct {
	Level   Level      `json:"level"`
	Kind    ports.Kind `json:"kind,omitempty"`
	Message string     `json:"message"`
}

// Output — поверхность, куда контроллер выдаёт результат цикла.
// Reply вызывается до синтеза речи.
type Output interface {
	Transcribed(text string)
	Reply(text string)
	Audio(data []byte, mimeType string)
	Notice(n Notice)
}

// Тексты для пользователя
const (
	msgCredentialMissing = "Entrez votre clé OpenAI API"
	msgCredentialSet     = "Clé API configurée!"
	msgEmptyText         = "Veuillez saisir un message."
	msgEmptyAudio        = "Aucun audio reçu."
	msgSynthesisFailed   = "Synthèse vocale indisponible, réponse affichée en texte uniquement."
)
