package ai

import openai "github.com/sashabaranov/go-openai"

// Model — закрытый список моделей, доступных пользователю
type Model struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

const DefaultModel = openai.GPT3Dot5Turbo

var Models = []Model{
	{ID: openai.GPT3Dot5Turbo, Label: "GPT-3.5 Turbo (rapide)"},
	{ID: openai.GPT4oMini, Label: "GPT-4o mini"},
	{ID: openai.GPT4o, Label: "GPT-4o (qualité)"},
}

func IsSupportedModel(id string) bool {
	for _, m := range Models {
		if m.ID == id {
			return true
		}
	}
	return false
}
