package ai

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vovarama1992/voice_assist/internal/ports"
	openai "github.com/sashabaranov/go-openai"
)

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// classify раскладывает ошибку go-openai по типам ports
func classify(op string, err error) error {
	switch statusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ports.WithHint(ports.AuthenticationError(op, err), Diagnose(err))
	}
	return ports.WithHint(ports.ServiceError(op, err), Diagnose(err))
}

// Diagnose — понятное пользователю описание ошибки OpenAI
func Diagnose(err error) string {
	switch code := statusCode(err); {
	case code == http.StatusUnauthorized:
		return "Clé API OpenAI invalide."
	case code == http.StatusForbidden:
		return "Accès refusé par OpenAI."
	case code == http.StatusNotFound:
		return "Modèle introuvable."
	case code == http.StatusTooManyRequests:
		return "Limite OpenAI dépassée."
	case code == http.StatusBadRequest && strings.Contains(strings.ToLower(err.Error()), "model"):
		return "Modèle mal spécifié."
	case code == http.StatusBadRequest:
		return "Requête OpenAI incorrecte."
	case code >= http.StatusInternalServerError:
		return "Erreur interne d'OpenAI."
	}
	return "Erreur OpenAI inconnue : " + err.Error()
}
