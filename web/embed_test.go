package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	PageHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `id="player"`)
	// запись пользователя проигрывается рядом с ответом
	assert.Contains(t, body, `id="capture"`)
	assert.Contains(t, body, `$("capture").src = URL.createObjectURL(blob)`)
}
