package delivery

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_assist/internal/conversation"
	"github.com/Vovarama1992/voice_assist/internal/credential"
	"github.com/Vovarama1992/voice_assist/internal/ports"
	"github.com/Vovarama1992/voice_assist/internal/session"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTranscriber struct{ contentSeen string }

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string, cred credential.Credential) (string, error) {
	s.contentSeen = audioPath
	return "Bonjour", nil
}

type stubCompleter struct {
	calls int
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, turns []conversation.Turn, model string, maxTokens int, temperature float32, cred credential.Credential) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "Bonjour ! Comment puis-je vous aider ?", nil
}

type stubSynthesizer struct{ err error }

func (s stubSynthesizer) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("ID3"), nil
}

type testEnv struct {
	srv *httptest.Server
	llm *stubCompleter
	stt *stubTranscriber
	reg *session.Registry
}

func newTestEnv(t *testing.T, fallbackKey string, tts stubSynthesizer) *testEnv {
	t.Helper()
	env := &testEnv{llm: &stubCompleter{}, stt: &stubTranscriber{}}
	env.reg = session.NewRegistry(session.DefaultSettings(), session.Deps{
		Resolver:    credential.NewResolver(fallbackKey),
		Transcriber: env.stt,
		Completer:   env.llm,
		Synthesizer: tts,
	})

	r := chi.NewRouter()
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("page")) })
	RegisterRoutes(r, NewHandler(env.reg, logger.NewZapLogger(zap.NewNop().Sugar())), page, 1000)

	env.srv = httptest.NewServer(r)
	t.Cleanup(env.srv.Close)
	return env
}

// client с cookie jar, чтобы сессия переживала запросы
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (e *testEnv) postJSON(t *testing.T, c *http.Client, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := c.Post(e.srv.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestPage(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})

	resp, err := http.Get(env.srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetSession_ReadDoesNotCreateSession(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})

	for i := 0; i < 50; i++ {
		resp, err := http.Get(env.srv.URL + "/api/session")
		require.NoError(t, err)
		snap := decode[sessionResponse](t, resp)
		assert.Empty(t, snap.ID)
		assert.Equal(t, session.StateAwaitingCredential, snap.State)
		assert.GreaterOrEqual(t, len(snap.Models), 2)
	}
	assert.Zero(t, env.reg.Len())
}

func TestSession_CreatedOnFirstWriteAndKeptByCookie(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})
	c := env.client(t)

	key := decode[map[string]any](t, env.postJSON(t, c, "/api/session/key", map[string]string{"api_key": "sk-test"}))
	assert.Equal(t, true, key["has_credential"])
	assert.Equal(t, 1, env.reg.Len())

	resp, err := c.Get(env.srv.URL + "/api/session")
	require.NoError(t, err)
	first := decode[sessionResponse](t, resp)

	resp, err = c.Get(env.srv.URL + "/api/session")
	require.NoError(t, err)
	second := decode[sessionResponse](t, resp)

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.HasCredential)
	assert.Equal(t, session.StateAwaitingInput, first.State)
	assert.Equal(t, 1, env.reg.Len())
}

func TestEndSession_WithoutSession(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})

	req, err := http.NewRequest(http.MethodDelete, env.srv.URL+"/api/session", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, env.reg.Len())
}

func TestTextCycle_BonjourScenario(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})
	c := env.client(t)

	key := decode[map[string]any](t, env.postJSON(t, c, "/api/session/key", map[string]string{"api_key": "sk-test"}))
	assert.Equal(t, true, key["has_credential"])

	res := decode[cycleResult](t, env.postJSON(t, c, "/api/chat/text", map[string]string{"text": "Bonjour"}))

	assert.Equal(t, "Bonjour ! Comment puis-je vous aider ?", res.ReplyText)
	assert.True(t, strings.HasPrefix(res.AudioURL, "data:audio/mpeg;base64,"))
	assert.Equal(t, []conversation.Turn{
		{Role: conversation.RoleUser, Content: "Bonjour"},
		{Role: conversation.RoleAssistant, Content: "Bonjour ! Comment puis-je vous aider ?"},
	}, res.Turns)
	assert.Equal(t, session.StateIdle, res.State)
}

func TestTextCycle_NoCredential(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})
	c := env.client(t)

	res := decode[cycleResult](t, env.postJSON(t, c, "/api/chat/text", map[string]string{"text": "Bonjour"}))

	assert.Empty(t, res.Turns)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, ports.KindCredentialMissing, res.Notices[0].Kind)
	assert.Zero(t, env.llm.calls)
}

func TestTextCycle_SynthesisFailureStillReplies(t *testing.T) {
	env := newTestEnv(t, "sk-env", stubSynthesizer{err: ports.SynthesisError("synthesize", errors.New("down"))})
	c := env.client(t)

	res := decode[cycleResult](t, env.postJSON(t, c, "/api/chat/text", map[string]string{"text": "Bonjour"}))

	assert.NotEmpty(t, res.ReplyText)
	assert.Empty(t, res.AudioURL)
	assert.Len(t, res.Turns, 2)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, session.LevelWarning, res.Notices[0].Level)
}

func TestTextCycle_BadJSON(t *testing.T) {
	env := newTestEnv(t, "sk-env", stubSynthesizer{})

	resp, err := env.client(t).Post(env.srv.URL+"/api/chat/text", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVoiceCycle(t *testing.T) {
	env := newTestEnv(t, "sk-env", stubSynthesizer{})
	c := env.client(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="audio"; filename="capture"`)
	h.Set("Content-Type", "audio/webm;codecs=opus")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("webm-bytes"))
	require.NoError(t, mw.Close())

	resp, err := c.Post(env.srv.URL+"/api/chat/voice", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	res := decode[cycleResult](t, resp)

	assert.Equal(t, "Bonjour", res.Transcript)
	assert.Len(t, res.Turns, 2)
	assert.True(t, strings.HasSuffix(env.stt.contentSeen, ".webm"))
	assert.Equal(t, "Vous avez dit : Bonjour", res.Notices[0].Message)
}

func TestVoiceCycle_MissingFile(t *testing.T) {
	env := newTestEnv(t, "sk-env", stubSynthesizer{})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	resp, err := env.client(t).Post(env.srv.URL+"/api/chat/voice", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetModel(t *testing.T) {
	env := newTestEnv(t, "", stubSynthesizer{})
	c := env.client(t)

	resp := env.postJSON(t, c, "/api/session/model", map[string]string{"model": "gpt-4o"})
	assert.Equal(t, "gpt-4o", decode[map[string]string](t, resp)["model"])

	resp = env.postJSON(t, c, "/api/session/model", map[string]string{"model": "davinci"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResetAndEnd(t *testing.T) {
	env := newTestEnv(t, "sk-env", stubSynthesizer{})
	c := env.client(t)

	decode[cycleResult](t, env.postJSON(t, c, "/api/chat/text", map[string]string{"text": "Bonjour"}))

	snap := decode[session.Snapshot](t, env.postJSON(t, c, "/api/session/reset", nil))
	assert.Empty(t, snap.Turns)

	req, err := http.NewRequest(http.MethodDelete, env.srv.URL+"/api/session", nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, env.reg.Len())
}

func TestCORS_NoCredentialsForForeignOrigins(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CORS())
	r.Get("/api/session", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/session", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
