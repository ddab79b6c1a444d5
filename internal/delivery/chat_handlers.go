package delivery

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/voice_assist/internal/conversation"
	"github.com/Vovarama1992/voice_assist/internal/session"
	json "github.com/goccy/go-json"
)

const maxAudioBytes = 20 << 20

// cycleResult — ответ на один цикл; реализует session.Output
type cycleResult struct {
	Transcript string              `json:"transcript,omitempty"`
	ReplyText  string              `json:"reply,omitempty"`
	AudioURL   string              `json:"audio,omitempty"`
	Notices    []session.Notice    `json:"notices"`
	Turns      []conversation.Turn `json:"turns"`
	State      session.State       `json:"state"`
}

func newCycleResult() *cycleResult {
	return &cycleResult{Notices: []session.Notice{}}
}

func (c *cycleResult) Transcribed(text string) {
	c.Transcript = text
	c.Notices = append(c.Notices, session.Notice{Level: session.LevelInfo, Message: "Vous avez dit : " + text})
}

func (c *cycleResult) Reply(text string) {
	c.ReplyText = text
}

// Audio — встраиваем mp3 как data URL для плеера на странице
func (c *cycleResult) Audio(data []byte, mimeType string) {
	c.AudioURL = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (c *cycleResult) Notice(n session.Notice) {
	c.Notices = append(c.Notices, n)
}

func (c *cycleResult) finish(sess *session.Session) *cycleResult {
	snap := sess.Snapshot()
	c.Turns = snap.Turns
	c.State = snap.State
	return c
}

// POST /api/chat/text
func (h *Handler) SendText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	out := newCycleResult()
	sess.SendText(r.Context(), req.Text, out)
	h.logNotices(sess.ID, out.Notices)

	writeJSON(w, http.StatusOK, out.finish(sess))
}

// POST /api/chat/voice, multipart поле "audio"
func (h *Handler) SendVoice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "missing audio: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read audio: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := sessionFrom(r)
	out := newCycleResult()
	sess.SendVoice(r.Context(), data, header.Header.Get("Content-Type"), out)
	h.logNotices(sess.ID, out.Notices)

	writeJSON(w, http.StatusOK, out.finish(sess))
}

func (h *Handler) logNotices(sessionID string, notices []session.Notice) {
	for _, n := range notices {
		if n.Level == session.LevelInfo {
			continue
		}
		h.log.Log(logger.LogEntry{
			Level:   string(n.Level),
			Message: "session " + sessionID + ": " + string(n.Kind) + ": " + n.Message,
			Service: "voice_assist",
		})
	}
}
