package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Vovarama1992/voice_assist/internal/ai"
	"github.com/Vovarama1992/voice_assist/internal/audio"
	"github.com/Vovarama1992/voice_assist/internal/conversation"
	"github.com/Vovarama1992/voice_assist/internal/credential"
	"github.com/Vovarama1992/voice_assist/internal/ports"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Settings — параметры генерации и синтеза для сессии
type Settings struct {
	SystemPrompt  string
	Model         string
	MaxTokens     int
	Temperature   float32
	ContextWindow int
	Language      string
}

func DefaultSettings() Settings {
	return Settings{
		SystemPrompt:  conversation.DefaultSystemPrompt,
		Model:         ai.DefaultModel,
		MaxTokens:     200,
		Temperature:   0.7,
		ContextWindow: 4,
		Language:      "fr",
	}
}

// Deps — внешние адаптеры, общие для всех сессий
type Deps struct {
	Resolver    *credential.Resolver
	Transcriber ports.Transcriber
	Completer   ports.Completer
	Synthesizer ports.Synthesizer
	Log         *zap.SugaredLogger

	// OnState — для трассировки переходов, может быть nil
	OnState func(id string, st State)
}

// Session — состояние одного пользователя: диалог, ключ, выбранная модель.
// mu держится весь цикл, поэтому циклы и Reset не пересекаются.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	conv     *conversation.Store
	cred     credential.Credential
	hasCred  bool
	model    string
	settings Settings
	deps     Deps
	log      *zap.SugaredLogger
}

func New(id string, settings Settings, deps Deps) *Session {
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	if deps.Resolver == nil {
		deps.Resolver = credential.NewResolver("")
	}
	if settings.ContextWindow < 1 {
		settings.ContextWindow = 1
	}
	if settings.Model == "" || !ai.IsSupportedModel(settings.Model) {
		settings.Model = ai.DefaultModel
	}

	s := &Session{
		ID:       id,
		conv:     conversation.NewStore(settings.SystemPrompt),
		model:    settings.Model,
		settings: settings,
		deps:     deps,
		log:      deps.Log.With("session", id),
	}
	s.cred, s.hasCred = deps.Resolver.Resolve("")
	s.setState(s.inputState())
	return s
}

// Snapshot — то, что показывает UI
type Snapshot struct {
	ID            string              `json:"id"`
	State         State               `json:"state"`
	Model         string              `json:"model"`
	HasCredential bool                `json:"has_credential"`
	Turns         []conversation.Turn `json:"turns"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:            s.ID,
		State:         s.state,
		Model:         s.model,
		HasCredential: s.hasCred,
		Turns:         s.conv.VisibleTurns(),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) VisibleTurns() []conversation.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.VisibleTurns()
}

// SetAPIKey — ключ из поля ввода; пустое поле возвращает к ключу из конфигурации.
func (s *Session) SetAPIKey(field string) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred, s.hasCred = s.deps.Resolver.Resolve(field)
	s.setState(s.inputState())
	if !s.hasCred {
		return Notice{Level: LevelWarning, Kind: ports.KindCredentialMissing, Message: msgCredentialMissing}
	}
	s.log.Infof("[session] credential resolved")
	return Notice{Level: LevelInfo, Message: msgCredentialSet}
}

func (s *Session) HasCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasCred
}

func (s *Session) SetModel(model string) error {
	if !ai.IsSupportedModel(model) {
		return fmt.Errorf("unsupported model %q", model)
	}
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
	return nil
}

func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Reset — очистка диалога, ключ и модель остаются
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Reset()
	s.setState(s.inputState())
	s.log.Infof("[session] conversation reset")
}

// SendText — текстовый цикл: сразу к генерации
func (s *Session) SendText(ctx context.Context, text string, out Output) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		out.Notice(Notice{Level: LevelWarning, Message: msgEmptyText})
		return
	}
	if !s.requireCredential(out) {
		return
	}

	s.log.Infof("[text] start chars=%d", len(text))
	s.completeTurn(ctx, text, out)
	s.log.Infof("[text] done")
}

// SendVoice — голосовой цикл. Временный файл удаляется на любом выходе.
func (s *Session) SendVoice(ctx context.Context, data []byte, contentType string, out Output) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) == 0 {
		out.Notice(Notice{Level: LevelWarning, Message: msgEmptyAudio})
		return
	}
	if !s.requireCredential(out) {
		return
	}

	tmp, err := audio.NewTempFile(data, audio.SuffixFor(contentType))
	if err != nil {
		s.log.Errorf("[voice] save tmp fail: %v", err)
		s.fail(out, "Erreur : ", ports.ServiceError("save audio", err))
		return
	}
	defer func() {
		if err := tmp.Release(); err != nil {
			s.log.Warnf("[voice] %v", err)
		}
	}()
	s.log.Infof("[voice] saved %s (%s)", tmp.Path(), humanize.Bytes(uint64(tmp.Size())))

	// голос -> текст
	s.setState(StateTranscribing)
	text, err := s.deps.Transcriber.Transcribe(ctx, tmp.Path(), s.cred)
	if err != nil {
		s.log.Errorf("[voice] transcribe fail: %v", err)
		s.fail(out, "Erreur de transcription : ", err)
		return
	}
	s.log.Infof("[voice] transcribed chars=%d", len(text))
	out.Transcribed(text)

	s.completeTurn(ctx, text, out)
	s.log.Infof("[voice] done")
}

func (s *Session) requireCredential(out Output) bool {
	if s.hasCred {
		s.setState(StateAwaitingInput)
		return true
	}
	s.setState(StateAwaitingCredential)
	out.Notice(Notice{Level: LevelError, Kind: ports.KindCredentialMissing, Message: msgCredentialMissing})
	return false
}

// completeTurn: реплика пользователя пишется первой и остаётся даже при ошибке генерации,
// потом генерация, ответ, синтез.
func (s *Session) completeTurn(ctx context.Context, userText string, out Output) {
	s.conv.Append(conversation.RoleUser, userText)
	s.setState(StateCompleting)

	turns := []conversation.Turn{s.conv.System()}
	turns = append(turns, s.conv.RecentWindow(s.settings.ContextWindow)...)

	reply, err := s.deps.Completer.Complete(ctx, turns, s.model, s.settings.MaxTokens, s.settings.Temperature, s.cred)
	if err != nil {
		s.log.Errorf("[ai] completion fail model=%s: %v", s.model, err)
		s.fail(out, "Erreur : ", err)
		return
	}

	s.conv.Append(conversation.RoleAssistant, reply)
	out.Reply(reply)

	// ответ -> голос; ошибка не откатывает ответ
	s.setState(StateSynthesizing)
	if s.deps.Synthesizer != nil {
		data, err := s.deps.Synthesizer.Synthesize(ctx, reply, s.settings.Language)
		if err != nil {
			s.log.Warnf("[tts] synth fail: %v", err)
			out.Notice(Notice{Level: LevelWarning, Kind: ports.KindSynthesis, Message: msgSynthesisFailed})
		} else {
			out.Audio(data, "audio/mpeg")
		}
	}
	s.setState(StateIdle)
}

func (s *Session) fail(out Output, prefix string, err error) {
	out.Notice(Notice{Level: LevelError, Kind: ports.KindOf(err), Message: prefix + ports.HintOf(err)})
	s.setState(StateIdle)
}

func (s *Session) inputState() State {
	if s.hasCred {
		return StateAwaitingInput
	}
	return StateAwaitingCredential
}

func (s *Session) setState(st State) {
	s.state = st
	if s.deps.OnState != nil {
		s.deps.OnState(s.ID, st)
	}
}
