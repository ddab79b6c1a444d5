package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry — живые сессии по id. Ничего не сохраняется между запусками;
// простаивающие сессии убирает Sweep.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	lastUsed map[string]time.Time
	settings Settings
	deps     Deps
	now      func() time.Time
}

func NewRegistry(settings Settings, deps Deps) *Registry {
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		lastUsed: make(map[string]time.Time),
		settings: settings,
		deps:     deps,
		now:      time.Now,
	}
}

// Create — новая сессия со случайным id
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	s := New(id, r.settings, r.deps)

	r.mu.Lock()
	r.sessions[id] = s
	r.lastUsed[id] = r.now()
	r.mu.Unlock()

	r.deps.Log.Infof("[registry] session started id=%s", id)
	return s
}

// Draft — снимок сессии, которой ещё нет: то, что увидит новый пользователь
func (r *Registry) Draft() Snapshot {
	return New("", r.settings, r.deps).Snapshot()
}

// Get — поиск с продлением жизни сессии
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		r.lastUsed[id] = r.now()
	}
	return s, ok
}

// GetOrCreate — для поверхностей со своими стабильными id (чат Telegram)
func (r *Registry) GetOrCreate(id string) *Session {
	if id == "" {
		return r.Create()
	}

	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		s = New(id, r.settings, r.deps)
		r.sessions[id] = s
	}
	r.lastUsed[id] = r.now()
	r.mu.Unlock()

	if !ok {
		r.deps.Log.Infof("[registry] session started id=%s", id)
	}
	return s
}

// End — конец сессии: диалог и ключ уходят вместе с ней
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	r.drop(id)
	r.deps.Log.Infof("[registry] session ended id=%s", id)
	return true
}

// Sweep завершает сессии, к которым не обращались дольше maxIdle
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, at := range r.lastUsed {
		if at.Before(cutoff) {
			r.drop(id)
			n++
		}
	}
	return n
}

func (r *Registry) drop(id string) {
	delete(r.sessions, id)
	delete(r.lastUsed, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
