package conversation

// Store хранит диалог одной сессии в памяти.
// Первый элемент всегда system-turn, он не показывается пользователю.
// Порядок user/assistant store не проверяет — это забота контроллера сессии.
type Store struct {
	systemPrompt string
	turns        []Turn
}

func NewStore(systemPrompt string) *Store {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	s := &Store{systemPrompt: systemPrompt}
	s.Initialize()
	return s
}

// Initialize — ровно один system-turn
func (s *Store) Initialize() {
	s.turns = []Turn{{Role: RoleSystem, Content: s.systemPrompt}}
}

func (s *Store) Append(role Role, content string) {
	s.turns = append(s.turns, Turn{Role: role, Content: content})
}

// RecentWindow возвращает последние n видимых реплик в исходном порядке.
func (s *Store) RecentWindow(n int) []Turn {
	visible := s.VisibleTurns()
	if n <= 0 {
		return []Turn{}
	}
	if len(visible) <= n {
		return visible
	}
	return visible[len(visible)-n:]
}

func (s *Store) Reset() {
	s.Initialize()
}

// VisibleTurns — всё кроме system, копия
func (s *Store) VisibleTurns() []Turn {
	out := make([]Turn, 0, len(s.turns))
	for _, t := range s.turns {
		if t.Role == RoleSystem {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) System() Turn {
	return s.turns[0]
}

// Len — общее число реплик вместе с system
func (s *Store) Len() int {
	return len(s.turns)
}
