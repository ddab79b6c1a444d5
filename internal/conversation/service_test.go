package conversation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillExchanges(s *Store, n int) {
	for i := 1; i <= n; i++ {
		s.Append(RoleUser, fmt.Sprintf("question %d", i))
		s.Append(RoleAssistant, fmt.Sprintf("réponse %d", i))
	}
}

func TestNewStore_SingleHiddenSystemTurn(t *testing.T) {
	s := NewStore("")

	require.Equal(t, 1, s.Len())
	assert.Equal(t, RoleSystem, s.System().Role)
	assert.Equal(t, DefaultSystemPrompt, s.System().Content)
	assert.Empty(t, s.VisibleTurns())
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	s := NewStore("prompt")
	s.Append(RoleUser, "Bonjour")
	s.Append(RoleAssistant, "Bonjour ! Comment puis-je vous aider ?")

	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "Bonjour"},
		{Role: RoleAssistant, Content: "Bonjour ! Comment puis-je vous aider ?"},
	}, s.VisibleTurns())
	assert.Equal(t, "prompt", s.System().Content)
}

func TestStore_RecentWindow(t *testing.T) {
	s := NewStore("")
	fillExchanges(s, 3)

	window := s.RecentWindow(4)
	require.Len(t, window, 4)
	assert.Equal(t, s.VisibleTurns()[2:], window)
	assert.Equal(t, "question 2", window[0].Content)
	assert.Equal(t, "réponse 3", window[3].Content)
}

func TestStore_RecentWindowShorterThanN(t *testing.T) {
	s := NewStore("")
	fillExchanges(s, 1)

	assert.Equal(t, s.VisibleTurns(), s.RecentWindow(10))
	assert.Empty(t, s.RecentWindow(0))
	assert.Empty(t, NewStore("").RecentWindow(4))
}

func TestStore_ResetFromAnyState(t *testing.T) {
	for _, exchanges := range []int{0, 1, 5} {
		s := NewStore("")
		fillExchanges(s, exchanges)
		s.Append(RoleUser, "dangling")

		s.Reset()

		assert.Empty(t, s.VisibleTurns())
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, RoleSystem, s.System().Role)
	}
}

func TestStore_VisibleTurnsIsCopy(t *testing.T) {
	s := NewStore("")
	s.Append(RoleUser, "a")

	v := s.VisibleTurns()
	v[0].Content = "changed"

	assert.Equal(t, "a", s.VisibleTurns()[0].Content)
}
