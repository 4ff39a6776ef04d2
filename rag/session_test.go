package rag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Run("Should keep messages in append order", func(t *testing.T) {
		s := &Session{}
		s.Append(RoleUser, "질문")
		s.Append(RoleAssistant, "답변")

		history := s.History()
		require.Len(t, history, 2)
		assert.Equal(t, RoleUser, history[0].Role)
		assert.Equal(t, RoleAssistant, history[1].Role)
	})

	t.Run("Should evict oldest messages beyond the cap", func(t *testing.T) {
		s := &Session{}
		for i := 0; i < maxHistoryMessages+5; i++ {
			s.Append(RoleUser, fmt.Sprintf("메시지 %d", i))
		}

		history := s.History()
		require.Len(t, history, maxHistoryMessages)
		assert.Equal(t, "메시지 5", history[0].Content)
	})

	t.Run("Should render an empty transcript for a fresh session", func(t *testing.T) {
		assert.Equal(t, "", (&Session{}).Transcript())
	})

	t.Run("Should render role-tagged transcript lines", func(t *testing.T) {
		s := &Session{}
		s.Append(RoleUser, "카페 어때요?")
		s.Append(RoleAssistant, "나쁘지 않습니다.")

		transcript := s.Transcript()
		assert.Contains(t, transcript, "[이전 대화]")
		assert.Contains(t, transcript, "사용자: 카페 어때요?")
		assert.Contains(t, transcript, "어시스턴트: 나쁘지 않습니다.")
	})
}

func TestSessionStore(t *testing.T) {
	t.Run("Should return the same session for the same id", func(t *testing.T) {
		store := NewSessionStore()
		a := store.Get("abc")
		b := store.Get("abc")
		assert.Same(t, a, b)
	})

	t.Run("Should isolate sessions by id", func(t *testing.T) {
		store := NewSessionStore()
		store.Get("a").Append(RoleUser, "질문")
		assert.Empty(t, store.Get("b").History())
	})
}
