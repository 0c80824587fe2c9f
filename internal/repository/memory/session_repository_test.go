package memory

import (
	"sync"
	"testing"

	"eum-chatbot-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCreatesSession(t *testing.T) {
	repo := NewSessionRepository()

	sess := repo.Update("user-1", func(s *store.Session) {
		s.State = store.StateSchedule
	})

	assert.Equal(t, "user-1", sess.UID)
	assert.Equal(t, store.StateSchedule, sess.State)

	stored, found := repo.Get("user-1")
	assert.True(t, found)
	assert.Equal(t, store.StateSchedule, stored.State)
}

func TestUpdateIsolatesUsers(t *testing.T) {
	repo := NewSessionRepository()

	repo.Update("user-a", func(s *store.Session) { s.State = store.StateJob })
	repo.Update("user-b", func(s *store.Session) { s.State = store.StateWriting })

	a, _ := repo.Get("user-a")
	b, _ := repo.Get("user-b")
	assert.Equal(t, store.StateJob, a.State)
	assert.Equal(t, store.StateWriting, b.State)
}

// Concurrent turns for the same uid must not interleave slot updates.
func TestUpdateSerializesSameUser(t *testing.T) {
	repo := NewSessionRepository()

	const turns = 100
	var wg sync.WaitGroup
	wg.Add(turns)
	for i := 0; i < turns; i++ {
		go func() {
			defer wg.Done()
			repo.Update("user-1", func(s *store.Session) {
				s.Slot++
			})
		}()
	}
	wg.Wait()

	sess, found := repo.Get("user-1")
	assert.True(t, found)
	assert.Equal(t, turns, sess.Slot)
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()
	repo.Update("user-1", func(s *store.Session) {})
	repo.Delete("user-1")

	_, found := repo.Get("user-1")
	assert.False(t, found)
}
