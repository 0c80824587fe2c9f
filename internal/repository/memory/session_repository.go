package memory

import (
	"sync"
	"time"

	"eum-chatbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds per-user agent sessions in memory.
// Sessions expire after an hour of inactivity; expired users simply
// start over in the GENERAL state.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(uid string) (*store.Session, bool) {
	if x, found := r.cache.Get(uid); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(uid string) {
	r.cache.Delete(uid)
}

// Update runs fn against the user's session under a per-uid lock and
// persists the result. Two in-flight requests for the same uid are
// serialized here, so slot-filling turns cannot interleave.
func (r *SessionRepository) Update(uid string, fn func(*store.Session)) *store.Session {
	lock := r.keyLock(uid)
	lock.Lock()
	defer lock.Unlock()

	sess, found := r.Get(uid)
	if !found {
		sess = store.NewSession(uid)
	}
	fn(sess)
	r.Save(sess)
	return sess
}

func (r *SessionRepository) keyLock(uid string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[uid]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[uid] = l
	return l
}
