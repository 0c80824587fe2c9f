package store

// Document represents a retrieved knowledge chunk used to ground generation
type Document struct {
	ID      string  `json:"id"`
	Domain  string  `json:"domain"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// AgentState identifies which task (if any) a user is currently working through
type AgentState string

const (
	StateGeneral  AgentState = "GENERAL"
	StateSchedule AgentState = "SCHEDULE"
	StateJob      AgentState = "JOB"
	StateWriting  AgentState = "WRITING"
)

// Session is the per-user conversational state kept in memory.
// One pending task per user at a time; Slot tracks progress through
// the active task's slot-filling sequence.
type Session struct {
	UID           string            `json:"uid"`
	State         AgentState        `json:"state"`
	Slot          int               `json:"slot"`
	CollectedInfo map[string]string `json:"collected_info"`
	LastQuery     string            `json:"last_query"`
}

// NewSession returns a fresh session in the GENERAL state
func NewSession(uid string) *Session {
	return &Session{
		UID:           uid,
		State:         StateGeneral,
		CollectedInfo: make(map[string]string),
	}
}

// Reset returns the session to GENERAL and clears any task progress
func (s *Session) Reset() {
	s.State = StateGeneral
	s.Slot = 0
	s.CollectedInfo = make(map[string]string)
}
