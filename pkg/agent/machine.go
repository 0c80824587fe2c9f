package agent

import (
	"context"
	"strings"

	"eum-chatbot-be/internal/constant"
	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/memory"
	"eum-chatbot-be/pkg/store"
)

// cancelKeywords force an immediate reset to GENERAL from any task
// state, checked before any slot logic for the turn.
var cancelKeywords = []string{"그만", "취소", "cancel", "stop"}

// StepResult is one task turn's outcome.
type StepResult struct {
	Response  string
	Completed bool
}

// Task is one multi-turn slot-filling flow. Keywords route a GENERAL
// query into the task; Next consumes one turn, mutating the session's
// slot progress.
type Task interface {
	State() store.AgentState
	Keywords() []string
	Next(ctx context.Context, sess *store.Session, query string) (*StepResult, error)
}

// TurnResult is what the agent service reports per turn.
type TurnResult struct {
	Response  string
	State     store.AgentState
	Completed bool
	Cancelled bool
}

// Machine is the per-user conversational state machine. One pending
// task per user at a time; an entire turn runs under the session
// store's per-uid lock, so two in-flight requests for the same uid are
// serialized rather than racing on slot state.
type Machine struct {
	sessions *memory.SessionRepository
	tasks    []Task
	logger   logger.ILogger
}

func NewMachine(sessions *memory.SessionRepository, tasks []Task, logger logger.ILogger) *Machine {
	return &Machine{
		sessions: sessions,
		tasks:    tasks,
		logger:   logger,
	}
}

// Handle consumes one user turn. A nil result means the query stays in
// GENERAL and should be answered by the regular generation pipeline.
func (m *Machine) Handle(ctx context.Context, uid, query string) *TurnResult {
	var result *TurnResult

	m.sessions.Update(uid, func(sess *store.Session) {
		sess.LastQuery = query

		if sess.State != store.StateGeneral {
			result = m.continueTask(ctx, sess, query)
			return
		}

		if task := m.route(query); task != nil {
			sess.State = task.State()
			sess.Slot = 0
			sess.CollectedInfo = make(map[string]string)
			result = m.step(ctx, task, sess, query)
		}
	})

	return result
}

func (m *Machine) continueTask(ctx context.Context, sess *store.Session, query string) *TurnResult {
	if containsAny(query, cancelKeywords) {
		state := sess.State
		sess.Reset()
		m.logger.Info("Agent", "Task cancelled by user", map[string]interface{}{
			"uid":   sess.UID,
			"state": string(state),
		})
		return &TurnResult{
			Response:  constant.MsgTaskCancelled,
			State:     store.StateGeneral,
			Cancelled: true,
		}
	}

	task := m.taskFor(sess.State)
	if task == nil {
		// State no longer served by any task; recover to GENERAL.
		m.logger.Warn("Agent", "Session in unknown state, resetting", map[string]interface{}{
			"uid":   sess.UID,
			"state": string(sess.State),
		})
		sess.Reset()
		return nil
	}
	return m.step(ctx, task, sess, query)
}

func (m *Machine) step(ctx context.Context, task Task, sess *store.Session, query string) *TurnResult {
	step, err := task.Next(ctx, sess, query)
	if err != nil {
		m.logger.Error("Agent", "Task step failed", map[string]interface{}{
			"uid":   sess.UID,
			"state": string(sess.State),
			"error": err.Error(),
		})
		sess.Reset()
		return &TurnResult{
			Response: constant.MsgGenerationError,
			State:    store.StateGeneral,
		}
	}

	state := sess.State
	if step.Completed {
		sess.Reset()
		state = store.StateGeneral
	}
	return &TurnResult{
		Response:  step.Response,
		State:     state,
		Completed: step.Completed,
	}
}

func (m *Machine) route(query string) Task {
	for _, task := range m.tasks {
		if containsAny(query, task.Keywords()) {
			return task
		}
	}
	return nil
}

func (m *Machine) taskFor(state store.AgentState) Task {
	for _, task := range m.tasks {
		if task.State() == state {
			return task
		}
	}
	return nil
}

func containsAny(query string, keywords []string) bool {
	lowered := strings.ToLower(query)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
