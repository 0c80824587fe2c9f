package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"eum-chatbot-be/internal/pkg/logger"
	"eum-chatbot-be/internal/repository/memory"
	"eum-chatbot-be/pkg/llm"
	"eum-chatbot-be/pkg/store"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) CheckConnection(ctx context.Context) bool { return true }

func (f *fakeLLM) Timeout() time.Duration { return 30 * time.Second }

func newTestMachine(provider *fakeLLM) (*Machine, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository()
	nop := logger.NewNopLogger()
	m := NewMachine(sessions, []Task{
		NewScheduleTask(),
		NewJobTask(provider),
		NewWritingTask(provider, nop),
	}, nop)
	return m, sessions
}

func TestGeneralQueryStaysNil(t *testing.T) {
	m, sessions := newTestMachine(&fakeLLM{})

	if got := m.Handle(context.Background(), "u1", "안녕하세요"); got != nil {
		t.Fatalf("expected nil for general query, got %+v", got)
	}
	if sess, ok := sessions.Get("u1"); ok && sess.State != store.StateGeneral {
		t.Errorf("state = %v, want GENERAL", sess.State)
	}
}

func TestScheduleFlowCompletes(t *testing.T) {
	m, sessions := newTestMachine(&fakeLLM{})
	ctx := context.Background()
	uid := "u1"

	got := m.Handle(ctx, uid, "일정 추가하고 싶어")
	if got == nil || got.State != store.StateSchedule {
		t.Fatalf("entry turn = %+v, want SCHEDULE state", got)
	}

	if got = m.Handle(ctx, uid, "내일"); got.Completed {
		t.Fatal("date turn should not complete the task")
	}
	if got = m.Handle(ctx, uid, "오후 3시"); got.Completed {
		t.Fatal("time turn should not complete the task")
	}

	got = m.Handle(ctx, uid, "병원 예약")
	if !got.Completed {
		t.Fatalf("title turn should complete, got %+v", got)
	}
	if !strings.Contains(got.Response, "병원 예약") {
		t.Errorf("completion should echo the event, got %q", got.Response)
	}

	sess, _ := sessions.Get(uid)
	if sess.State != store.StateGeneral || sess.Slot != 0 {
		t.Errorf("session after completion = %+v, want reset to GENERAL", sess)
	}
}

func TestScheduleRejectsBadDate(t *testing.T) {
	m, _ := newTestMachine(&fakeLLM{})
	ctx := context.Background()

	m.Handle(ctx, "u1", "일정 잡아줘")
	got := m.Handle(ctx, "u1", "글쎄요")
	if got.Completed || got.State != store.StateSchedule {
		t.Fatalf("bad date should re-ask, got %+v", got)
	}

	got = m.Handle(ctx, "u1", "5월 2주말")
	if got.State != store.StateSchedule {
		t.Fatalf("valid date should advance within SCHEDULE, got %+v", got)
	}
}

func TestCancellationResetsBeforeSlotLogic(t *testing.T) {
	m, sessions := newTestMachine(&fakeLLM{})
	ctx := context.Background()

	m.Handle(ctx, "u1", "일정 추가")
	got := m.Handle(ctx, "u1", "아 그만할래")
	if got == nil || !got.Cancelled {
		t.Fatalf("cancel keyword should cancel, got %+v", got)
	}
	if got.State != store.StateGeneral {
		t.Errorf("state = %v, want GENERAL", got.State)
	}

	sess, _ := sessions.Get("u1")
	if sess.State != store.StateGeneral || len(sess.CollectedInfo) != 0 {
		t.Errorf("session not reset: %+v", sess)
	}
}

func TestJobFlowCompletes(t *testing.T) {
	provider := &fakeLLM{response: "고용센터와 잡코리아를 활용해보세요."}
	m, _ := newTestMachine(provider)
	ctx := context.Background()
	uid := "u2"

	m.Handle(ctx, uid, "일자리 찾고 있어요")
	m.Handle(ctx, uid, "요리사")
	m.Handle(ctx, uid, "서울")
	got := m.Handle(ctx, uid, "3년")

	if !got.Completed {
		t.Fatalf("experience turn should complete, got %+v", got)
	}
	if got.Response != "고용센터와 잡코리아를 활용해보세요." {
		t.Errorf("response = %q", got.Response)
	}
	if provider.calls != 1 {
		t.Errorf("LLM calls = %d, want 1", provider.calls)
	}
}

func TestWritingFlowCompletes(t *testing.T) {
	provider := &fakeLLM{response: "이력서 초안입니다."}
	m, _ := newTestMachine(provider)
	ctx := context.Background()
	uid := "u3"

	m.Handle(ctx, uid, "이력서 써줘")
	answers := []string{"김민수", "백엔드 개발자", "3년", "Go, PostgreSQL", "학사"}
	var got *TurnResult
	for _, answer := range answers {
		got = m.Handle(ctx, uid, answer)
	}

	if !got.Completed {
		t.Fatalf("final slot should complete, got %+v", got)
	}
	if got.Response != "이력서 초안입니다." {
		t.Errorf("response = %q", got.Response)
	}
}

func TestTaskErrorResetsToGeneral(t *testing.T) {
	provider := &fakeLLM{err: llm.ErrConnection}
	m, sessions := newTestMachine(provider)
	ctx := context.Background()
	uid := "u4"

	m.Handle(ctx, uid, "일자리 구해줘")
	m.Handle(ctx, uid, "요리사")
	m.Handle(ctx, uid, "부산")
	got := m.Handle(ctx, uid, "없음")

	if got.Completed {
		t.Fatal("failed generation must not report completed")
	}
	sess, _ := sessions.Get(uid)
	if sess.State != store.StateGeneral {
		t.Errorf("state = %v, want GENERAL after error", sess.State)
	}
}

func TestAnalyzeCalendarInput(t *testing.T) {
	tests := []struct {
		query string
		want  CalendarAction
	}{
		{"회의 일정 추가해줘", CalendarAdd},
		{"내일 약속 삭제해줘", CalendarDelete},
		{"일정 수정하고 싶어", CalendarEdit},
		{"시간 변경해줘", CalendarEdit},
		{"오늘 오후에 영화 보자", CalendarAdd}, // proposal with date/time markers
		{"일정이 뭐지", CalendarUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := AnalyzeCalendarInput(tt.query); got != tt.want {
				t.Errorf("AnalyzeCalendarInput(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
