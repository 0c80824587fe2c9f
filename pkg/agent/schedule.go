package agent

import (
	"context"
	"fmt"

	"eum-chatbot-be/pkg/store"
)

// ScheduleTask collects a calendar event slot by slot: date, time,
// title. The title turn performs the (stubbed) calendar add and
// completes.
type ScheduleTask struct{}

func NewScheduleTask() *ScheduleTask {
	return &ScheduleTask{}
}

func (t *ScheduleTask) State() store.AgentState {
	return store.StateSchedule
}

func (t *ScheduleTask) Keywords() []string {
	return []string{"일정", "약속", "schedule", "calendar"}
}

func (t *ScheduleTask) Next(ctx context.Context, sess *store.Session, query string) (*StepResult, error) {
	// Entry turn: sub-classify the request before collecting slots.
	if _, analyzed := sess.CollectedInfo["action"]; !analyzed {
		action := AnalyzeCalendarInput(query)
		sess.CollectedInfo["action"] = string(action)

		switch action {
		case CalendarDelete, CalendarEdit:
			// Only event creation is wired end to end.
			return &StepResult{
				Response:  "죄송합니다. 일정 삭제와 수정 기능은 아직 개발 중입니다. 새 일정 추가는 도와드릴 수 있어요.",
				Completed: true,
			}, nil
		}

		// A proposal phrased with a date already fills the first slot.
		if hasDateMarker(query) {
			sess.CollectedInfo["date"] = query
			sess.Slot = 1
			return &StepResult{Response: "몇 시로 잡을까요? (예: 오후 3시)"}, nil
		}
		return &StepResult{Response: "언제로 잡을까요? 날짜를 알려주세요. (예: 내일, 5월 2일)"}, nil
	}

	switch sess.Slot {
	case 0: // date
		if !hasDateMarker(query) {
			return &StepResult{Response: "날짜를 알아듣지 못했어요. 다시 알려주시겠어요? (예: 내일, 5월 2일)"}, nil
		}
		sess.CollectedInfo["date"] = query
		sess.Slot = 1
		return &StepResult{Response: "몇 시로 잡을까요? (예: 오후 3시)"}, nil

	case 1: // time
		if !hasTimeMarker(query) {
			return &StepResult{Response: "시간을 알아듣지 못했어요. 다시 알려주시겠어요? (예: 오후 3시)"}, nil
		}
		sess.CollectedInfo["time"] = query
		sess.Slot = 2
		return &StepResult{Response: "무슨 일정인가요? 제목을 알려주세요."}, nil

	default: // title, final slot
		sess.CollectedInfo["title"] = query
		addCalendarEvent(CalendarEvent{
			Date:  sess.CollectedInfo["date"],
			Time:  sess.CollectedInfo["time"],
			Title: sess.CollectedInfo["title"],
		})
		return &StepResult{
			Response: fmt.Sprintf("일정을 등록했어요: %s %s — %s",
				sess.CollectedInfo["date"], sess.CollectedInfo["time"], sess.CollectedInfo["title"]),
			Completed: true,
		}, nil
	}
}
