package agent

import "strings"

// CalendarAction is the calendar sub-classification of a schedule query.
type CalendarAction string

const (
	CalendarAdd     CalendarAction = "add"
	CalendarDelete  CalendarAction = "delete"
	CalendarEdit    CalendarAction = "edit"
	CalendarUnknown CalendarAction = "unknown"
)

var (
	// Bare "일" would match 일정/일자리, so only the less ambiguous
	// day words count as date markers.
	dateMarkers = []string{"년", "월", "오늘", "내일", "모레", "주말", "요일"}
	timeMarkers = []string{"시", "오전", "오후", "아침", "저녁", "밤", ":"}
)

// AnalyzeCalendarInput maps a schedule query to a calendar action.
// Explicit verbs win; otherwise event-proposal phrasing that carries a
// date or time marker ("오늘 오후에 영화 보자") counts as an add.
func AnalyzeCalendarInput(query string) CalendarAction {
	switch {
	case strings.Contains(query, "추가"):
		return CalendarAdd
	case strings.Contains(query, "삭제"):
		return CalendarDelete
	case strings.Contains(query, "수정"), strings.Contains(query, "변경"):
		return CalendarEdit
	case hasDateMarker(query) || hasTimeMarker(query):
		return CalendarAdd
	default:
		return CalendarUnknown
	}
}

func hasDateMarker(query string) bool {
	return containsAny(query, dateMarkers)
}

func hasTimeMarker(query string) bool {
	return containsAny(query, timeMarkers)
}

// CalendarEvent is the stub payload handed to the (not yet wired)
// external calendar backend.
type CalendarEvent struct {
	Date  string
	Time  string
	Title string
}

// addCalendarEvent is a stub: the external calendar integration is not
// wired, so completion only acknowledges the collected event.
func addCalendarEvent(event CalendarEvent) bool {
	return true
}
