package constant

// User-facing Korean fallback messages. Generation-stage failures are
// answered in Korean because the final translate-back stage also
// re-translates these when the user's language differs.
const (
	MsgGenerationError    = "죄송합니다. 응답을 생성하는 중에 오류가 발생했습니다."
	MsgNoInformation      = "죄송합니다. 해당 질문에 대한 정보를 찾을 수 없습니다."
	MsgWebSearchNoResult  = "죄송합니다. 웹에서 관련 정보를 찾을 수 없어 답변을 드리기 어렵습니다."
	MsgUnsupportedQuery   = "죄송합니다. 현재는 일반 대화, 추론, 웹 검색 유형의 질문만 처리할 수 있습니다."
	MsgInternalError      = "서버 내부 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgGenerationTimeout  = "죄송합니다. 응답 생성 시간이 초과되었습니다. 잠시 후 다시 시도해주세요. (제한 시간: %.0f초)"
	MsgTaskCancelled      = "알겠습니다. 진행 중이던 작업을 취소했습니다. 다른 도움이 필요하시면 말씀해주세요."
)
