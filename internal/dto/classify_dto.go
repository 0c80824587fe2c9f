package dto

// ClassifyRequest feeds the diagnostic classification endpoints.
type ClassifyRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatbotClassifyResponse struct {
	QueryType string `json:"query_type"`
	RAGType   string `json:"rag_type"`
}

type AgenticClassifyResponse struct {
	AgentType  string `json:"agent_type"`
	ActionType string `json:"action_type"`
	Domain     string `json:"domain"`
}

// TranslateRequest feeds the preprocess diagnostic endpoint.
type TranslateRequest struct {
	Query string `json:"query" validate:"required"`
}

type TranslateResponse struct {
	TranslatedQuery string `json:"translated_query"`
	LangCode        string `json:"lang_code"`
}
