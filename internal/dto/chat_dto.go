package dto

// ChatRequest is the shared request body of the chatbot and agentic
// endpoints.
type ChatRequest struct {
	UID   string `json:"uid" validate:"required"`
	Query string `json:"query" validate:"required"`
}

// ChatResponse pairs the answer with per-request pipeline metadata.
type ChatResponse struct {
	Response string                 `json:"response"`
	Metadata map[string]interface{} `json:"metadata"`
}
