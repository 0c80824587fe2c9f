package dto

// PublishEmbedDocumentMessage is the ingestion event payload. The full
// document travels with the message so the consumer needs no second
// lookup before chunking.
type PublishEmbedDocumentMessage struct {
	Domain     string `json:"domain"`
	SourceName string `json:"source_name"`
	Content    string `json:"content"`
}
