package model

// Passage is a single unit of retrieved text used to ground an answer.
type Passage struct {
	Title  string `json:"title"`  // Title of the passage/document
	Source string `json:"source"` // Source URL or identifier
	Text   string `json:"text"`   // The actual passage content
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question  string           `json:"question"`
	SessionID string           `json:"session_id,omitempty"`
	Analyzed  *AnalyzedContext `json:"analyzed,omitempty"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// AskRAGRequest is the body of POST /ask_rag.
type AskRAGRequest struct {
	Question string `json:"question"`
	ForceGPT bool   `json:"force_gpt,omitempty"`
}

// AskRAGResponse is the body returned by POST /ask_rag.
type AskRAGResponse struct {
	Response string `json:"response"`
}

// ErrorResponse carries a human-readable error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
