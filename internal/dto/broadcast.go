package dto

import "time"

// MessageTemplate is a user-managed reusable broadcast message. Content may
// contain the [NOME] and [DATA] placeholders.
// @Description Saved broadcast message template
type MessageTemplate struct {
	ID      string `json:"id" example:"1718031600000"`
	Title   string `json:"title" binding:"required" example:"Oferta Mourão"`
	Content string `json:"content" binding:"required" example:"Boa tarde [NOME]! Temos um lote especial disponível hoje [DATA]."`
}

// TransmissionList is a saved audience: a named set of phone numbers captured
// from a category filter at save time.
// @Description Saved broadcast audience
type TransmissionList struct {
	ID       string   `json:"id" example:"1718031600001"`
	Name     string   `json:"name" binding:"required" example:"Fornecedores SP"`
	Category string   `json:"category" example:"SUPPLIER"`
	Contacts []string `json:"contacts"`
}

// BroadcastRequest starts a broadcast run. The audience is either a saved
// list (list_id) or a live category filter; the message is either inline or
// a saved template (template_id).
// @Description Broadcast start request
type BroadcastRequest struct {
	// Gateway instance to send through (defaults to the configured one)
	Instance string `json:"instance" example:"enside-master"`
	// Audience category filter (ignored when list_id is set)
	Category string `json:"category" example:"SUPPLIER"`
	// Saved transmission list to use as the audience
	ListID string `json:"list_id"`
	// Saved template to use as the message body
	TemplateID string `json:"template_id"`
	// Inline message body (ignored when template_id is set)
	Message string `json:"message" example:"Olá [NOME], tudo bem?"`
}

// BroadcastRunStatus is a point-in-time view of one broadcast run.
// @Description Broadcast run progress and counters
type BroadcastRunStatus struct {
	ID        string    `json:"id"`
	Status    string    `json:"status" example:"running"`
	Total     int       `json:"total"`
	Sent      int       `json:"sent"`
	Failed    int       `json:"failed"`
	Progress  int       `json:"progress" example:"67"`
	StartedAt time.Time `json:"started_at"`
}

// AssistantRequest is one turn sent to the operations assistant.
// @Description Assistant chat request
type AssistantRequest struct {
	Message string `json:"message" binding:"required" example:"Monte uma mensagem de oferta para fornecedores"`
	// Optional snapshot of the dashboard state injected into the prompt
	SystemContext string `json:"system_context"`
}

// AssistantResponse carries the assistant's reply.
// @Description Assistant chat reply
type AssistantResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse represents an error response
// @Description Error response returned when request fails
type ErrorResponse struct {
	// Error message describing what went wrong
	Error string `json:"error" example:"Key: 'SyncRequest.GID' Error:Field validation for 'GID' failed on the 'required' tag"`
}
