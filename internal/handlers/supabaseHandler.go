package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"enside/madeiras-ops-worker/internal/dto"

	"github.com/supabase-community/supabase-go"
)

const (
	templatesTable = "message_templates"
	listsTable     = "broadcast_lists"
	eventsTable    = "events"
)

// SupabaseHandler persists message templates, saved transmission lists and
// audit events using Supabase.
type SupabaseHandler struct {
	client *supabase.Client
}

// NewSupabaseHandler creates a new SupabaseHandler instance
// url is the Supabase project URL (e.g., "https://xxx.supabase.co")
// key is the Supabase anon or service role key
func NewSupabaseHandler(url, key string) (*SupabaseHandler, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("supabase key is required")
	}

	log.Printf("[SupabaseHandler] Initializing with URL: %s", url)

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to create client: %v", err)
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseHandler{
		client: client,
	}, nil
}

// GetClient returns the underlying Supabase client for advanced operations
func (h *SupabaseHandler) GetClient() *supabase.Client {
	return h.client
}

// Starter templates for a fresh workspace, matching what the operation
// actually sends day to day.
var defaultTemplates = []dto.MessageTemplate{
	{Title: "👋 Saudação Inicial", Content: "Olá [NOME], aqui é o Anderson da Enside Madeiras. Como estão os negócios hoje, [DATA]?"},
	{Title: "🪵 Oferta Mourão", Content: "Boa tarde [NOME]! Temos um lote especial de mourão 2.20m disponível hoje [DATA]. Gostaria de uma cotação?"},
	{Title: "🚚 Status Logística", Content: "Prezado [NOME], verificando disponibilidade de frete para a carga de hoje. Consegue carregar ainda em [DATA]?"},
}

// EnsureDefaultTemplates seeds the starter templates when the workspace has
// none. Existing templates are never touched.
func (h *SupabaseHandler) EnsureDefaultTemplates() error {
	templates, err := h.GetTemplates()
	if err != nil {
		return err
	}
	if len(templates) > 0 {
		return nil
	}

	log.Printf("[SupabaseHandler] No templates found, seeding %d defaults", len(defaultTemplates))
	for i := range defaultTemplates {
		if _, err := h.InsertTemplate(&defaultTemplates[i]); err != nil {
			return fmt.Errorf("failed to seed template %q: %w", defaultTemplates[i].Title, err)
		}
	}
	return nil
}

// GetTemplates retrieves all message templates.
func (h *SupabaseHandler) GetTemplates() ([]dto.MessageTemplate, error) {
	data, _, err := h.client.From(templatesTable).Select("*", "exact", false).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to list templates: %v", err)
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var templates []dto.MessageTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse templates response: %w", err)
	}

	log.Printf("[SupabaseHandler] Listed %d templates", len(templates))
	return templates, nil
}

// GetTemplate retrieves one message template by ID.
func (h *SupabaseHandler) GetTemplate(id string) (*dto.MessageTemplate, error) {
	data, _, err := h.client.From(templatesTable).Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to get template %s: %v", id, err)
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	var templates []dto.MessageTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse template response: %w", err)
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("template not found with id %s", id)
	}

	return &templates[0], nil
}

// InsertTemplate stores a new message template and returns the generated ID.
func (h *SupabaseHandler) InsertTemplate(t *dto.MessageTemplate) (string, error) {
	log.Printf("[SupabaseHandler] InsertTemplate: title=%s", t.Title)

	insertData := map[string]interface{}{
		"title":   t.Title,
		"content": t.Content,
	}

	data, _, err := h.client.From(templatesTable).Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert template: %v", err)
		return "", fmt.Errorf("failed to insert template: %w", err)
	}

	return insertedID(data)
}

// DeleteTemplate removes a message template by ID.
func (h *SupabaseHandler) DeleteTemplate(id string) error {
	_, _, err := h.client.From(templatesTable).Delete("", "").Eq("id", id).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to delete template %s: %v", id, err)
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// GetLists retrieves all saved transmission lists.
func (h *SupabaseHandler) GetLists() ([]dto.TransmissionList, error) {
	data, _, err := h.client.From(listsTable).Select("*", "exact", false).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to list transmission lists: %v", err)
		return nil, fmt.Errorf("failed to list transmission lists: %w", err)
	}

	var lists []dto.TransmissionList
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse lists response: %w", err)
	}

	log.Printf("[SupabaseHandler] Listed %d transmission lists", len(lists))
	return lists, nil
}

// GetList retrieves one saved transmission list by ID.
func (h *SupabaseHandler) GetList(id string) (*dto.TransmissionList, error) {
	data, _, err := h.client.From(listsTable).Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to get list %s: %v", id, err)
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	var lists []dto.TransmissionList
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse list response: %w", err)
	}
	if len(lists) == 0 {
		return nil, fmt.Errorf("list not found with id %s", id)
	}

	return &lists[0], nil
}

// InsertList stores a new transmission list and returns the generated ID.
func (h *SupabaseHandler) InsertList(l *dto.TransmissionList) (string, error) {
	log.Printf("[SupabaseHandler] InsertList: name=%s, contacts=%d", l.Name, len(l.Contacts))

	insertData := map[string]interface{}{
		"name":     l.Name,
		"category": l.Category,
		"contacts": l.Contacts,
	}

	data, _, err := h.client.From(listsTable).Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert list: %v", err)
		return "", fmt.Errorf("failed to insert list: %w", err)
	}

	return insertedID(data)
}

// DeleteList removes a saved transmission list by ID.
func (h *SupabaseHandler) DeleteList(id string) error {
	_, _, err := h.client.From(listsTable).Delete("", "").Eq("id", id).Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to delete list %s: %v", id, err)
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// InsertEvent records an audit event. Failures are logged and returned but
// callers generally treat them as non-fatal.
func (h *SupabaseHandler) InsertEvent(eventType, source string, details map[string]interface{}) error {
	insertData := map[string]interface{}{
		"type":       eventType,
		"source":     source,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if len(details) > 0 {
		insertData["details"] = details
	}

	_, _, err := h.client.From(eventsTable).Insert(insertData, false, "", "", "").Execute()
	if err != nil {
		log.Printf("[SupabaseHandler] Failed to insert event %s: %v", eventType, err)
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// insertedID pulls the generated ID out of an insert response.
func insertedID(data []byte) (string, error) {
	var inserted []map[string]interface{}
	if err := json.Unmarshal(data, &inserted); err != nil {
		return "", fmt.Errorf("failed to parse insert response: %w", err)
	}
	if len(inserted) == 0 {
		return "", fmt.Errorf("no row was inserted")
	}

	switch id := inserted[0]["id"].(type) {
	case string:
		return id, nil
	case float64:
		return fmt.Sprintf("%.0f", id), nil
	default:
		return "", fmt.Errorf("failed to get ID from insert response")
	}
}
