package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"enside/madeiras-ops-worker/internal/dto"
)

const (
	// DefaultMapperTimeout is the timeout for one column-mapping call
	DefaultMapperTimeout = 30 * time.Second
	// DefaultMapperModel is the default Gemini model for schema mapping
	DefaultMapperModel = "gemini-2.5-flash"
)

// SchemaMapperConfig holds configuration for the SchemaMapperHandler
type SchemaMapperConfig struct {
	// APIKey is the Google API key for Gemini
	APIKey string
	// Model is the Gemini model to use
	Model string
	// Timeout for each mapping call
	Timeout time.Duration
}

// SchemaMapperHandler resolves unrecognized spreadsheet columns to semantic
// contact fields using Gemini structured output. It is the escalation path
// behind the keyword heuristics in ResolveHeaders.
type SchemaMapperHandler struct {
	config SchemaMapperConfig
	client *genai.Client
}

// NewSchemaMapperHandler creates a new SchemaMapperHandler instance
func NewSchemaMapperHandler(config SchemaMapperConfig) (*SchemaMapperHandler, error) {
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required (set GOOGLE_API_KEY env var)")
	}
	if config.Model == "" {
		config.Model = DefaultMapperModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultMapperTimeout
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("[SchemaMapperHandler] Failed to create Gemini client: %v", err)
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Printf("[SchemaMapperHandler] Initialized with model: %s", config.Model)

	return &SchemaMapperHandler{
		config: config,
		client: client,
	}, nil
}

// mappedIndices mirrors the structured response. Pointers distinguish a field
// the model omitted from a genuine column index.
type mappedIndices struct {
	Nome      *int `json:"nome"`
	Whatsapp  *int `json:"whatsapp"`
	Categoria *int `json:"categoria"`
	Cidade    *int `json:"cidade"`
	Status    *int `json:"status"`
}

// MapSchema asks Gemini which column holds each contact field. Headers and a
// sample data row give the model enough context for sheets whose headers carry
// no recognizable keywords.
func (h *SchemaMapperHandler) MapSchema(ctx context.Context, headers, sampleRow []string) (*dto.FieldIndexMap, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	prompt := buildMapperPrompt(headers, sampleRow)

	intSchema := &genai.Schema{
		Type:        genai.TypeInteger,
		Description: "Zero-based column index, or -1 when the column is absent",
	}
	responseSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"nome":      intSchema,
			"whatsapp":  intSchema,
			"categoria": intSchema,
			"cidade":    intSchema,
			"status":    intSchema,
		},
		Required: []string{"nome", "whatsapp"},
	}

	resp, err := h.client.Models.GenerateContent(ctx, h.config.Model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
		})
	if err != nil {
		log.Printf("[SchemaMapperHandler] Mapping call failed: %v", err)
		return nil, fmt.Errorf("schema mapping call failed: %w", err)
	}

	text := resp.Text()
	var indices mappedIndices
	if err := json.Unmarshal([]byte(text), &indices); err != nil {
		log.Printf("[SchemaMapperHandler] Unparseable mapping response: %q", text)
		return nil, fmt.Errorf("failed to parse mapping response: %w", err)
	}

	m := &dto.FieldIndexMap{
		Name:     indexOrMissing(indices.Nome),
		Phone:    indexOrMissing(indices.Whatsapp),
		Category: indexOrMissing(indices.Categoria),
		City:     indexOrMissing(indices.Cidade),
		Status:   indexOrMissing(indices.Status),
	}

	log.Printf("[SchemaMapperHandler] Mapped columns: nome=%d whatsapp=%d categoria=%d cidade=%d status=%d",
		m.Name, m.Phone, m.Category, m.City, m.Status)
	return m, nil
}

func indexOrMissing(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

// buildMapperPrompt creates the mapping prompt from headers and one data row.
func buildMapperPrompt(headers, sampleRow []string) string {
	var b strings.Builder
	b.WriteString("You are a data analyst for a Brazilian wood products distributor. ")
	b.WriteString("A spreadsheet tab has columns that could not be identified automatically.\n\n")
	b.WriteString("Columns (zero-based index: header):\n")
	for i, hd := range headers {
		fmt.Fprintf(&b, "%d: %q", i, hd)
		if i < len(sampleRow) && sampleRow[i] != "" {
			fmt.Fprintf(&b, " (sample value: %q)", sampleRow[i])
		}
		b.WriteString("\n")
	}
	b.WriteString("\nIdentify which column index holds each of these contact fields: ")
	b.WriteString("nome (contact or company name), whatsapp (phone number), categoria (contact type), cidade (city), status.\n")
	b.WriteString("Use -1 for any field that has no matching column. Respond with JSON only.")
	return b.String()
}
