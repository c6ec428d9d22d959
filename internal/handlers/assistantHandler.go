package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	// DefaultAssistantTimeout is the timeout for one assistant exchange
	DefaultAssistantTimeout = 60 * time.Second
	// DefaultAssistantModel is the default Gemini model for the assistant
	DefaultAssistantModel = "gemini-2.5-flash"

	assistantAppName = "ops_assistant"
)

// AssistantConfig holds configuration for the AssistantHandler
type AssistantConfig struct {
	// APIKey is the Google API key for Gemini
	APIKey string
	// Model is the Gemini model to use
	Model string
	// Timeout for each exchange
	Timeout time.Duration
}

// AssistantHandler answers operational questions about the contact base and
// broadcasts through a Gemini agent.
type AssistantHandler struct {
	config         AssistantConfig
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
}

// NewAssistantHandler creates a new AssistantHandler instance
func NewAssistantHandler(config AssistantConfig) (*AssistantHandler, error) {
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required (set GOOGLE_API_KEY env var)")
	}
	if config.Model == "" {
		config.Model = DefaultAssistantModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultAssistantTimeout
	}

	ctx := context.Background()

	model, err := gemini.NewModel(ctx, config.Model, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("[AssistantHandler] Failed to create Gemini model: %v", err)
		return nil, fmt.Errorf("failed to create Gemini model: %w", err)
	}

	opsAgent, err := llmagent.New(llmagent.Config{
		Name:        "ops_assistant_agent",
		Model:       model,
		Description: "An AI assistant for the operations dashboard of a wood products distributor.",
		Instruction: buildAssistantInstruction(),
	})
	if err != nil {
		log.Printf("[AssistantHandler] Failed to create agent: %v", err)
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessionService := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        assistantAppName,
		Agent:          opsAgent,
		SessionService: sessionService,
	})
	if err != nil {
		log.Printf("[AssistantHandler] Failed to create runner: %v", err)
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	log.Printf("[AssistantHandler] Initialized with model: %s", config.Model)

	return &AssistantHandler{
		config:         config,
		agent:          opsAgent,
		runner:         r,
		sessionService: sessionService,
	}, nil
}

// buildAssistantInstruction creates the instruction prompt for the assistant agent
func buildAssistantInstruction() string {
	return `You are the operations assistant of Enside Madeiras, a Brazilian wood products distributor.

You help the team manage suppliers (sawmills and lumber yards), carriers (freight and logistics partners) and clients. You answer in Brazilian Portuguese unless asked otherwise.

RULES:
- Answer based on the operational context provided with each question
- Be direct and practical; the team is busy
- When asked about contacts, use only the data given in the context
- Never invent phone numbers, prices or delivery dates
- When drafting WhatsApp messages, keep them short and professional; the placeholders [NOME] and [DATA] are substituted automatically per recipient`
}

// Chat runs one assistant exchange. systemContext, when present, is prepended
// to the user message so the agent can ground its answer in live dashboard
// data.
func (h *AssistantHandler) Chat(ctx context.Context, message, systemContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	prompt := message
	if systemContext != "" {
		prompt = fmt.Sprintf("CONTEXTO OPERACIONAL:\n%s\n\nPERGUNTA:\n%s", systemContext, message)
	}

	userMessage := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	userID := "dashboard"
	createResp, err := h.sessionService.Create(ctx, &session.CreateRequest{
		AppName: assistantAppName,
		UserID:  userID,
	})
	if err != nil {
		log.Printf("[AssistantHandler] Failed to create session: %v", err)
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	sessionID := createResp.Session.ID()
	defer func() {
		_ = h.sessionService.Delete(ctx, &session.DeleteRequest{
			AppName:   assistantAppName,
			UserID:    userID,
			SessionID: sessionID,
		})
	}()

	var reply string
	runConfig := agent.RunConfig{
		StreamingMode: agent.StreamingModeNone,
	}

	for event, err := range h.runner.Run(ctx, userID, sessionID, userMessage, runConfig) {
		if err != nil {
			log.Printf("[AssistantHandler] Error during exchange: %v", err)
			return "", fmt.Errorf("assistant exchange failed: %w", err)
		}

		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					reply += part.Text
				}
			}
		}
	}

	if reply == "" {
		return "", fmt.Errorf("assistant returned an empty reply")
	}
	return reply, nil
}
