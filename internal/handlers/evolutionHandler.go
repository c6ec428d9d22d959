package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"enside/madeiras-ops-worker/internal/dto"
)

const (
	// DefaultGatewayTimeout bounds one Evolution API call.
	DefaultGatewayTimeout = 30 * time.Second

	// InstanceOpen and InstanceClosed are the normalized connection states.
	// The gateway reports several variants across versions; everything that
	// is not connected collapses to closed.
	InstanceOpen   = "open"
	InstanceClosed = "close"

	// chatSyncCity and chatSyncStatus mark contacts discovered through the
	// gateway rather than the spreadsheet.
	chatSyncCity   = "WhatsApp"
	chatSyncStatus = "Live Sync"
)

// sendTextDelayMS is the typing-presence delay the gateway applies before
// each message.
const sendTextDelayMS = 1200

// EvolutionConfig holds the gateway connection settings.
type EvolutionConfig struct {
	// BaseURL is the Evolution API root, e.g. "https://evo.example.com"
	BaseURL string
	// APIKey is sent as the "apikey" header on every call
	APIKey string
	// Instance is the default WhatsApp instance name
	Instance string
	// Timeout for each gateway call
	Timeout time.Duration
}

// EvolutionHandler is a thin client for the self-hosted Evolution API
// WhatsApp gateway: connection state, chat discovery and text sending.
type EvolutionHandler struct {
	config     EvolutionConfig
	httpClient *http.Client
}

// InstanceStatus is the normalized connection state of one gateway instance.
type InstanceStatus struct {
	Instance string `json:"instance"`
	Status   string `json:"status"`
	Number   string `json:"number"`
}

// InstanceInfo is one entry of the gateway's instance listing.
type InstanceInfo struct {
	InstanceName     string `json:"instanceName"`
	Status           string `json:"status"`
	ConnectionStatus string `json:"connectionStatus"`
}

// Chat is one conversation as reported by the gateway.
type Chat struct {
	ID        string `json:"id"`
	RemoteJID string `json:"remoteJid"`
	Name      string `json:"name"`
	PushName  string `json:"pushName"`
}

// NewEvolutionHandler creates a new gateway client.
func NewEvolutionHandler(config EvolutionConfig) (*EvolutionHandler, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("evolution base URL is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("evolution API key is required")
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultGatewayTimeout
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	log.Printf("[EvolutionHandler] Initialized for %s (default instance: %s)", config.BaseURL, config.Instance)

	return &EvolutionHandler{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

// DefaultInstance returns the configured default instance name.
func (h *EvolutionHandler) DefaultInstance() string {
	return h.config.Instance
}

// call performs one JSON request against the gateway and decodes the response
// into out (when non-nil).
func (h *EvolutionHandler) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", h.config.APIKey)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(data)))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %v", ErrBadFormat, err)
		}
	}
	return nil
}

// FetchInstances lists all instances known to the gateway.
func (h *EvolutionHandler) FetchInstances(ctx context.Context) ([]InstanceInfo, error) {
	var instances []InstanceInfo
	if err := h.call(ctx, http.MethodGet, "/instance/fetchInstances", nil, &instances); err != nil {
		log.Printf("[EvolutionHandler] Failed to fetch instances: %v", err)
		return nil, err
	}
	return instances, nil
}

// connectionStateResponse tolerates the two shapes different Evolution API
// versions return for the connection state.
type connectionStateResponse struct {
	Instance *struct {
		State    string `json:"state"`
		OwnerJid string `json:"ownerJid"`
	} `json:"instance"`
	State    string `json:"state"`
	OwnerJid string `json:"ownerJid"`
}

// ConnectionState returns the normalized connection state of an instance.
// An empty instance name falls back to the configured default.
func (h *EvolutionHandler) ConnectionState(ctx context.Context, instance string) (*InstanceStatus, error) {
	if instance == "" {
		instance = h.config.Instance
	}

	var raw connectionStateResponse
	if err := h.call(ctx, http.MethodGet, "/instance/connectionState/"+instance, nil, &raw); err != nil {
		log.Printf("[EvolutionHandler] Connection state check failed for %s: %v", instance, err)
		return nil, err
	}

	state := raw.State
	jid := raw.OwnerJid
	if raw.Instance != nil {
		if raw.Instance.State != "" {
			state = raw.Instance.State
		}
		if raw.Instance.OwnerJid != "" {
			jid = raw.Instance.OwnerJid
		}
	}

	status := InstanceClosed
	if state == "open" || state == "CONNECTED" {
		status = InstanceOpen
	}

	number := jid
	if i := strings.Index(jid, "@"); i >= 0 {
		number = jid[:i]
	}

	return &InstanceStatus{Instance: instance, Status: status, Number: number}, nil
}

// FindChats lists individual conversations on an instance. Group chats and
// broadcast channels are filtered out.
func (h *EvolutionHandler) FindChats(ctx context.Context, instance string) ([]Chat, error) {
	if instance == "" {
		instance = h.config.Instance
	}

	var chats []Chat
	if err := h.call(ctx, http.MethodGet, "/chat/findChats/"+instance, nil, &chats); err != nil {
		return nil, err
	}

	individual := make([]Chat, 0, len(chats))
	for _, c := range chats {
		jid := c.JID()
		if strings.Contains(jid, "@s.whatsapp.net") && !strings.Contains(jid, "@g.us") {
			individual = append(individual, c)
		}
	}
	return individual, nil
}

// JID returns whichever identifier field the gateway populated.
func (c Chat) JID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.RemoteJID
}

// sendTextRequest is the payload for /message/sendText.
type sendTextRequest struct {
	Number      string          `json:"number"`
	Options     sendTextOptions `json:"options"`
	TextMessage textMessage     `json:"textMessage"`
}

type sendTextOptions struct {
	Delay       int    `json:"delay"`
	Presence    string `json:"presence"`
	LinkPreview bool   `json:"linkPreview"`
}

type textMessage struct {
	Text string `json:"text"`
}

// SendText delivers one text message through the gateway. The recipient is
// normalized before sending; a number that cannot be normalized is rejected.
func (h *EvolutionHandler) SendText(ctx context.Context, instance, number, text string) error {
	if instance == "" {
		instance = h.config.Instance
	}

	normalized := NormalizePhone(number)
	if normalized == PhoneNone {
		return fmt.Errorf("no dialable number for recipient %q", number)
	}

	body := sendTextRequest{
		Number: normalized,
		Options: sendTextOptions{
			Delay:       sendTextDelayMS,
			Presence:    "composing",
			LinkPreview: false,
		},
		TextMessage: textMessage{Text: text},
	}

	return h.call(ctx, http.MethodPost, "/message/sendText/"+instance, body, nil)
}

// ChatContacts converts gateway chats into contacts: name from the chat (or
// push name), phone from the JID, category from the usual keyword rules.
// Chats without a dialable number are dropped.
func ChatContacts(chats []Chat) []dto.Contact {
	contacts := make([]dto.Contact, 0, len(chats))
	for _, c := range chats {
		name := c.Name
		if name == "" {
			name = c.PushName
		}
		if name == "" {
			name = "Contato WhatsApp"
		}

		jid := c.JID()
		rawNumber := jid
		if i := strings.Index(jid, "@"); i >= 0 {
			rawNumber = jid[:i]
		}
		phone := NormalizePhone(rawNumber)
		if phone == PhoneNone {
			continue
		}

		contacts = append(contacts, dto.Contact{
			Name:     name,
			Category: ClassifyContact(name, ""),
			City:     chatSyncCity,
			Phone:    phone,
			Status:   chatSyncStatus,
		})
	}
	return contacts
}
