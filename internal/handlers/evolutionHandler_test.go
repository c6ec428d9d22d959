package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"enside/madeiras-ops-worker/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvolutionServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *EvolutionHandler) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	h, err := NewEvolutionHandler(EvolutionConfig{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		Instance: "madeiras",
	})
	require.NoError(t, err)
	return srv, h
}

func TestNewEvolutionHandler_RequiresConfig(t *testing.T) {
	_, err := NewEvolutionHandler(EvolutionConfig{APIKey: "k"})
	assert.Error(t, err)

	_, err = NewEvolutionHandler(EvolutionConfig{BaseURL: "http://evo"})
	assert.Error(t, err)
}

func TestConnectionState_NestedShape(t *testing.T) {
	_, h := newEvolutionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/instance/connectionState/madeiras", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		fmt.Fprint(w, `{"instance":{"instanceName":"madeiras","state":"open","ownerJid":"5514998876655@s.whatsapp.net"}}`)
	})

	status, err := h.ConnectionState(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, InstanceOpen, status.Status)
	assert.Equal(t, "5514998876655", status.Number)
	assert.Equal(t, "madeiras", status.Instance)
}

func TestConnectionState_FlatShapeAndVariants(t *testing.T) {
	tests := []struct {
		state    string
		expected string
	}{
		{"open", InstanceOpen},
		{"CONNECTED", InstanceOpen},
		{"close", InstanceClosed},
		{"connecting", InstanceClosed},
	}
	for _, tc := range tests {
		t.Run(tc.state, func(t *testing.T) {
			_, h := newEvolutionServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"state":%q}`, tc.state)
			})

			status, err := h.ConnectionState(context.Background(), "other")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, status.Status)
			assert.Equal(t, "other", status.Instance)
		})
	}
}

func TestConnectionState_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	h, err := NewEvolutionHandler(EvolutionConfig{BaseURL: url, APIKey: "k", Instance: "madeiras"})
	require.NoError(t, err)

	_, err = h.ConnectionState(context.Background(), "")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFindChats_FiltersGroups(t *testing.T) {
	_, h := newEvolutionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/findChats/madeiras", r.URL.Path)
		fmt.Fprint(w, `[
			{"id":"5514998876655@s.whatsapp.net","name":"Serraria Bom Pinho"},
			{"id":"123456789-987@g.us","name":"Grupo Fretes"},
			{"remoteJid":"5514997770000@s.whatsapp.net","pushName":"Zé do Depósito"},
			{"id":"status@broadcast"}
		]`)
	})

	chats, err := h.FindChats(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "Serraria Bom Pinho", chats[0].Name)
	assert.Equal(t, "5514997770000@s.whatsapp.net", chats[1].JID())
}

func TestSendText_Payload(t *testing.T) {
	var got sendTextRequest
	_, h := newEvolutionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/message/sendText/madeiras", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"key":{"id":"msg-1"}}`)
	})

	err := h.SendText(context.Background(), "", "14 99887-6655", "Olá!")
	require.NoError(t, err)

	assert.Equal(t, "5514998876655", got.Number)
	assert.Equal(t, "Olá!", got.TextMessage.Text)
	assert.Equal(t, 1200, got.Options.Delay)
	assert.Equal(t, "composing", got.Options.Presence)
	assert.False(t, got.Options.LinkPreview)
}

func TestSendText_RejectsUndialableNumber(t *testing.T) {
	_, h := newEvolutionServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an undialable number")
	})

	err := h.SendText(context.Background(), "", "S/N", "Olá!")
	assert.Error(t, err)
}

func TestSendText_GatewayError(t *testing.T) {
	_, h := newEvolutionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"number not on whatsapp"}`)
	})

	err := h.SendText(context.Background(), "", "14 99887-6655", "Olá!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestChatContacts(t *testing.T) {
	chats := []Chat{
		{ID: "5514998876655@s.whatsapp.net", Name: "Transportadora União"},
		{RemoteJID: "5514997770000@s.whatsapp.net", PushName: "Zé"},
		{ID: "abc@s.whatsapp.net"},
	}

	contacts := ChatContacts(chats)
	require.Len(t, contacts, 2, "chats without a dialable number are dropped")

	assert.Equal(t, dto.Contact{
		Name:     "Transportadora União",
		Category: dto.CategoryCarrier,
		City:     "WhatsApp",
		Phone:    "5514998876655",
		Status:   "Live Sync",
	}, contacts[0])

	assert.Equal(t, "Zé", contacts[1].Name)
	assert.Equal(t, dto.CategoryClient, contacts[1].Category)
}
