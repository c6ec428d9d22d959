package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupabaseHandler_MissingURL(t *testing.T) {
	handler, err := NewSupabaseHandler("", "test-key")

	assert.Nil(t, handler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supabase URL is required")
}

func TestNewSupabaseHandler_MissingKey(t *testing.T) {
	handler, err := NewSupabaseHandler("https://test.supabase.co", "")

	assert.Nil(t, handler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "supabase key is required")
}

// templatesUpstream fakes the PostgREST surface behind message_templates:
// listable state plus a record of insert bodies.
type templatesUpstream struct {
	mu       sync.Mutex
	existing string
	inserted []string
}

func (u *templatesUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "message_templates") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		u.mu.Lock()
		defer u.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Range", "0-0/0")
			fmt.Fprint(w, u.existing)
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			u.inserted = append(u.inserted, string(body))
			fmt.Fprintf(w, `[{"id":"tpl-%d"}]`, len(u.inserted))
		}
	}
}

func (u *templatesUpstream) insertCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.inserted)
}

func TestEnsureDefaultTemplates_SeedsEmptyWorkspace(t *testing.T) {
	upstream := &templatesUpstream{existing: `[]`}
	srv := httptest.NewServer(upstream.handler())
	t.Cleanup(srv.Close)

	h, err := NewSupabaseHandler(srv.URL, "test-key")
	require.NoError(t, err)

	require.NoError(t, h.EnsureDefaultTemplates())
	require.Equal(t, 3, upstream.insertCount())
	assert.Contains(t, upstream.inserted[0], "Saudação Inicial")
	assert.Contains(t, upstream.inserted[1], "Oferta Mourão")
	assert.Contains(t, upstream.inserted[2], "Status Logística")
	assert.Contains(t, upstream.inserted[1], "[NOME]")
	assert.Contains(t, upstream.inserted[1], "[DATA]")
}

func TestEnsureDefaultTemplates_LeavesExistingAlone(t *testing.T) {
	upstream := &templatesUpstream{existing: `[{"id":"tpl-1","title":"Minha Promo","content":"Olá [NOME]"}]`}
	srv := httptest.NewServer(upstream.handler())
	t.Cleanup(srv.Close)

	h, err := NewSupabaseHandler(srv.URL, "test-key")
	require.NoError(t, err)

	require.NoError(t, h.EnsureDefaultTemplates())
	assert.Equal(t, 0, upstream.insertCount(), "a workspace with templates is never reseeded")
}

func TestInsertedID(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected string
		wantErr  bool
	}{
		{"string id", `[{"id":"tpl-1","title":"Promo"}]`, "tpl-1", false},
		{"numeric id", `[{"id":42}]`, "42", false},
		{"empty response", `[]`, "", true},
		{"missing id", `[{"title":"Promo"}]`, "", true},
		{"not json", `oops`, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := insertedID([]byte(tc.data))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}
