package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ticketdesk-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer stands in for the ticketdesk API: it checks the token
// the way the server's auth middleware does and returns canned bodies
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	requireToken := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "T" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode("Permission denied")
			return false
		}
		return true
	}

	mux.HandleFunc("POST /auth", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode("Permission denied")
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "T"})
	})

	mux.HandleFunc("GET /tickets", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		if r.URL.Query().Get("exhibition") != "japan" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode("Exhibition not specified or not found")
			return
		}
		json.NewEncoder(w).Encode([]*entity.Ticket{
			{TicketNumber: "00001", Exhibition: "japan"},
		})
	})

	mux.HandleFunc("POST /ticket", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		var body struct {
			TicketNumber string `json:"ticketNumber"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.TicketNumber == "00001" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode("This ticket number has already been used")
			return
		}
		json.NewEncoder(w).Encode("Success")
	})

	mux.HandleFunc("POST /tickets", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":  "Some ticket number has already been used, partly inserted.",
			"inserted": 3,
		})
	})

	mux.HandleFunc("PATCH /ticket/status", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode("Success")
	})

	mux.HandleFunc("DELETE /ticket", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode("No ticket matched the given ticket number")
	})

	mux.HandleFunc("DELETE /tickets", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(w, r) {
			return
		}
		json.NewEncoder(w).Encode("Success")
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "")

		token, err := api.Login(context.Background(), "secret")
		require.NoError(t, err)
		assert.Equal(t, "T", token)
		assert.Equal(t, "T", api.Token(), "token should be kept for later calls")
	})

	t.Run("Failed - wrong password", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "")

		_, err := api.Login(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestListTickets(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "T")

		tickets, err := api.ListTickets(context.Background(), "japan")
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, "00001", tickets[0].TicketNumber)
	})

	t.Run("Failed - no token", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "")

		_, err := api.ListTickets(context.Background(), "japan")
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("Failed - unknown exhibition", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "T")

		_, err := api.ListTickets(context.Background(), "louvre")
		assert.ErrorIs(t, err, ErrExhibitionNotFound)
	})
}

func TestCreateTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "T")

		err := api.CreateTicket(context.Background(), "japan", TicketInput{TicketNumber: "00002"})
		assert.NoError(t, err)
	})

	t.Run("Failed - conflict", func(t *testing.T) {
		server := newTestServer(t)
		api := New(server.URL, "T")

		err := api.CreateTicket(context.Background(), "japan", TicketInput{TicketNumber: "00001"})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestCreateTicketsConflict(t *testing.T) {
	server := newTestServer(t)
	api := New(server.URL, "T")

	err := api.CreateTickets(context.Background(), "japan", []TicketInput{
		{TicketNumber: "00010"},
		{TicketNumber: "00011"},
	})

	var batchErr *BatchConflictError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 3, batchErr.Inserted)
}

func TestSetVerified(t *testing.T) {
	server := newTestServer(t)
	api := New(server.URL, "T")

	assert.NoError(t, api.SetVerified(context.Background(), "japan", "00001", true))
}

func TestDeleteTicket(t *testing.T) {
	server := newTestServer(t)
	api := New(server.URL, "T")

	err := api.DeleteTicket(context.Background(), "japan", "99999")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestDeleteTickets(t *testing.T) {
	server := newTestServer(t)
	api := New(server.URL, "T")

	assert.NoError(t, api.DeleteTickets(context.Background(), "japan", []string{"00001", "00002"}))
}

func TestTokenStore(t *testing.T) {
	t.Run("Roundtrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token")
		store := NewTokenStore(path)

		require.NoError(t, store.Save("T"))

		token, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "T", token)
	})

	t.Run("Missing file is empty, not an error", func(t *testing.T) {
		store := NewTokenStore(filepath.Join(t.TempDir(), "absent"))

		token, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}
