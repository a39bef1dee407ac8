package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ticketdesk-service/internal/domain/entity"
)

var (
	// ErrPermissionDenied means the server rejected the token or the
	// login password.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrExhibitionNotFound means the server did not recognize the
	// exhibition named in the request.
	ErrExhibitionNotFound = errors.New("exhibition not specified or not found")
	// ErrConflict means a single insert hit an already-used ticket
	// number; nothing was stored.
	ErrConflict = errors.New("ticket number already used")
	// ErrTicketNotFound means a single delete matched nothing.
	ErrTicketNotFound = errors.New("ticket not found")
)

// BatchConflictError means an ordered batch insert stopped at a used
// ticket number. The prefix before it was persisted, so the caller must
// treat the batch as partially applied and reconcile by re-listing.
type BatchConflictError struct {
	Inserted int
}

func (e *BatchConflictError) Error() string {
	return fmt.Sprintf("some ticket numbers already used, %d inserted before the conflict", e.Inserted)
}

// Client is the ticketdesk API client used by the desk TUI
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a new API client. token may be empty until Login.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns the bearer token currently in use
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the bearer token, e.g. after loading a cached one
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges the shared secret for the bearer token and stores it
// on the client for subsequent calls
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth", map[string]string{"password": password}, &result)
	if err != nil {
		return "", err
	}
	c.token = result.Token
	return result.Token, nil
}

// ListTickets fetches the exhibition's full ticket list
func (c *Client) ListTickets(ctx context.Context, exhibition string) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	path := "/tickets?" + url.Values{"exhibition": {exhibition}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// TicketInput carries the client-supplied fields for one new ticket
type TicketInput struct {
	Exhibition   string `json:"exhibition,omitempty"`
	TicketNumber string `json:"ticketNumber"`
	Date         string `json:"date,omitempty"`
	Operator     string `json:"operator"`
	Client       string `json:"client"`
	Type         string `json:"type"`
	Notes        string `json:"notes"`
}

// CreateTicket inserts a single ticket
func (c *Client) CreateTicket(ctx context.Context, exhibition string, input TicketInput) error {
	input.Exhibition = exhibition
	return c.do(ctx, http.MethodPost, "/ticket", input, nil)
}

// CreateTickets inserts an ordered batch of tickets, typically an
// expanded serial range. On conflict the error is *BatchConflictError.
func (c *Client) CreateTickets(ctx context.Context, exhibition string, documents []TicketInput) error {
	body := struct {
		Exhibition string        `json:"exhibition"`
		Documents  []TicketInput `json:"documents"`
	}{Exhibition: exhibition, Documents: documents}
	return c.do(ctx, http.MethodPost, "/tickets", body, nil)
}

// SetVerified marks a ticket as redeemed (or not)
func (c *Client) SetVerified(ctx context.Context, exhibition, ticketNumber string, verified bool) error {
	body := struct {
		Exhibition   string `json:"exhibition"`
		TicketNumber string `json:"ticketNumber"`
		Verified     bool   `json:"verified"`
	}{Exhibition: exhibition, TicketNumber: ticketNumber, Verified: verified}
	return c.do(ctx, http.MethodPatch, "/ticket/status", body, nil)
}

// DeleteTicket removes a single ticket by number
func (c *Client) DeleteTicket(ctx context.Context, exhibition, ticketNumber string) error {
	body := struct {
		Exhibition   string `json:"exhibition"`
		TicketNumber string `json:"ticketNumber"`
	}{Exhibition: exhibition, TicketNumber: ticketNumber}
	return c.do(ctx, http.MethodDelete, "/ticket", body, nil)
}

// DeleteTickets removes every listed ticket number that exists
func (c *Client) DeleteTickets(ctx context.Context, exhibition string, ticketNumbers []string) error {
	body := struct {
		Exhibition    string   `json:"exhibition"`
		TicketNumbers []string `json:"ticketNumbers"`
	}{Exhibition: exhibition, TicketNumbers: ticketNumbers}
	return c.do(ctx, http.MethodDelete, "/tickets", body, nil)
}

// do executes one API call, mapping the server's status codes back onto
// the client-side error taxonomy
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if result == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(result)
	case http.StatusForbidden:
		return ErrPermissionDenied
	case http.StatusNotFound:
		return ErrExhibitionNotFound
	case http.StatusConflict:
		return decodeConflict(resp.Body)
	case http.StatusBadRequest:
		return ErrTicketNotFound
	default:
		return fmt.Errorf("server error: %s", resp.Status)
	}
}

// decodeConflict distinguishes the single-insert conflict (a bare
// message string) from the batch conflict (an object with the inserted
// count)
func decodeConflict(body io.Reader) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return ErrConflict
	}
	var batch struct {
		Message  string `json:"message"`
		Inserted int    `json:"inserted"`
	}
	if err := json.Unmarshal(raw, &batch); err == nil && batch.Message != "" {
		return &BatchConflictError{Inserted: batch.Inserted}
	}
	return ErrConflict
}
