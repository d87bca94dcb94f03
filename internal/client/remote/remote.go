// Package remote implements the client capabilities over the HTTP API:
// the document store backing the record gateway and the identity
// provider backing the session context.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/client/gateway"
	"github.com/avolkov/StaffKeeper/internal/models"
)

const sessionFile = "session.json"

// Client talks to the StaffKeeper server. It implements
// gateway.DocumentStore and the session provider, sharing one bearer
// token that survives restarts through a local session file.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

// New constructs a Client for the given server base URL, loading any
// previously saved bearer token.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
	c.loadToken()
	return c
}

type savedSession struct {
	Token string `json:"token"`
}

func (c *Client) loadToken() {
	b, err := os.ReadFile(sessionFile)
	if err != nil {
		return
	}
	var s savedSession
	if err := json.Unmarshal(b, &s); err != nil {
		return
	}
	c.token = s.Token
}

func (c *Client) saveToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if token == "" {
		os.Remove(sessionFile)
		return
	}
	b, err := json.Marshal(savedSession{Token: token})
	if err != nil {
		return
	}
	os.WriteFile(sessionFile, b, 0600)
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// do sends a JSON request and returns the response. Any non-nil body is
// encoded as JSON, and the saved bearer token is attached when present.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// statusErr maps an error response to the shared error taxonomy.
func statusErr(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	switch resp.StatusCode {
	case http.StatusConflict:
		return apperr.ErrConflict
	case http.StatusNotFound:
		return apperr.ErrNotFound
	case http.StatusUnauthorized:
		return apperr.ErrUnauthorized
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}

// Insert stores a new document and returns the generated id.
func (c *Client) Insert(ctx context.Context, fields map[string]any) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/employees", fields)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", statusErr(resp)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return created.ID, nil
}

// GetAll returns every document, sorted client-side by the named field.
func (c *Client) GetAll(ctx context.Context, orderBy string, ascending bool) ([]gateway.Document, error) {
	docs, err := c.fetchDocs(ctx, "/api/employees")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a := fieldString(docs[i], orderBy)
		b := fieldString(docs[j], orderBy)
		if ascending {
			return a < b
		}
		return a > b
	})
	return docs, nil
}

// GetByID returns the document, or nil without error when absent.
func (c *Client) GetByID(ctx context.Context, id string) (*gateway.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/employees/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp)
	}
	var fields map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	doc := docFromFields(fields)
	return &doc, nil
}

// Update applies only the supplied fields to a document.
func (c *Client) Update(ctx context.Context, id string, fields map[string]any) error {
	resp, err := c.do(ctx, http.MethodPatch, "/api/employees/"+url.PathEscape(id), fields)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusErr(resp)
	}
	return nil
}

// Delete removes a document; removing an absent id is not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusErr(resp)
	}
	return nil
}

// QueryByField returns documents whose field equals value exactly.
func (c *Client) QueryByField(ctx context.Context, field, value string) ([]gateway.Document, error) {
	q := url.Values{"field": {field}, "value": {value}}
	return c.fetchDocs(ctx, "/api/employees?"+q.Encode())
}

func (c *Client) fetchDocs(ctx context.Context, path string) ([]gateway.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp)
	}
	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	docs := make([]gateway.Document, 0, len(items))
	for _, fields := range items {
		docs = append(docs, docFromFields(fields))
	}
	return docs, nil
}

func docFromFields(fields map[string]any) gateway.Document {
	doc := gateway.Document{Fields: fields}
	if id, ok := fields["id"].(string); ok {
		doc.ID = id
		delete(fields, "id")
	}
	return doc
}

func fieldString(d gateway.Document, field string) string {
	v, ok := d.Fields[field]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Login exchanges credentials for a bearer token and the signed-in
// identity. The token is saved for later sessions.
func (c *Client) Login(ctx context.Context, email, password string) (models.Identity, error) {
	return c.authenticate(ctx, "/api/login", email, password)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, email, password string) (models.Identity, error) {
	return c.authenticate(ctx, "/api/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (models.Identity, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return models.Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Identity{}, statusErr(resp)
	}
	var session struct {
		Token string          `json:"token"`
		User  models.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return models.Identity{}, fmt.Errorf("decode response: %w", err)
	}
	c.saveToken(session.Token)
	return session.User, nil
}

// Logout revokes the server session. The saved token is dropped even
// when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.bearer() == "" {
		return nil
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/logout", nil)
	c.saveToken("")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusUnauthorized {
		return statusErr(resp)
	}
	return nil
}

// Current returns the identity behind the saved token, or nil without
// error when no valid session exists.
func (c *Client) Current(ctx context.Context) (*models.Identity, error) {
	if c.bearer() == "" {
		return nil, nil
	}
	resp, err := c.do(ctx, http.MethodGet, "/api/session", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.saveToken("")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp)
	}
	var session struct {
		User models.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &session.User, nil
}
