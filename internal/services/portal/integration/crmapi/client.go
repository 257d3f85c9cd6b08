// Package crmapi is the portal's client for the CRM REST API.
//
// The API owns every business rule and the real authorization checks. The
// portal forwards the caller's bearer token and renders what comes back.
package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/crmportal/internal/platform/timeouts"
	apperrors "github.com/louisbranch/crmportal/internal/services/portal/platform/errors"
)

const (
	tracerName   = "github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	maxErrorBody = 4 << 10
)

// User is the account summary returned with a session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is the result of a successful login or signup.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// SignupInput carries the self-service registration form.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company,omitempty"`
}

// Lister reads pages of CRM collections.
type Lister interface {
	List(ctx context.Context, token string, resource Resource, query ListQuery) (Page, error)
}

// Writer changes CRM records.
type Writer interface {
	Get(ctx context.Context, token string, resource Resource, id string) (Record, error)
	Create(ctx context.Context, token string, resource Resource, fields Record) (Record, error)
	Update(ctx context.Context, token string, resource Resource, id string, fields Record) (Record, error)
	Delete(ctx context.Context, token string, resource Resource, id string) error
	ExecuteCampaign(ctx context.Context, token string, id string) error
}

// Client talks to the CRM API over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.APIRequest}
	}
	return &Client{baseURL: parsed, http: httpClient, tracer: otel.Tracer(tracerName)}, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, apperrors.EK(apperrors.KindInvalidInput, "error.login.missing_credentials", "email and password are required")
	}
	var session Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "crmapi.login", http.MethodPost, "/auth/login", "", nil, body, &session); err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return Session{}, apperrors.E(apperrors.KindUnavailable, "login response carried no access token")
	}
	return session, nil
}

// Signup registers a new account and returns its first session.
func (c *Client) Signup(ctx context.Context, input SignupInput) (Session, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Company = strings.TrimSpace(input.Company)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return Session{}, apperrors.EK(apperrors.KindInvalidInput, "error.signup.missing_fields", "name, email and password are required")
	}
	var session Session
	if err := c.do(ctx, "crmapi.signup", http.MethodPost, "/auth/signup", "", nil, input, &session); err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return Session{}, apperrors.E(apperrors.KindUnavailable, "signup response carried no access token")
	}
	return session, nil
}

// Logout revokes token on the API.
func (c *Client) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return c.do(ctx, "crmapi.logout", http.MethodPost, "/auth/logout", token, nil, nil, nil)
}

// List reads one page of resource with the caller's token.
func (c *Client) List(ctx context.Context, token string, resource Resource, query ListQuery) (Page, error) {
	if _, ok := ParseResource(string(resource)); !ok {
		return Page{}, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("unknown resource %q", resource))
	}
	query = query.Normalize()
	var page Page
	if err := c.do(ctx, "crmapi.list", http.MethodGet, "/"+string(resource), token, query.Values(), nil, &page); err != nil {
		return Page{}, err
	}
	if page.Page == 0 {
		page.Page = query.Page
	}
	if page.PageSize == 0 {
		page.PageSize = query.PageSize
	}
	return page, nil
}

// Get reads one record.
func (c *Client) Get(ctx context.Context, token string, resource Resource, id string) (Record, error) {
	path, err := recordPath(resource, id)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := c.do(ctx, "crmapi.get", http.MethodGet, path, token, nil, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Create adds a record and returns it as stored.
func (c *Client) Create(ctx context.Context, token string, resource Resource, fields Record) (Record, error) {
	if _, ok := ParseResource(string(resource)); !ok {
		return nil, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("unknown resource %q", resource))
	}
	var record Record
	if err := c.do(ctx, "crmapi.create", http.MethodPost, "/"+string(resource), token, nil, fields, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update patches a record and returns it as stored.
func (c *Client) Update(ctx context.Context, token string, resource Resource, id string, fields Record) (Record, error) {
	path, err := recordPath(resource, id)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := c.do(ctx, "crmapi.update", http.MethodPatch, path, token, nil, fields, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, token string, resource Resource, id string) error {
	path, err := recordPath(resource, id)
	if err != nil {
		return err
	}
	return c.do(ctx, "crmapi.delete", http.MethodDelete, path, token, nil, nil, nil)
}

// ExecuteCampaign asks the API to send a campaign.
func (c *Client) ExecuteCampaign(ctx context.Context, token string, id string) error {
	path, err := recordPath(ResourceCampaigns, id)
	if err != nil {
		return err
	}
	return c.do(ctx, "crmapi.execute_campaign", http.MethodPost, path+"/execute", token, nil, nil, nil)
}

func recordPath(resource Resource, id string) (string, error) {
	if _, ok := ParseResource(string(resource)); !ok {
		return "", apperrors.E(apperrors.KindNotFound, fmt.Sprintf("unknown resource %q", resource))
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, "record id is required")
	}
	if strings.ContainsAny(id, "/?#") {
		return "", apperrors.E(apperrors.KindInvalidInput, "record id is malformed")
	}
	return "/" + string(resource) + "/" + id, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, spanName, method, path, token string, query url.Values, in, out any) error {
	if c == nil || c.http == nil {
		return apperrors.E(apperrors.KindUnavailable, "api client is not configured")
	}
	ctx, span := c.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", spanName, err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", spanName, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return apperrors.E(apperrors.KindUnavailable, fmt.Sprintf("%s: %v", spanName, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return apperrors.FromStatus(resp.StatusCode, errorMessage(resp.Body))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return apperrors.E(apperrors.KindUnavailable, fmt.Sprintf("decode %s response: %v", spanName, err))
	}
	return nil
}

// errorMessage extracts the API's error text from a JSON or plain body.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(string(raw))
}

var (
	_ Lister = (*Client)(nil)
	_ Writer = (*Client)(nil)
)
