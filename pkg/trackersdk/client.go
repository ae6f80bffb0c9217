package trackersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a decoded error response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// Client talks to a Minutron instance. Token is the bearer token minted
// by the identity provider for the acting user; leave it empty for the
// unauthenticated endpoints (bootstrap, health).
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "unknown_error"}
		var body ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			apiErr.Code = body.Error
			apiErr.Description = body.ErrorDescription
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Bootstrap provisions the first admin on an empty instance.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", req, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodPost, "/v1/users", req, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context) ([]UserInfo, error) {
	var out ListUsersResponse
	err := c.do(ctx, http.MethodGet, "/v1/users", nil, &out)
	return out.Users, err
}

func (c *Client) GetProfile(ctx context.Context, userID string) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(userID), req, &out)
	return out, err
}

func (c *Client) GrantRole(ctx context.Context, userID, role string) error {
	return c.do(ctx, http.MethodPost, "/v1/users/"+url.PathEscape(userID)+"/roles",
		RoleGrantRequest{Role: role}, nil)
}

func (c *Client) RevokeRole(ctx context.Context, userID, role string) error {
	return c.do(ctx, http.MethodDelete,
		"/v1/users/"+url.PathEscape(userID)+"/roles/"+url.PathEscape(role), nil, nil)
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectInfo, error) {
	var out ProjectInfo
	err := c.do(ctx, http.MethodPost, "/v1/projects", req, &out)
	return out, err
}

func (c *Client) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	var out ListProjectsResponse
	err := c.do(ctx, http.MethodGet, "/v1/projects", nil, &out)
	return out.Projects, err
}

func (c *Client) ToggleProjectActive(ctx context.Context, projectID string) (ProjectInfo, error) {
	var out ProjectInfo
	err := c.do(ctx, http.MethodPost, "/v1/projects/"+url.PathEscape(projectID)+"/toggle", nil, &out)
	return out, err
}

func (c *Client) AssignUser(ctx context.Context, projectID, userID string) (AssignmentInfo, error) {
	var out AssignmentInfo
	err := c.do(ctx, http.MethodPost, "/v1/projects/"+url.PathEscape(projectID)+"/assignments",
		AssignUserRequest{UserID: userID}, &out)
	return out, err
}

func (c *Client) UnassignUser(ctx context.Context, projectID, userID string) error {
	return c.do(ctx, http.MethodDelete,
		"/v1/projects/"+url.PathEscape(projectID)+"/assignments/"+url.PathEscape(userID), nil, nil)
}

func (c *Client) StartTimer(ctx context.Context, req StartTimerRequest) (TimeEntryInfo, error) {
	var out TimeEntryInfo
	err := c.do(ctx, http.MethodPost, "/v1/timers/start", req, &out)
	return out, err
}

func (c *Client) StopTimer(ctx context.Context, entryID string) (TimeEntryInfo, error) {
	var out TimeEntryInfo
	err := c.do(ctx, http.MethodPost, "/v1/timers/"+url.PathEscape(entryID)+"/stop", nil, &out)
	return out, err
}

func (c *Client) CreateManualEntry(ctx context.Context, req ManualEntryRequest) (TimeEntryInfo, error) {
	var out TimeEntryInfo
	err := c.do(ctx, http.MethodPost, "/v1/entries", req, &out)
	return out, err
}

// EntryFilter narrows ListEntries. Zero fields are omitted; Date is the
// UTC calendar day formatted 2006-01-02.
type EntryFilter struct {
	ProjectID string
	UserID    string
	Date      string
}

func (c *Client) ListEntries(ctx context.Context, f EntryFilter) ([]TimeEntryInfo, error) {
	q := url.Values{}
	if f.ProjectID != "" {
		q.Set("project_id", f.ProjectID)
	}
	if f.UserID != "" {
		q.Set("user_id", f.UserID)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}

	path := "/v1/entries"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListEntriesResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Entries, err
}

func (c *Client) Summary(ctx context.Context, f EntryFilter) (SummaryResponse, error) {
	q := url.Values{}
	if f.ProjectID != "" {
		q.Set("project_id", f.ProjectID)
	}
	if f.UserID != "" {
		q.Set("user_id", f.UserID)
	}
	if f.Date != "" {
		q.Set("date", f.Date)
	}

	path := "/v1/reports/summary"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out SummaryResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}
