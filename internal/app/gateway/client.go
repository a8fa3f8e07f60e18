// Package gateway is the typed client for the remote ERP API. Every
// onboarding mutation (login, signup, company registration, branch
// registration) goes through here; handlers never build HTTP requests
// themselves.
//
// Success contract: a mutation succeeded only when the transport
// status is 2xx AND the body carries msg == "success". Either check
// alone is insufficient; the API has been observed returning 200 with
// a failure body.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxResponseBody caps how much of an API response we read. The real
// responses are a few hundred bytes.
const maxResponseBody = 1 << 20

// Client talks to one ERP API base URL. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient trims a trailing slash from baseURL so path joins stay
// predictable. A zero timeout falls back to 10s.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// BaseURL reports the configured API root, mainly for health checks
// and startup logging.
func (c *Client) BaseURL() string { return c.baseURL }

/*──────────────────────────── operations ────────────────────────────*/

// Login exchanges credentials for an identity and bearer token. Any
// rejection, invalid credentials included, surfaces as ErrAuth; the
// API does not distinguish causes.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("%w: encode login: %v", ErrAuth, err)
	}

	resp, err := c.post(ctx, "/api/v1/auth/login", "application/json", bytes.NewReader(body), "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		c.log.Warn("login rejected", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: login returned %d", ErrAuth, resp.StatusCode)
	}

	var env authEnvelope
	if err := decode(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if env.Result.Token == "" || env.Result.User.ID == "" {
		return nil, fmt.Errorf("%w: response missing identity or token", ErrAuth)
	}
	return &AuthResult{User: env.Result.User, Token: env.Result.Token}, nil
}

// RegisterUser submits the signup form as multipart form data and, on
// success, returns the same identity-plus-token shape as Login. The
// new user is effectively signed in by the call.
func (c *Client) RegisterUser(ctx context.Context, form RegistrationForm) (*AuthResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"first_name":            form.FirstName,
		"last_name":             form.LastName,
		"email":                 form.Email,
		"gender":                form.Gender,
		"password":              form.Password,
		"password_confirmation": form.PasswordConfirmation,
	}
	for name, value := range fields {
		if name == "gender" && value == "" {
			continue
		}
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("%w: encode signup: %v", ErrRegistration, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: encode signup: %v", ErrRegistration, err)
	}

	resp, err := c.post(ctx, "/api/v1/auth/register", mw.FormDataContentType(), &buf, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		c.log.Warn("signup rejected", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: signup returned %d", ErrRegistration, resp.StatusCode)
	}

	var env authEnvelope
	if err := decode(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistration, err)
	}
	if env.Result.Token == "" || env.Result.User.ID == "" {
		return nil, fmt.Errorf("%w: response missing identity or token", ErrRegistration)
	}
	return &AuthResult{User: env.Result.User, Token: env.Result.Token}, nil
}

// RegisterCompany creates the user's organization and returns the new
// company id. Callers must persist that id before navigating onward;
// a success response without an id is treated as failure.
func (c *Client) RegisterCompany(ctx context.Context, companyName, userID, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing bearer token", ErrAuth)
	}

	body, err := json.Marshal(map[string]string{"company_name": companyName, "user_id": userID})
	if err != nil {
		return "", fmt.Errorf("%w: encode company: %v", ErrRegistration, err)
	}

	resp, err := c.post(ctx, "/api/v1/company/register", "application/json", bytes.NewReader(body), token)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Warn("company registration token rejected", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: company registration returned %d", ErrAuth, resp.StatusCode)
	case !is2xx(resp.StatusCode):
		c.log.Warn("company registration rejected", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: company registration returned %d", ErrRegistration, resp.StatusCode)
	}

	var env companyEnvelope
	if err := decode(resp.Body, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRegistration, err)
	}
	if env.Msg != successMarker {
		return "", fmt.Errorf("%w: company registration reported %q", ErrRegistration, env.Msg)
	}
	if env.Result.Company.ID == "" {
		return "", fmt.Errorf("%w: response missing company id", ErrRegistration)
	}
	return env.Result.Company.ID, nil
}

// RegisterBranch submits the first-branch payload. The payload is
// normalized first, so VAT fields are empty whenever the flag is off.
func (c *Client) RegisterBranch(ctx context.Context, branch BranchRegistration, token string) error {
	if token == "" {
		return fmt.Errorf("%w: missing bearer token", ErrAuth)
	}

	body, err := json.Marshal(branch.normalized())
	if err != nil {
		return fmt.Errorf("%w: encode branch: %v", ErrBranchRegistration, err)
	}

	resp, err := c.post(ctx, "/api/v1/branches", "application/json", bytes.NewReader(body), token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.log.Warn("branch registration token rejected", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: branch registration returned %d", ErrAuth, resp.StatusCode)
	case !is2xx(resp.StatusCode):
		c.log.Warn("branch registration rejected", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: branch registration returned %d", ErrBranchRegistration, resp.StatusCode)
	}

	var env branchEnvelope
	if err := decode(resp.Body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrBranchRegistration, err)
	}
	if env.Msg != successMarker {
		detail := env.Message
		if detail == "" {
			detail = fmt.Sprintf("reported %q", env.Msg)
		}
		c.log.Warn("branch registration refused", zap.String("detail", detail))
		return fmt.Errorf("%w: %s", ErrBranchRegistration, detail)
	}
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Reachability                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// Ping reports whether the API base URL answers at all. Any HTTP
// response counts as reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp.Body.Close()
	return nil
}

/*──────────────────────────── plumbing ────────────────────────────*/

// post issues the request and returns the raw response. Transport
// failures come back wrapped in ErrNetwork; status handling is the
// caller's job.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("api request",
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("X-Request-ID")))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api unreachable", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return resp, nil
}

func decode(r io.Reader, dst any) error {
	data, err := io.ReadAll(io.LimitReader(r, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read response: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("malformed response: %v", err)
	}
	return nil
}

func is2xx(status int) bool { return status >= 200 && status < 300 }
