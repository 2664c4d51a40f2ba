package jira

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type httpClient struct {
	cfg        Config
	httpClient *http.Client
}

func newHTTPClient(cfg Config) *httpClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &httpClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

func (c *httpClient) authenticateRequest(req *http.Request) {
	if c.cfg.AuthType == AuthBearer {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.Token))
		if c.cfg.Login != "" {
			req.Header.Set("X-Ausername", c.cfg.Login)
		}
		return
	}
	req.SetBasicAuth(c.cfg.Email, c.cfg.Token)
}

// get issues an authenticated GET and decodes a 2xx response into out.
// Non-2xx statuses are mapped onto the sentinel error taxonomy.
func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	requestURL := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	c.authenticateRequest(req)

	log.Debug().Str("url", requestURL).Msg("Jira request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return fmt.Errorf("%w: request timed out after %s", ErrTransient, c.cfg.Timeout)
		}
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Jira response: %w", err)
	}
	return nil
}

func (c *httpClient) statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusBadRequest:
		// Pass the server's own message through, it names the broken
		// part of the JQL.
		var body errorBody
		if data, err := io.ReadAll(resp.Body); err == nil {
			_ = json.Unmarshal(data, &body)
		}
		if msg := body.message(); msg != "" {
			return fmt.Errorf("%w: %s", ErrQuery, msg)
		}
		return fmt.Errorf("%w: status 400", ErrQuery)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d), check your token and auth type", ErrAuth, resp.StatusCode)
	case http.StatusTooManyRequests:
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			return fmt.Errorf("%w: rate limit exceeded (429), retry after %s seconds", ErrTransient, retryAfter)
		}
		return fmt.Errorf("%w: rate limit exceeded (429)", ErrTransient)
	default:
		return fmt.Errorf("Jira API returned status %d", resp.StatusCode)
	}
}

func (c *httpClient) Search(ctx context.Context, jql string, startAt, maxResults int, fields []string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("jql", jql)
	params.Set("startAt", strconv.Itoa(startAt))
	params.Set("maxResults", strconv.Itoa(maxResults))
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	var result SearchResponse
	if err := c.get(ctx, "/rest/api/2/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) ListFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.get(ctx, "/rest/api/2/field", nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (c *httpClient) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.get(ctx, "/rest/api/2/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
