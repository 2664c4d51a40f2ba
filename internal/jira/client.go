package jira

import (
	"context"
	"time"
)

// AuthType selects how credentials are attached to outgoing requests.
type AuthType string

const (
	// AuthBasic authenticates with email + API token (Jira Cloud).
	AuthBasic AuthType = "basic"
	// AuthBearer authenticates with a bearer token (Data Center PATs).
	AuthBearer AuthType = "bearer"
)

// Client is the interface for interacting with Jira.
type Client interface {
	// Search runs a bounded JQL search, requesting only the given fields.
	Search(ctx context.Context, jql string, startAt, maxResults int, fields []string) (*SearchResponse, error)
	// ListFields returns the field metadata the instance exposes.
	ListFields(ctx context.Context) ([]Field, error)
	// ListProjects returns all projects visible to the credential.
	ListProjects(ctx context.Context) ([]Project, error)
}

// Config holds the authentication and connection settings for Jira.
type Config struct {
	BaseURL  string
	Token    string
	Email    string
	AuthType AuthType

	// Login is an optional username some Data Center instances require
	// alongside a bearer token.
	Login string

	// VerifySSL disables certificate verification when false
	// (self-signed instances).
	VerifySSL bool

	// Timeout bounds each individual request.
	Timeout time.Duration
}

// NewClient creates a new Jira client based on the provided configuration.
func NewClient(cfg Config) Client {
	return newHTTPClient(cfg)
}
