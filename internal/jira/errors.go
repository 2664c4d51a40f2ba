package jira

import "errors"

// Sentinel errors for the failure classes the API can surface. Callers
// match them with errors.Is to decide whether a failure is fatal,
// retryable, or recoverable.
var (
	// ErrAuth indicates the credential was rejected (401/403).
	ErrAuth = errors.New("jira authentication failed")

	// ErrQuery indicates the server rejected the JQL expression (400).
	// The server's own message is wrapped alongside it.
	ErrQuery = errors.New("jira rejected the query")

	// ErrTransient covers timeouts, connection failures and rate
	// limiting (429). The client does not retry these itself.
	ErrTransient = errors.New("transient jira request failure")
)
