package jira

import (
	"encoding/json"
	"strings"
)

// SearchResponse is the top-level container for Jira search results.
type SearchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Issue represents a single issue in a Jira search response.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// NamedEntity is the common {"name": ...} shape Jira uses for issue
// type, status, priority and resolution. A JSON null leaves it zero.
type NamedEntity struct {
	Name string `json:"name"`
}

// UserEntity is the shape Jira uses for assignee and reporter.
type UserEntity struct {
	DisplayName string `json:"displayName"`
}

// IssueFields contains the standard fields the extractor requests plus
// every custom field the server returned, keyed by its opaque
// customfield_* identifier.
type IssueFields struct {
	Summary    string
	IssueType  NamedEntity
	Status     NamedEntity
	Priority   NamedEntity
	Assignee   UserEntity
	Reporter   UserEntity
	Resolution NamedEntity
	Updated    string
	Labels     []string

	// Custom holds the raw value of every customfield_* entry. The
	// shapes vary per instance, so interpretation is deferred to the
	// normalizer.
	Custom map[string]json.RawMessage
}

func (f *IssueFields) UnmarshalJSON(data []byte) error {
	var known struct {
		Summary    string      `json:"summary"`
		IssueType  NamedEntity `json:"issuetype"`
		Status     NamedEntity `json:"status"`
		Priority   NamedEntity `json:"priority"`
		Assignee   UserEntity  `json:"assignee"`
		Reporter   UserEntity  `json:"reporter"`
		Resolution NamedEntity `json:"resolution"`
		Updated    string      `json:"updated"`
		Labels     []string    `json:"labels"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	*f = IssueFields{
		Summary:    known.Summary,
		IssueType:  known.IssueType,
		Status:     known.Status,
		Priority:   known.Priority,
		Assignee:   known.Assignee,
		Reporter:   known.Reporter,
		Resolution: known.Resolution,
		Updated:    known.Updated,
		Labels:     known.Labels,
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key, value := range all {
		if !strings.HasPrefix(key, "customfield_") {
			continue
		}
		if f.Custom == nil {
			f.Custom = make(map[string]json.RawMessage)
		}
		f.Custom[key] = value
	}
	return nil
}

// Field is one entry from the field metadata endpoint.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// Project is one entry from the project listing endpoint.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// errorBody is Jira's standard error envelope.
type errorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func (e errorBody) message() string {
	var parts []string
	parts = append(parts, e.ErrorMessages...)
	for _, msg := range e.Errors {
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
