package extract

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"jirax/internal/jira"
)

// makeIssues builds n sequential dummy issues starting at offset.
func makeIssues(offset, n int) []jira.Issue {
	issues := make([]jira.Issue, n)
	for i := range issues {
		issues[i] = jira.Issue{Key: fmt.Sprintf("DEMO-%d", offset+i+1)}
	}
	return issues
}

// pagedClient serves a fixed result set through the search API.
func pagedClient(total int, requests *[]int) *fakeClient {
	return &fakeClient{
		search: func(_ string, startAt, maxResults int, _ []string) (*jira.SearchResponse, error) {
			*requests = append(*requests, startAt)
			n := maxResults
			if startAt+n > total {
				n = total - startAt
			}
			if n < 0 {
				n = 0
			}
			return &jira.SearchResponse{
				StartAt: startAt,
				Total:   total,
				Issues:  makeIssues(startAt, n),
			}, nil
		},
	}
}

func TestFetchMaxResultsAcrossPageBoundary(t *testing.T) {
	var requests []int
	fetcher := NewFetcher(pagedClient(5, &requests), nil)
	fetcher.PageSize = 1

	issues, err := fetcher.Fetch(context.Background(), "project = DEMO", 2)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(issues) != 2 {
		t.Errorf("Fetch returned %d issues, want 2", len(issues))
	}
	if len(requests) < 2 {
		t.Errorf("expected at least 2 paginated requests, got offsets %v", requests)
	}
	if issues[0].Key != "DEMO-1" || issues[1].Key != "DEMO-2" {
		t.Errorf("fetch order not preserved: %v", issues)
	}
}

func TestFetchStopsOnShortPage(t *testing.T) {
	var requests []int
	fetcher := NewFetcher(pagedClient(3, &requests), nil)
	fetcher.PageSize = 2

	issues, err := fetcher.Fetch(context.Background(), "project = DEMO", 100)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(issues) != 3 {
		t.Errorf("Fetch returned %d issues, want 3", len(issues))
	}
	if len(requests) != 2 {
		t.Errorf("expected 2 requests (full page + short page), got offsets %v", requests)
	}
}

func TestFetchStopsAtServerTotal(t *testing.T) {
	var requests []int
	fetcher := NewFetcher(pagedClient(4, &requests), nil)
	fetcher.PageSize = 2

	issues, err := fetcher.Fetch(context.Background(), "project = DEMO", 100)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(issues) != 4 {
		t.Errorf("Fetch returned %d issues, want 4", len(issues))
	}
	// Two full pages reach the reported total, no trailing empty request.
	if len(requests) != 2 {
		t.Errorf("expected 2 requests, got offsets %v", requests)
	}
}

func TestFetchEmptyResultSet(t *testing.T) {
	var requests []int
	fetcher := NewFetcher(pagedClient(0, &requests), nil)

	issues, err := fetcher.Fetch(context.Background(), "project = EMPTY", 100)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("Fetch returned %d issues, want 0", len(issues))
	}
}

func TestFetchPropagatesTypedError(t *testing.T) {
	client := &fakeClient{
		search: func(_ string, startAt, _ int, _ []string) (*jira.SearchResponse, error) {
			if startAt == 0 {
				return &jira.SearchResponse{Total: 10, Issues: makeIssues(0, 2)}, nil
			}
			return nil, fmt.Errorf("%w: unknown field 'sprnt'", jira.ErrQuery)
		},
	}
	fetcher := NewFetcher(client, nil)
	fetcher.PageSize = 2

	issues, err := fetcher.Fetch(context.Background(), "sprnt = 1", 10)
	if !errors.Is(err, jira.ErrQuery) {
		t.Fatalf("Fetch error = %v, want ErrQuery", err)
	}
	if issues != nil {
		t.Errorf("failed fetch returned issues: %v", issues)
	}
}

func TestFetchRequestsMappedFields(t *testing.T) {
	var gotFields []string
	client := &fakeClient{
		search: func(_ string, _, _ int, fields []string) (*jira.SearchResponse, error) {
			gotFields = fields
			return &jira.SearchResponse{}, nil
		},
	}
	mapping := FieldMapping{
		LabelSprint:  "customfield_10020",
		LabelEpicKey: "customfield_10014",
	}

	if _, err := NewFetcher(client, mapping).Fetch(context.Background(), "project = DEMO", 10); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	for _, want := range []string{"summary", "labels", "customfield_10014", "customfield_10020"} {
		if !slices.Contains(gotFields, want) {
			t.Errorf("requested fields %v missing %q", gotFields, want)
		}
	}
}
