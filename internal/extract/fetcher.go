package extract

import (
	"context"

	"github.com/rs/zerolog/log"

	"jirax/internal/jira"
)

// defaultPageSize caps each search request independently of the run's
// maxResults. 50 keeps individual responses small enough to be reliable
// on slow Data Center instances.
const defaultPageSize = 50

// standardFields is the fixed field set every extraction requests.
// Custom field identifiers from the session's FieldMapping are added on
// top, so the server never sends fields the exporter ignores.
var standardFields = []string{
	"summary",
	"issuetype",
	"status",
	"priority",
	"assignee",
	"reporter",
	"resolution",
	"updated",
	"labels",
}

// Fetcher drives the paginated search requests for one extraction run.
type Fetcher struct {
	client  jira.Client
	mapping FieldMapping

	// PageSize is exposed for tests; leave it at the default otherwise.
	PageSize int
}

// NewFetcher creates a Fetcher bound to a session and its field mapping.
func NewFetcher(client jira.Client, mapping FieldMapping) *Fetcher {
	return &Fetcher{
		client:   client,
		mapping:  mapping,
		PageSize: defaultPageSize,
	}
}

// Fetch collects up to maxResults issues matching jql, in server order.
// It stops early when a page comes back short or the server-reported
// total is reached. Any request failure aborts the whole fetch with the
// client's typed error; issues from earlier pages are discarded by the
// caller, which has not opened an output file yet at that point.
func (f *Fetcher) Fetch(ctx context.Context, jql string, maxResults int) ([]jira.Issue, error) {
	fields := append([]string{}, standardFields...)
	fields = append(fields, f.mapping.IDs()...)

	var issues []jira.Issue
	startAt := 0

	for {
		limit := f.PageSize
		if remaining := maxResults - len(issues); remaining < limit {
			limit = remaining
		}
		if limit <= 0 {
			break
		}

		log.Debug().Int("startAt", startAt).Int("limit", limit).Msg("Fetching issue page")
		page, err := f.client.Search(ctx, jql, startAt, limit, fields)
		if err != nil {
			return nil, err
		}

		issues = append(issues, page.Issues...)
		startAt += len(page.Issues)

		if len(page.Issues) < limit {
			break
		}
		if len(issues) >= maxResults {
			break
		}
		if page.Total > 0 && len(issues) >= page.Total {
			break
		}
	}

	if len(issues) > maxResults {
		issues = issues[:maxResults]
	}
	log.Info().Int("count", len(issues)).Msg("Fetched issues from Jira")
	return issues, nil
}
