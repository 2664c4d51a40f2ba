package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildJQL(t *testing.T) {
	tests := []struct {
		name    string
		project string
		query   string
		want    string
		wantErr error
	}{
		{"project only", "DEMO", "", "project = DEMO ORDER BY created DESC", nil},
		{"explicit query wins", "DEMO", "assignee = currentUser()", "assignee = currentUser()", nil},
		{"query passed through verbatim", "", "project = X AND type = Story ORDER BY key", "project = X AND type = Story ORDER BY key", nil},
		{"neither", "", "", "", ErrNoQuery},
	}

	for _, tt := range tests {
		got, err := BuildJQL(tt.project, tt.query)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: BuildJQL error = %v, want %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("%s: BuildJQL = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBuildJQLProjectOrdering(t *testing.T) {
	// Every project-derived query must carry a deterministic ordering
	// clause, otherwise page order is undefined.
	for _, project := range []string{"DEMO", "OPS", "A1"} {
		got, err := BuildJQL(project, "")
		if err != nil {
			t.Fatalf("BuildJQL(%q) error: %v", project, err)
		}
		if !strings.Contains(got, project) {
			t.Errorf("BuildJQL(%q) = %q, missing project key", project, got)
		}
		if !strings.Contains(got, "ORDER BY created DESC") {
			t.Errorf("BuildJQL(%q) = %q, missing ordering clause", project, got)
		}
	}
}
