package extract

import (
	"encoding/json"
	"testing"

	"jirax/internal/jira"
)

var testMapping = FieldMapping{
	LabelEpicKey:  "customfield_10014",
	LabelEpicName: "customfield_10011",
	LabelSprint:   "customfield_10020",
}

func storyIssue() jira.Issue {
	return jira.Issue{
		Key: "DEMO-2",
		Fields: jira.IssueFields{
			Summary:    "Implement login",
			IssueType:  jira.NamedEntity{Name: "Story"},
			Status:     jira.NamedEntity{Name: "In Progress"},
			Priority:   jira.NamedEntity{Name: "High"},
			Assignee:   jira.UserEntity{DisplayName: "Dana Developer"},
			Reporter:   jira.UserEntity{DisplayName: "Riley Reporter"},
			Resolution: jira.NamedEntity{},
			Updated:    "2026-08-20T10:15:00.000+0000",
			Labels:     []string{"backend", "auth"},
			Custom: map[string]json.RawMessage{
				"customfield_10014": json.RawMessage(`"DEMO-1"`),
				"customfield_10020": json.RawMessage(`["Sprint@1[id=1,name=Sprint 3,state=ACTIVE]"]`),
			},
		},
	}
}

func TestNormalizeStory(t *testing.T) {
	record := Normalize(storyIssue(), testMapping, "2026-08-26 12:00:00")

	checks := []struct {
		column string
		got    string
		want   string
	}{
		{"Key", record.Key, "DEMO-2"},
		{"Summary", record.Summary, "Implement login"},
		{"Issue_Type", record.IssueType, "Story"},
		{"Status", record.Status, "In Progress"},
		{"Priority", record.Priority, "High"},
		{"Assignee", record.Assignee, "Dana Developer"},
		{"Reporter", record.Reporter, "Riley Reporter"},
		{"Resolution", record.Resolution, ""},
		{"Updated", record.Updated, "2026-08-20T10:15:00.000+0000"},
		{"Sprint", record.Sprint, "Sprint 3"},
		{"Epic_Key", record.EpicKey, "DEMO-1"},
		{"Epic_Name", record.EpicName, ""},
		{"Labels", record.Labels, "backend, auth"},
		{"Extract_Date", record.ExtractDate, "2026-08-26 12:00:00"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.column, c.got, c.want)
		}
	}
}

func TestNormalizeEpicNeverLinksItself(t *testing.T) {
	issue := storyIssue()
	issue.Key = "DEMO-1"
	issue.Fields.IssueType = jira.NamedEntity{Name: "Epic"}
	issue.Fields.Custom["customfield_10011"] = json.RawMessage(`"Login Epic"`)

	record := Normalize(issue, testMapping, "2026-08-26 12:00:00")
	if record.EpicKey != "" || record.EpicName != "" {
		t.Errorf("epic row carries linkage: EpicKey=%q EpicName=%q", record.EpicKey, record.EpicName)
	}
	if record.IssueType != "Epic" {
		t.Errorf("IssueType = %q, want Epic", record.IssueType)
	}
}

func TestNormalizeMissingFieldsAreBlank(t *testing.T) {
	record := Normalize(jira.Issue{Key: "DEMO-9"}, testMapping, "2026-08-26 12:00:00")

	for column, got := range map[string]string{
		"Summary":    record.Summary,
		"Issue_Type": record.IssueType,
		"Priority":   record.Priority,
		"Assignee":   record.Assignee,
		"Sprint":     record.Sprint,
		"Epic_Key":   record.EpicKey,
		"Epic_Name":  record.EpicName,
		"Labels":     record.Labels,
	} {
		if got != "" {
			t.Errorf("%s = %q, want empty string", column, got)
		}
	}
}

func TestNormalizeEmptyMapping(t *testing.T) {
	// Scenario: field discovery found nothing, sprint and epic columns
	// stay blank even though the custom fields are present on the issue.
	record := Normalize(storyIssue(), FieldMapping{}, "2026-08-26 12:00:00")
	if record.Sprint != "" || record.EpicKey != "" || record.EpicName != "" {
		t.Errorf("unmapped labels not blank: Sprint=%q EpicKey=%q EpicName=%q",
			record.Sprint, record.EpicKey, record.EpicName)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize(storyIssue(), testMapping, "2026-08-26 12:00:00")
	second := Normalize(storyIssue(), testMapping, "2026-08-26 12:00:00")
	if first != second {
		t.Errorf("normalization not idempotent:\n first = %+v\nsecond = %+v", first, second)
	}
}

func TestNormalizeNullCustomFields(t *testing.T) {
	issue := storyIssue()
	issue.Fields.Custom = map[string]json.RawMessage{
		"customfield_10014": json.RawMessage(`null`),
		"customfield_10020": json.RawMessage(`null`),
	}

	record := Normalize(issue, testMapping, "2026-08-26 12:00:00")
	if record.EpicKey != "" || record.Sprint != "" {
		t.Errorf("null custom fields not blank: EpicKey=%q Sprint=%q", record.EpicKey, record.Sprint)
	}
}
