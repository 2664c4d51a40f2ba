package extract

import (
	"encoding/json"
	"strings"

	"jirax/internal/export"
	"jirax/internal/jira"
)

// labelDelimiter joins an issue's labels into the single Labels column,
// preserving the tracker's own order.
const labelDelimiter = ", "

// Normalize flattens one raw issue into an export record. It is pure:
// the same issue, mapping and timestamp always produce the same record,
// and malformed custom field content degrades to raw text or blank
// rather than failing the row.
func Normalize(issue jira.Issue, mapping FieldMapping, extractedAt string) export.Record {
	fields := issue.Fields

	record := export.Record{
		Key:         issue.Key,
		Summary:     fields.Summary,
		IssueType:   fields.IssueType.Name,
		Status:      fields.Status.Name,
		Priority:    fields.Priority.Name,
		Assignee:    fields.Assignee.DisplayName,
		Reporter:    fields.Reporter.DisplayName,
		Resolution:  fields.Resolution.Name,
		Updated:     fields.Updated,
		Labels:      strings.Join(fields.Labels, labelDelimiter),
		Sprint:      SprintFromRaw(customValue(fields, mapping, LabelSprint)),
		ExtractDate: extractedAt,
	}

	// An epic cannot be its own child link, so epics never carry epic
	// linkage regardless of what the custom fields contain.
	if !strings.EqualFold(record.IssueType, "Epic") {
		record.EpicKey = customString(fields, mapping, LabelEpicKey)
		record.EpicName = customString(fields, mapping, LabelEpicName)
	}

	return record
}

// customValue returns the raw custom field content for a label, or nil
// when the label is unmapped or the field is absent.
func customValue(fields jira.IssueFields, mapping FieldMapping, label FieldLabel) json.RawMessage {
	id, ok := mapping[label]
	if !ok {
		return nil
	}
	return fields.Custom[id]
}

// customString decodes a plain-string custom field, treating null,
// absent or non-string content as blank.
func customString(fields jira.IssueFields, mapping FieldMapping, label FieldLabel) string {
	raw := customValue(fields, mapping, label)
	if len(raw) == 0 {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}
