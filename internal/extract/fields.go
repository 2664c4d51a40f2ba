package extract

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"jirax/internal/jira"
)

// FieldLabel is a semantic name for one of the custom fields the
// exporter enriches records from.
type FieldLabel string

const (
	LabelEpicKey  FieldLabel = "epic_key"
	LabelEpicName FieldLabel = "epic_name"
	LabelSprint   FieldLabel = "sprint"
)

// FieldMapping maps semantic labels to the instance-specific custom
// field identifiers that carry them. Built once per session and
// read-only afterwards. A label with no entry is emitted blank.
type FieldMapping map[FieldLabel]string

// IDs returns the mapped custom field identifiers in a stable order.
func (m FieldMapping) IDs() []string {
	ids := make([]string, 0, len(m))
	for _, id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// labelPatterns is the fixed name-substring table used to recognize
// the semantic fields across instances.
var labelPatterns = []struct {
	label     FieldLabel
	substring string
}{
	{LabelEpicKey, "epic link"},
	{LabelEpicName, "epic name"},
	{LabelSprint, "sprint"},
}

// ResolveFields discovers which custom field identifiers carry epic and
// sprint data on this instance. The first field matching a label (in
// the server's listing order) wins. Discovery failure is recoverable:
// the extraction proceeds with an empty mapping and those columns stay
// blank.
func ResolveFields(ctx context.Context, client jira.Client) FieldMapping {
	mapping := make(FieldMapping)

	fields, err := client.ListFields(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Field discovery failed, sprint and epic columns will be blank")
		return mapping
	}

	for _, field := range fields {
		if !field.Custom {
			continue
		}
		name := strings.ToLower(field.Name)
		for _, pattern := range labelPatterns {
			if _, done := mapping[pattern.label]; done {
				continue
			}
			if strings.Contains(name, pattern.substring) {
				mapping[pattern.label] = field.ID
			}
		}
	}

	log.Debug().Int("mapped", len(mapping)).Msg("Resolved custom field mapping")
	return mapping
}
