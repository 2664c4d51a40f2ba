package extract

import (
	"encoding/json"
	"strings"
)

// SprintFromRaw extracts the current sprint name from whatever shape
// the tracker stored in the sprint custom field: absent, null, a single
// descriptor, or a history of descriptors (newest last). It never
// fails; unparseable-but-present data falls back to its raw text.
func SprintFromRaw(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		// Jira appends sprints in the order the issue entered them,
		// so the last entry is the current one.
		return sprintName(list[len(list)-1])
	}
	return sprintName(raw)
}

func sprintName(raw json.RawMessage) string {
	// Newer instances return sprint objects directly.
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}

	var serialized string
	if err := json.Unmarshal(raw, &serialized); err == nil {
		if name, ok := ParseSprintName(serialized); ok {
			return name
		}
		return serialized
	}
	return ""
}

// ParseSprintName parses the greenhopper serialized sprint descriptor,
// e.g. "com.atlassian.greenhopper.service.sprint.Sprint@4a1[id=7,
// rapidViewId=2,state=ACTIVE,name=Sprint 12,startDate=...]", and
// returns the embedded name. The second result reports whether the
// input had the expected bracketed shape with a name entry.
func ParseSprintName(s string) (string, bool) {
	open := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if open < 0 || end < open {
		return "", false
	}
	for _, part := range strings.Split(s[open+1:end], ",") {
		if name, ok := strings.CutPrefix(part, "name="); ok {
			return strings.TrimSpace(name), true
		}
	}
	return "", false
}
