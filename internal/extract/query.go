package extract

import (
	"errors"
	"fmt"
)

// ErrNoQuery indicates neither a project key nor a JQL expression was
// supplied, so there is nothing to extract.
var ErrNoQuery = errors.New("no project or query specified")

// BuildJQL resolves the effective JQL expression for an extraction run.
// An explicit query wins and is passed through verbatim; otherwise the
// project key is expanded into a project filter with a deterministic
// ordering clause. Without an explicit ORDER BY the server's result
// order is undefined across pages, which breaks pagination.
func BuildJQL(project, query string) (string, error) {
	if query != "" {
		return query, nil
	}
	if project != "" {
		return fmt.Sprintf("project = %s ORDER BY created DESC", project), nil
	}
	return "", ErrNoQuery
}
