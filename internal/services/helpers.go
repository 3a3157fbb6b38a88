package services

import (
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts the date formats the web forms and API clients send.
// nil input means "no date"; anything non-empty must parse.
func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *value); err == nil {
			return &t, nil
		}
	}
	return nil, NewValidationError(field, "must be a calendar date (YYYY-MM-DD)")
}
