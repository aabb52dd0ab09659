// Package types implements special types for the accounting API.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned when a date does not match any accepted layout.
var ErrInvalidDateTime = errors.New("invalid date")

// Layouts accepted by ParseDateTime, in the order they are tried.
// Layouts without a zone are interpreted as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DateTime is a point in time that is exchanged in UTC with second precision.
type DateTime time.Time

// NewDateTime returns the DateTime for t.
func NewDateTime(t time.Time) DateTime {
	return DateTime(t.In(time.UTC).Truncate(time.Second))
}

// ParseDateTime parses s in one of the accepted layouts.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewDateTime(t), nil
		}
	}

	return DateTime{}, fmt.Errorf("%w %q, use RFC 3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD", ErrInvalidDateTime, s)
}

// Time returns the DateTime as time.Time.
func (d DateTime) Time() time.Time {
	return time.Time(d)
}

// String returns the time in RFC 3339 format.
func (d DateTime) String() string {
	return time.Time(d).In(time.UTC).Format(time.RFC3339)
}

// MarshalJSON implements the json.Marshaler interface.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The value is expected to be a string in a format accepted by ParseDateTime.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == "null" {
		return nil
	}

	if len(value) < 2 || !strings.HasPrefix(value, `"`) || !strings.HasSuffix(value, `"`) {
		return fmt.Errorf("%w: must be a string", ErrInvalidDateTime)
	}

	t, err := ParseDateTime(value[1 : len(value)-1])
	if err != nil {
		return err
	}

	*d = t
	return nil
}
