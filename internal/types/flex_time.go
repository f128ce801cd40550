package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// flexTimeLayouts are tried in order; the zone-less layouts are read as UTC.
var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime is a timestamp that accepts ISO-8601 strings with or without a zone.
type FlexTime time.Time

// ParseFlexTime parses value with the accepted layouts.
func ParseFlexTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range flexTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("FlexTime: unrecognized timestamp %q", value)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("FlexTime: expected string: %w", err)
	}
	t, err := ParseFlexTime(s)
	if err != nil {
		return err
	}
	*f = FlexTime(t)
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(f).Format(time.RFC3339))
}

// Time converts FlexTime back to time.Time.
func (f FlexTime) Time() time.Time {
	return time.Time(f)
}
