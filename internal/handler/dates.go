package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateOnly = "2006-01-02"

// isoDate accepts an RFC 3339 timestamp or a bare calendar date, read as midnight UTC.
type isoDate time.Time

func (d *isoDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			*d = isoDate(t.UTC())
			return nil
		}
	}

	return fmt.Errorf("invalid date %q, expected RFC 3339 or YYYY-MM-DD", raw)
}

func (d *isoDate) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}
