package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// --- Shared Custom Types ---

const dateLayout = "2006-01-02"

// Date is a calendar date that encodes as "YYYY-MM-DD" or null when zero.
type Date struct {
	time.Time
}

// ParseDate accepts an empty string (null date), a plain date, or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, err
	}
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if d == nil {
		return errors.New("Date: UnmarshalJSON on nil pointer")
	}
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FlexString decodes from a JSON string or number. The remote service is
// not consistent about ids, phone numbers and pincodes.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if f == nil {
		return errors.New("FlexString: UnmarshalJSON on nil pointer")
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	raw := string(data)
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("FlexString: expected string or number, got %s", raw)
	}
	*f = FlexString(raw)
	return nil
}

// Response standardizes API responses.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	UserID  FlexString      `json:"userId,omitempty"`
}
