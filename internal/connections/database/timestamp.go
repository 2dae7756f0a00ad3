package database

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// Timestamp scans an absolute instant from either dialect. Postgres hands
// back time.Time; SQLite may hand back text. Valid is false for NULL.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case time.Time:
		*t = Timestamp{Time: v.UTC(), Valid: true}
		return nil
	case int64:
		*t = Timestamp{Time: time.UnixMilli(v).UTC(), Valid: true}
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("timestamp: unsupported source type %T", src)
	}
}

func (t *Timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	// time.Time.String() appends the monotonic clock reading.
	if i := strings.Index(s, " m="); i >= 0 {
		s = s[:i]
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			*t = Timestamp{Time: v.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time.UTC(), nil
}

// Ptr returns nil for NULL.
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
