package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as a JSON text column.
// The JSON text encoding matches the data files written by the mobile app,
// so existing databases stay readable.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as an empty JSON
// array rather than NULL so round-trips preserve "no tags".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}

// RecurringPattern describes how a recurring transaction repeats. Stored as
// a JSON text column, NULL when the transaction does not recur.
type RecurringPattern struct {
	Frequency string     `json:"frequency"` // daily|weekly|monthly|yearly
	Interval  int        `json:"interval"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Value implements driver.Valuer. The pointer receiver lets database/sql
// store NULL for a nil pattern.
func (p *RecurringPattern) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *RecurringPattern) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type for RecurringPattern: %T", src)
	}
}
