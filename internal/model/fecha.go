package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Fecha is a sale timestamp as the backend serializes it. Two shapes occur
// in the wild: a Firestore-style wrapper {"_seconds": N} and a plain date
// string (RFC3339 or YYYY-MM-DD). Anything else leaves the value dateless
// (Valid=false) rather than failing the whole payload — dateless sales are
// excluded from date-bucketed aggregates but still count toward totals.
type Fecha struct {
	time.Time
	Valid bool
}

var fechaLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func NewFecha(t time.Time) Fecha {
	return Fecha{Time: t, Valid: true}
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	f.Valid = false
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	// Epoch-seconds wrapper
	var wrapper struct {
		Seconds *int64 `json:"_seconds"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Seconds != nil {
		f.Time = time.Unix(*wrapper.Seconds, 0)
		f.Valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	for _, layout := range fechaLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			f.Time = t
			f.Valid = true
			return nil
		}
	}
	return nil
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}

// DayKey returns the local calendar day as YYYY-MM-DD.
func (f Fecha) DayKey() string {
	return f.Time.Format("2006-01-02")
}

// MonthKey returns the local calendar month as YYYY-MM.
func (f Fecha) MonthKey() string {
	return f.Time.Format("2006-01")
}
