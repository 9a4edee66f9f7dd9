package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time component. It marshals as
// "YYYY-MM-DD" and maps to a MySQL DATE column.
type Date struct{ time.Time }

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, Invalidf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{d.AddDate(0, 0, n)} }

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	// tolerate full timestamps from clients
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Invalidf("invalid date %q, want YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) { return d.Format(dateLayout), nil }

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		d.Time = v.UTC().Truncate(24 * time.Hour)
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
