package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-02-29", "2024-02-29", true},
		{" 2024-01-05 ", "2024-01-05", true},
		{"2024-01-05T10:00:00Z", "2024-01-05", true},
		{"2024-01-05T23:30:00-03:00", "2024-01-05", true},
		{"05/01/2024", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDate(%q) error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tc.in)
			}
			continue
		}
		if got.String() != tc.want {
			t.Fatalf("ParseDate(%q) = %q; want %q", tc.in, got.String(), tc.want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.March, 7)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-07"` {
		t.Fatalf("marshal = %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip mismatch: %v vs %v", back, d)
	}

	var zero Date
	if b, _ := json.Marshal(zero); string(b) != "null" {
		t.Fatalf("zero date marshal = %s; want null", b)
	}
	if err := json.Unmarshal([]byte(`"not-a-date"`), &back); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	if err := d.Scan("2023-12-31"); err != nil || d.String() != "2023-12-31" {
		t.Fatalf("scan string: %v %q", err, d.String())
	}
	if err := d.Scan([]byte("2023-11-30 00:00:00")); err != nil || d.String() != "2023-11-30" {
		t.Fatalf("scan bytes: %v %q", err, d.String())
	}
	ts := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)
	if err := d.Scan(ts); err != nil || d.String() != "2022-06-15" {
		t.Fatalf("scan time: %v %q", err, d.String())
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Fatalf("scan nil: %v %v", err, d)
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}

	v, err := NewDate(2024, 1, 2).Value()
	if err != nil || v != "2024-01-02" {
		t.Fatalf("Value() = %v, %v", v, err)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, 1, 31)
	b := a.AddDays(1)
	if b.String() != "2024-02-01" {
		t.Fatalf("AddDays = %s", b)
	}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("Before ordering broken")
	}
}
