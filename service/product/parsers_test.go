package product

import (
	"testing"
	"time"
)

func TestParseFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"5990", 5990, true},
		{"5 990", 5990, true},
		{"7 490,50", 7490.50, true},
		{"7490.50", 7490.50, true},
		{"", 0, false},
		{"free", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseFloat(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseFloat(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseInt(t *testing.T) {
	if n, ok := ParseInt("1 250"); !ok || n != 1250 {
		t.Errorf("ParseInt(1 250) = (%d, %v)", n, ok)
	}
	if _, ok := ParseInt("abc"); ok {
		t.Error("ParseInt(abc) should fail")
	}
}

func TestNormalizeStr(t *testing.T) {
	if got := NormalizeStr("красный"); got != "Красный" {
		t.Errorf("NormalizeStr = %q", got)
	}
	if got := NormalizeStr("размер 42,5"); got != "Размер 42.5" {
		t.Errorf("NormalizeStr = %q", got)
	}
	if got := NormalizeStr(""); got != "" {
		t.Errorf("NormalizeStr(empty) = %q", got)
	}
}

// Date sorting compares serialized timestamps lexicographically, so the
// format must be fixed-width regardless of sub-second precision.
func TestFormatCreatedAt_FixedWidth(t *testing.T) {
	a := FormatCreatedAt(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	b := FormatCreatedAt(time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.UTC))
	if len(a) != len(b) {
		t.Fatalf("widths differ: %q vs %q", a, b)
	}
	if a != "2026-01-02T03:04:05.000000Z" {
		t.Errorf("format = %q", a)
	}
	if !(a < b) {
		t.Errorf("lexicographic order broken: %q !< %q", a, b)
	}
}
