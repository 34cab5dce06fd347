package format

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	ts := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"pt": "7 de março de 2025",
		"en": "March 7, 2025",
		"es": "7 de marzo de 2025",
		"fr": "7 de março de 2025", // unknown locale uses pt
	}
	for lang, want := range cases {
		if got := Date(ts, lang); got != want {
			t.Errorf("Date(%s) = %q, want %q", lang, got, want)
		}
	}
	if got := Date(time.Time{}, "pt"); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
}

func TestCenturyOrder(t *testing.T) {
	cases := map[string]int{
		"I":    1,
		"IV":   4,
		"VIII": 8,
		"XIII": 13,
		"XX":   20,
		"XXI":  21,
		" xxi": 21,
		"8":    8,
	}
	for in, want := range cases {
		if got := CenturyOrder(in); got != want {
			t.Errorf("CenturyOrder(%q) = %d, want %d", in, got, want)
		}
	}
	if CenturyOrder("") <= CenturyOrder("XXI") {
		t.Error("empty century must sort after real ones")
	}
	if CenturyOrder("n/a") <= CenturyOrder("XXI") {
		t.Error("unparseable century must sort after real ones")
	}
}
