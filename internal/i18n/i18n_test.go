package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.Russian},
		{"C", language.Russian},
		{"en", language.English},
		{"en_US.UTF-8", language.English},
		{"ru_RU.UTF-8", language.Russian},
		{"de-DE", language.Russian},
		{"???", language.Russian},
	}

	for _, tt := range tests {
		if got := Match(tt.locale); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.locale, got, tt.want)
		}
	}
}

func TestPrinters(t *testing.T) {
	ru := NewPrinter("ru")
	if got := ru.Sprintf(Start); got != "Старт" {
		t.Fatalf("ru Start = %q", got)
	}
	if got := ru.Sprintf(TrackOf, 2, 6); got != "трек 2 из 6" {
		t.Fatalf("ru TrackOf = %q", got)
	}

	en := NewPrinter("en")
	if got := en.Sprintf(Stop); got != "Stop" {
		t.Fatalf("en Stop = %q", got)
	}
	if got := en.Sprintf(Seconds); got != "sec" {
		t.Fatalf("en sec = %q", got)
	}
}

func TestEveryKeyIsTranslated(t *testing.T) {
	for key, text := range russian {
		if text == "" || text == key {
			t.Errorf("missing russian text for %q", key)
		}
	}
}
