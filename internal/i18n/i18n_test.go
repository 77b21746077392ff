package i18n

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{"en", LocaleEN, false},
		{"EN", LocaleEN, false},
		{"english", LocaleEN, false},
		{"en-US", LocaleEN, false},
		{"ko", LocaleKO, false},
		{"Korean", LocaleKO, false},
		{"한국어", LocaleKO, false},
		{"  ko  ", LocaleKO, false},
		{"fr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownLocale) {
					t.Errorf("Parse(%q) error = %v, want ErrUnknownLocale", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestT(t *testing.T) {
	t.Run("korean lookup", func(t *testing.T) {
		got := T(LocaleKO, KeyWarnNoResults)
		if got != "검색된 뉴스가 없습니다." {
			t.Errorf("T(ko, warn.no_results) = %q", got)
		}
	})

	t.Run("english lookup", func(t *testing.T) {
		got := T(LocaleEN, KeyWarnNoResults)
		if !strings.Contains(got, "No news") {
			t.Errorf("T(en, warn.no_results) = %q", got)
		}
	})

	t.Run("unknown locale falls back to english", func(t *testing.T) {
		got := T(Locale("fr"), KeyWarnNoResults)
		if got != T(LocaleEN, KeyWarnNoResults) {
			t.Errorf("T(fr, ...) = %q, want English fallback", got)
		}
	})

	t.Run("unknown key falls back to key name", func(t *testing.T) {
		got := T(LocaleEN, Key("does.not.exist"))
		if got != "does.not.exist" {
			t.Errorf("T(en, unknown) = %q, want key name", got)
		}
	})
}

func TestSprintf(t *testing.T) {
	got := Sprintf(LocaleKO, KeyWelcomeNews, "반도체")
	if !strings.Contains(got, "반도체") {
		t.Errorf("Sprintf(ko, welcome.news) = %q, want keyword embedded", got)
	}
	if strings.Contains(got, "%s") {
		t.Errorf("Sprintf(ko, welcome.news) = %q, verb not expanded", got)
	}
}

// The Korean lead template reorders its arguments; both locales must
// accept (index, keyword) in that order.
func TestSyntheticLeadArgumentOrder(t *testing.T) {
	for _, loc := range Locales() {
		got := Sprintf(loc, KeySyntheticLead, 3, "economy")
		if !strings.Contains(got, "3") || !strings.Contains(got, "economy") {
			t.Errorf("Sprintf(%s, synthetic.lead, 3, economy) = %q", loc, got)
		}
		if strings.Contains(got, "%!") {
			t.Errorf("Sprintf(%s, synthetic.lead) bad verb expansion: %q", loc, got)
		}
	}
}
