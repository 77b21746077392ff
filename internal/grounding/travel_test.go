package grounding

import (
	"strings"
	"testing"

	"github.com/hojin-dev/newschat/internal/i18n"
)

func TestValidateDestinations(t *testing.T) {
	if err := ValidateDestinations(); err != nil {
		t.Fatalf("ValidateDestinations() error = %v", err)
	}
}

func TestTravelRecords(t *testing.T) {
	t.Run("korean destination korean locale", func(t *testing.T) {
		records, ok := TravelRecords("서울", i18n.LocaleKO)
		if !ok {
			t.Fatal("TravelRecords(서울) ok = false, want true")
		}
		if len(records) != 4 {
			t.Fatalf("TravelRecords(서울) returned %d records, want 4", len(records))
		}
		for i, rec := range records {
			if rec.Title == "" || rec.Summary == "" || rec.SourceName == "" {
				t.Errorf("record %d has empty field: %+v", i, rec)
			}
		}
	})

	t.Run("english alias resolves", func(t *testing.T) {
		records, ok := TravelRecords("Seoul", i18n.LocaleEN)
		if !ok {
			t.Fatal("TravelRecords(Seoul) ok = false, want true")
		}
		if len(records) != 4 {
			t.Fatalf("TravelRecords(Seoul) returned %d records, want 4", len(records))
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		if _, ok := TravelRecords("Atlantis", i18n.LocaleEN); ok {
			t.Error("TravelRecords(Atlantis) ok = true, want false")
		}
	})
}

// English records for a Korean-named destination must not carry Korean
// text: the locale in the query key decides the language, not the
// destination spelling.
func TestTravelRecordsNoLocaleLeak(t *testing.T) {
	records, ok := TravelRecords("서울", i18n.LocaleEN)
	if !ok {
		t.Fatal("TravelRecords(서울, en) ok = false, want true")
	}
	for i, rec := range records {
		for _, r := range rec.Title + rec.Summary + rec.SourceName {
			if r >= 0xAC00 && r <= 0xD7A3 {
				t.Fatalf("record %d contains Hangul in English locale: %q / %q",
					i, rec.Title, rec.Summary)
			}
		}
	}
}

func TestTravelRecordsCategoryOrder(t *testing.T) {
	records, _ := TravelRecords("paris", i18n.LocaleEN)
	wantFragments := []string{"attractions", "food", "Getting around", "Weather"}
	if len(records) != len(wantFragments) {
		t.Fatalf("got %d records, want %d", len(records), len(wantFragments))
	}
	for i, frag := range wantFragments {
		if !strings.Contains(records[i].Title, frag) {
			t.Errorf("record %d title = %q, want it to mention %q", i, records[i].Title, frag)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		dest string
		loc  i18n.Locale
		want string
	}{
		{"서울", i18n.LocaleEN, "Seoul"},
		{"seoul", i18n.LocaleKO, "서울"},
		{"Tokyo", i18n.LocaleEN, "Tokyo"},
		{"nowhere", i18n.LocaleEN, "nowhere"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.dest, tt.loc); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.dest, tt.loc, got, tt.want)
		}
	}
}

func TestPersonaEmbedsGrounding(t *testing.T) {
	grounding := "[1] Some headline\nSource: Wire\nsummary\n"

	news := NewsPersona(i18n.LocaleEN, grounding)
	if !strings.Contains(news, grounding) {
		t.Errorf("NewsPersona() does not embed grounding text:\n%s", news)
	}

	travel := TravelPersona(i18n.LocaleKO, "서울", grounding)
	if !strings.Contains(travel, grounding) {
		t.Errorf("TravelPersona() does not embed grounding text:\n%s", travel)
	}
	if !strings.Contains(travel, "서울") {
		t.Errorf("TravelPersona() does not mention the destination:\n%s", travel)
	}
}
