// Package i18n provides locale-aware message lookup for user-visible
// strings (welcome turns, error notices, prompt personas).
//
// Locales are a closed, typed enumeration and every locale must define
// every message key. Validate is called at startup so a missing
// translation is a boot failure, not a runtime surprise.
package i18n

import (
	"fmt"
	"strings"
)

// Locale identifies a supported UI/prompt language.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleKO Locale = "ko"
)

// DefaultLocale is used when a session does not specify a locale.
const DefaultLocale = LocaleKO

// ErrUnknownLocale indicates a locale string that is not supported.
var ErrUnknownLocale = fmt.Errorf("unknown locale")

// Locales returns all supported locales.
func Locales() []Locale {
	return []Locale{LocaleEN, LocaleKO}
}

// Parse maps a free-form language name to a Locale.
// Accepts codes ("en", "ko") and common English/native names.
func Parse(s string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "en-us", "english":
		return LocaleEN, nil
	case "ko", "ko-kr", "korean", "한국어":
		return LocaleKO, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
}

// Key names a translatable message.
type Key string

// Message keys. Every locale table must define all of them.
const (
	KeyWelcomeNews       Key = "welcome.news"
	KeyWelcomeTravel     Key = "welcome.travel"
	KeyNoticeNoModelKey  Key = "notice.no_model_key"
	KeyNoticeUpstream    Key = "notice.upstream_error"
	KeyWarnFetchFailed   Key = "warn.fetch_failed"
	KeyWarnNoResults     Key = "warn.no_results"
	KeyPersonaNews       Key = "persona.news"
	KeyPersonaTravel     Key = "persona.travel"
	KeySyntheticTitle    Key = "synthetic.title"
	KeySyntheticLead     Key = "synthetic.lead"
	KeySyntheticSource   Key = "synthetic.source"
	KeySyntheticBody1    Key = "synthetic.body_1"
	KeySyntheticBody2    Key = "synthetic.body_2"
	KeySyntheticBody3    Key = "synthetic.body_3"
	KeyTravelSource      Key = "travel.source"
	KeyTravelAttractions Key = "travel.attractions"
	KeyTravelFood        Key = "travel.food"
	KeyTravelTransport   Key = "travel.transport"
	KeyTravelWeather     Key = "travel.weather"
	KeyTravelUnknown     Key = "travel.unknown"
)

// allKeys lists every key for completeness validation.
var allKeys = []Key{
	KeyWelcomeNews,
	KeyWelcomeTravel,
	KeyNoticeNoModelKey,
	KeyNoticeUpstream,
	KeyWarnFetchFailed,
	KeyWarnNoResults,
	KeyPersonaNews,
	KeyPersonaTravel,
	KeySyntheticTitle,
	KeySyntheticLead,
	KeySyntheticSource,
	KeySyntheticBody1,
	KeySyntheticBody2,
	KeySyntheticBody3,
	KeyTravelSource,
	KeyTravelAttractions,
	KeyTravelFood,
	KeyTravelTransport,
	KeyTravelWeather,
	KeyTravelUnknown,
}

// messages maps locale -> key -> translation. Populated by the
// per-locale files (messages_en.go, messages_ko.go).
var messages = map[Locale]map[Key]string{
	LocaleEN: englishMessages,
	LocaleKO: koreanMessages,
}

// Validate checks that every supported locale defines every key.
// Call once at startup; a non-nil error means the tables are broken.
func Validate() error {
	for _, loc := range Locales() {
		table, ok := messages[loc]
		if !ok {
			return fmt.Errorf("locale %q has no message table", loc)
		}
		for _, k := range allKeys {
			if _, ok := table[k]; !ok {
				return fmt.Errorf("locale %q is missing key %q", loc, k)
			}
		}
	}
	return nil
}

// T returns the translation for key in the given locale.
// Falls back to English, then to the key itself, so a lookup never
// returns an empty string.
func T(loc Locale, key Key) string {
	if msg, ok := messages[loc][key]; ok {
		return msg
	}
	if msg, ok := messages[LocaleEN][key]; ok {
		return msg
	}
	return string(key)
}

// Sprintf returns the translated and formatted message.
func Sprintf(loc Locale, key Key, args ...any) string {
	return fmt.Sprintf(T(loc, key), args...)
}
