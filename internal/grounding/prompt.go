package grounding

import "github.com/hojin-dev/newschat/internal/i18n"

// NewsPersona returns the system instruction for news mode: the
// news-analyst persona with the grounding text embedded verbatim.
// Pure function, no I/O.
func NewsPersona(loc i18n.Locale, groundingText string) string {
	return i18n.Sprintf(loc, i18n.KeyPersonaNews, groundingText)
}

// TravelPersona returns the system instruction for travel mode: the
// destination-guide persona for the given destination with the
// grounding text embedded verbatim. Pure function, no I/O.
func TravelPersona(loc i18n.Locale, destination, groundingText string) string {
	return i18n.Sprintf(loc, i18n.KeyPersonaTravel, destination, groundingText)
}
