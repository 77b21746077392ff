package i18n

// englishMessages holds all English translations.
var englishMessages = map[Key]string{
	// Chat notices
	KeyWelcomeNews:      "Hello! Ask me anything about the latest news on '%s'.",
	KeyWelcomeTravel:    "Hello! Ask me anything about traveling to %s.",
	KeyNoticeNoModelKey: "The model API key is not configured. Set the GEMINI_API_KEY or OPENAI_API_KEY environment variable to enable chat responses.",
	KeyNoticeUpstream:   "Sorry, something went wrong while generating a response. Please try again.",

	// Provider warnings
	KeyWarnFetchFailed: "An error occurred while searching for news. Please try again.",
	KeyWarnNoResults:   "No news found for this search.",

	// System prompt personas. %s is the serialized grounding text.
	KeyPersonaNews: `You are a news analysis expert. Answer the user's questions based on the following news items:

%s

Refer to the news above, provide accurate and useful information, and cite sources. For topics not covered by the news, answer helpfully from general knowledge.`,
	KeyPersonaTravel: `You are a travel guide specializing in %s. Answer the user's questions based on the following destination facts:

%s

Stick to the facts above where they apply and answer in a friendly, practical tone.`,

	// Synthetic provider templates. Title: keyword, 1-based index.
	KeySyntheticTitle:  "Latest news on %s #%d",
	KeySyntheticLead:   "This is news item %d about %s. ",
	KeySyntheticSource: "News Source %d",
	KeySyntheticBody1:  "An important development regarding %s has been announced. Industry watchers expect it to have a significant impact on the market.",
	KeySyntheticBody2:  "New trends in the field of %s have been published. Experts forecast that these changes will bring positive results.",
	KeySyntheticBody3:  "Policy changes related to %s are under discussion. The changes are expected to affect many people directly.",

	// Travel fact sheets
	KeyTravelSource:      "Travel Guide",
	KeyTravelAttractions: "Top attractions in %s",
	KeyTravelFood:        "Local food in %s",
	KeyTravelTransport:   "Getting around %s",
	KeyTravelWeather:     "Weather in %s",
	KeyTravelUnknown:     "No information is available for that destination.",
}
