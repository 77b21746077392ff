package i18n

// koreanMessages holds all Korean translations.
var koreanMessages = map[Key]string{
	// Chat notices
	KeyWelcomeNews:      "안녕하세요! '%s' 관련 뉴스에 대해 궁금한 것이 있으시면 언제든 물어보세요!",
	KeyWelcomeTravel:    "안녕하세요! %s 여행에 대해 궁금한 것이 있으시면 언제든 물어보세요!",
	KeyNoticeNoModelKey: "모델 API 키가 설정되지 않았습니다. GEMINI_API_KEY 또는 OPENAI_API_KEY 환경변수를 설정해주세요.",
	KeyNoticeUpstream:   "죄송합니다. 응답 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",

	// Provider warnings
	KeyWarnFetchFailed: "뉴스 검색 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
	KeyWarnNoResults:   "검색된 뉴스가 없습니다.",

	// System prompt personas. %s is the serialized grounding text.
	KeyPersonaNews: `당신은 뉴스 분석 전문가입니다. 다음 뉴스 정보를 바탕으로 사용자의 질문에 답변해주세요:

%s

위 뉴스들을 참고하여 정확하고 유용한 정보를 제공하며, 출처를 명시해주세요.
뉴스에 없는 내용에 대해서는 일반적인 지식을 바탕으로 도움이 되는 답변을 해주세요.`,
	KeyPersonaTravel: `당신은 %s 전문 여행 가이드입니다. 다음 여행지 정보를 바탕으로 사용자의 질문에 답변해주세요:

%s

위 정보에 해당하는 내용은 정보를 우선으로 하고, 친절하고 실용적인 어조로 답변해주세요.`,

	// Synthetic provider templates. Title: keyword, 1-based index.
	KeySyntheticTitle:  "%s 관련 최신 뉴스 %d",
	KeySyntheticLead:   "%[2]s에 대한 뉴스 %[1]d번입니다. ",
	KeySyntheticSource: "뉴스 소스 %d",
	KeySyntheticBody1:  "%s에 대한 중요한 소식이 전해졌습니다. 관련 업계에서는 이번 발표가 향후 시장에 큰 영향을 미칠 것으로 예상한다고 밝혔습니다.",
	KeySyntheticBody2:  "%s 분야의 새로운 동향이 발표되었습니다. 전문가들은 이러한 변화가 긍정적인 결과를 가져올 것이라고 전망하고 있습니다.",
	KeySyntheticBody3:  "%s와 관련된 정책 변화가 논의되고 있습니다. 이번 변화는 많은 사람들에게 직접적인 영향을 미칠 것으로 예상됩니다.",

	// Travel fact sheets
	KeyTravelSource:      "여행 가이드",
	KeyTravelAttractions: "%s 주요 명소",
	KeyTravelFood:        "%s 대표 음식",
	KeyTravelTransport:   "%s 교통",
	KeyTravelWeather:     "%s 날씨",
	KeyTravelUnknown:     "해당 여행지 정보가 없습니다.",
}
