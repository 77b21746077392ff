package grounding

import (
	"fmt"
	"strings"

	"github.com/hojin-dev/newschat/internal/i18n"
)

// FactSheet holds the curated facts for one destination in one locale.
// Fields stay under the prompt character limit so they survive
// serialization verbatim.
type FactSheet struct {
	Name        string
	Attractions string
	Food        string
	Transport   string
	Weather     string
}

// destinations is the curated travel dataset, keyed by canonical
// destination name (the Korean name, matching the source dataset).
// Every destination must carry a sheet for every supported locale;
// ValidateDestinations enforces this at startup.
var destinations = map[string]map[i18n.Locale]FactSheet{
	"서울": {
		i18n.LocaleKO: {
			Name:        "서울",
			Attractions: "경복궁, 북촌 한옥마을, N서울타워, 홍대 거리가 대표 명소입니다.",
			Food:        "비빔밥, 삼겹살, 치킨, 광장시장의 빈대떡과 마약김밥이 유명합니다.",
			Transport:   "지하철 1~9호선과 T-money 카드로 시내 대부분을 이동할 수 있습니다.",
			Weather:     "사계절이 뚜렷하며 여름은 덥고 습하고 겨울은 춥고 건조합니다.",
		},
		i18n.LocaleEN: {
			Name:        "Seoul",
			Attractions: "Gyeongbokgung Palace, Bukchon Hanok Village, N Seoul Tower, and the Hongdae district are the signature sights.",
			Food:        "Bibimbap, samgyeopsal barbecue, Korean fried chicken, and the bindaetteok stalls of Gwangjang Market are local favorites.",
			Transport:   "Subway lines 1-9 with a T-money card cover most of the city.",
			Weather:     "Four distinct seasons: hot humid summers and cold dry winters.",
		},
	},
	"부산": {
		i18n.LocaleKO: {
			Name:        "부산",
			Attractions: "해운대 해수욕장, 감천문화마을, 광안리, 자갈치시장이 대표 명소입니다.",
			Food:        "돼지국밥, 밀면, 씨앗호떡, 자갈치시장의 회가 유명합니다.",
			Transport:   "지하철 4개 노선과 시내버스로 주요 관광지를 이동할 수 있습니다.",
			Weather:     "해양성 기후로 여름은 서울보다 시원하고 겨울은 온화합니다.",
		},
		i18n.LocaleEN: {
			Name:        "Busan",
			Attractions: "Haeundae Beach, Gamcheon Culture Village, Gwangalli, and Jagalchi Market are the signature sights.",
			Food:        "Dwaeji-gukbap pork soup, milmyeon noodles, seed hotteok, and fresh sashimi at Jagalchi Market are local favorites.",
			Transport:   "Four subway lines and city buses connect the main tourist areas.",
			Weather:     "Maritime climate: summers are cooler than Seoul and winters are mild.",
		},
	},
	"제주": {
		i18n.LocaleKO: {
			Name:        "제주",
			Attractions: "한라산, 성산일출봉, 협재 해수욕장, 올레길이 대표 명소입니다.",
			Food:        "흑돼지 구이, 고기국수, 해녀가 잡은 전복과 성게가 유명합니다.",
			Transport:   "대중교통이 제한적이라 렌터카 이용이 가장 편리합니다.",
			Weather:     "온화한 해양성 기후지만 바람이 강하고 날씨 변화가 잦습니다.",
		},
		i18n.LocaleEN: {
			Name:        "Jeju",
			Attractions: "Hallasan Mountain, Seongsan Ilchulbong peak, Hyeopjae Beach, and the Olle walking trails are the signature sights.",
			Food:        "Black pork barbecue, gogi-guksu noodles, and abalone and sea urchin caught by haenyeo divers are local favorites.",
			Transport:   "Public transport is limited; a rental car is the most practical way around.",
			Weather:     "Mild maritime climate, but windy with fast-changing conditions.",
		},
	},
	"도쿄": {
		i18n.LocaleKO: {
			Name:        "도쿄",
			Attractions: "센소지, 시부야 스크램블, 신주쿠 교엔, 팀랩 미술관이 대표 명소입니다.",
			Food:        "스시, 라멘, 츠키지 장외시장의 해산물, 몬자야키가 유명합니다.",
			Transport:   "JR 야마노테선과 지하철, Suica 카드로 어디든 이동할 수 있습니다.",
			Weather:     "여름은 덥고 습하며 장마가 있고, 겨울은 맑고 건조합니다.",
		},
		i18n.LocaleEN: {
			Name:        "Tokyo",
			Attractions: "Senso-ji Temple, Shibuya Crossing, Shinjuku Gyoen, and the teamLab museums are the signature sights.",
			Food:        "Sushi, ramen, the seafood stalls of the outer Tsukiji market, and monjayaki are local favorites.",
			Transport:   "The JR Yamanote line and the subway with a Suica card reach everywhere.",
			Weather:     "Hot humid summers with a rainy season; winters are clear and dry.",
		},
	},
	"파리": {
		i18n.LocaleKO: {
			Name:        "파리",
			Attractions: "에펠탑, 루브르 박물관, 몽마르트르, 세느강 유람선이 대표 명소입니다.",
			Food:        "크루아상, 에스카르고, 스테이크 프리트, 마카롱이 유명합니다.",
			Transport:   "메트로 14개 노선과 Navigo 카드로 시내를 이동할 수 있습니다.",
			Weather:     "여름은 온화하고 겨울은 흐리고 비가 잦은 서안 해양성 기후입니다.",
		},
		i18n.LocaleEN: {
			Name:        "Paris",
			Attractions: "The Eiffel Tower, the Louvre, Montmartre, and a Seine river cruise are the signature sights.",
			Food:        "Croissants, escargots, steak frites, and macarons are local favorites.",
			Transport:   "Fourteen metro lines with a Navigo pass cover the city.",
			Weather:     "Oceanic climate: mild summers, grey and often rainy winters.",
		},
	},
}

// destinationAliases maps lowercase English names to canonical keys so
// both "서울" and "Seoul" resolve to the same destination.
var destinationAliases = map[string]string{
	"seoul": "서울",
	"busan": "부산",
	"jeju":  "제주",
	"tokyo": "도쿄",
	"paris": "파리",
}

// ValidateDestinations checks that every destination defines a fact
// sheet for every supported locale and no sheet has an empty field.
// Call once at startup.
func ValidateDestinations() error {
	for dest, sheets := range destinations {
		for _, loc := range i18n.Locales() {
			sheet, ok := sheets[loc]
			if !ok {
				return fmt.Errorf("destination %q has no fact sheet for locale %q", dest, loc)
			}
			if sheet.Name == "" || sheet.Attractions == "" || sheet.Food == "" ||
				sheet.Transport == "" || sheet.Weather == "" {
				return fmt.Errorf("destination %q has an incomplete fact sheet for locale %q", dest, loc)
			}
		}
	}
	return nil
}

// Destinations returns the canonical names of all known destinations.
func Destinations() []string {
	names := make([]string, 0, len(destinations))
	for name := range destinations {
		names = append(names, name)
	}
	return names
}

// resolveDestination maps user input to a canonical destination key.
func resolveDestination(dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if _, ok := destinations[dest]; ok {
		return dest, true
	}
	if canonical, ok := destinationAliases[strings.ToLower(dest)]; ok {
		return canonical, true
	}
	return "", false
}

// TravelRecords returns the curated records for a destination in the
// given locale: one record per fact category, in a fixed category
// order. The second return value is false when the destination is
// unknown.
func TravelRecords(dest string, loc i18n.Locale) ([]Record, bool) {
	canonical, ok := resolveDestination(dest)
	if !ok {
		return nil, false
	}
	sheet := destinations[canonical][loc]
	source := i18n.T(loc, i18n.KeyTravelSource)

	categories := []struct {
		key  i18n.Key
		text string
	}{
		{i18n.KeyTravelAttractions, sheet.Attractions},
		{i18n.KeyTravelFood, sheet.Food},
		{i18n.KeyTravelTransport, sheet.Transport},
		{i18n.KeyTravelWeather, sheet.Weather},
	}

	records := make([]Record, 0, len(categories))
	for _, c := range categories {
		records = append(records, Record{
			Title:      i18n.Sprintf(loc, c.key, sheet.Name),
			Summary:    c.text,
			SourceName: source,
		})
	}
	return records, true
}

// DisplayName returns the localized name of a destination, falling
// back to the input when the destination is unknown.
func DisplayName(dest string, loc i18n.Locale) string {
	canonical, ok := resolveDestination(dest)
	if !ok {
		return dest
	}
	return destinations[canonical][loc].Name
}
