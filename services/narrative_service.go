package services

import (
	"regexp"
	"strings"
)

var (
	// First 4-digit token between 1500 and 2099 counts as the construction year.
	yearRe = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)
	// "by " followed by a capitalized name-like run. A pattern match, not
	// grammatical attribution: prose such as "inspired by Romantic ideals"
	// matches too, and that is accepted behavior.
	architectRe = regexp.MustCompile(`by ([A-Z][A-Za-z\s.-]{2,40})`)
)

// moodBuckets are evaluated in this exact order; the first bucket with a
// keyword found in the text wins. Spiritual sits before grand, so a
// cathedral classifies as spiritual even though "cathedral" appears in both
// lists.
var moodBuckets = []struct {
	mood     string
	keywords []string
}{
	{MoodWar, []string{"war", "battle", "memorial", "bomb", "massacre", "genocide", "army", "trench"}},
	{MoodLove, []string{"love", "romance", "honeymoon", "valentine", "wedding", "heart"}},
	{MoodSpiritual, []string{"temple", "mosque", "church", "cathedral", "basilica", "shrine", "pilgrim", "spiritual"}},
	{MoodNature, []string{"mountain", "sea", "lake", "river", "forest", "desert", "beach", "cliff", "island", "canyon"}},
	{MoodGrand, []string{"tower", "palace", "castle", "bridge", "fort", "skyscraper", "cathedral", "museum", "opera", "theatre"}},
}

// NarrativeService derives the story fields of a place record: construction
// year, architect, mood and a mood-matched quotation.
type NarrativeService struct {
	quotes QuoteBank
}

func NewNarrativeService(quotes QuoteBank) *NarrativeService {
	return &NarrativeService{quotes: quotes}
}

// ExtractYear returns the first plausible construction year mentioned in the
// text, or "" when none is found.
func (s *NarrativeService) ExtractYear(text string) string {
	if m := yearRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// ExtractArchitect returns the first "by <Name>" match in the text, trimmed,
// or "" when none is found.
func (s *NarrativeService) ExtractArchitect(text string) string {
	if m := architectRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// DetectMood classifies the emotional framing of the place text.
func (s *NarrativeService) DetectMood(text string) string {
	t := strings.ToLower(text)
	for _, bucket := range moodBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(t, keyword) {
				return bucket.mood
			}
		}
	}
	return MoodNeutral
}

// EchoOfTime picks a quotation matching the mood.
func (s *NarrativeService) EchoOfTime(mood string) string {
	return s.quotes.Pick(mood)
}
