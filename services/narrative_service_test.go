package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestNarrativeService() *NarrativeService {
	return NewNarrativeService(DefaultQuoteBank())
}

func TestExtractYear(t *testing.T) {
	s := newTestNarrativeService()

	assert.Equal(t, "1889", s.ExtractYear("Construction finished in 1889 for the World's Fair, renovated in 1981."))
	assert.Equal(t, "2010", s.ExtractYear("Opened in 2010."))
	assert.Equal(t, "1503", s.ExtractYear("Work began in 1503."))
	assert.Empty(t, s.ExtractYear("Built in 1399, long before modern records."))
	assert.Empty(t, s.ExtractYear("A structure of unknown age."))
	assert.Empty(t, s.ExtractYear("Its catalogue number is 18899."))
}

func TestExtractArchitect(t *testing.T) {
	s := newTestNarrativeService()

	assert.Equal(t, "Gustave Eiffel", s.ExtractArchitect("The tower was designed by Gustave Eiffel, whose company built it."))
	assert.Empty(t, s.ExtractArchitect("The builder remains unknown."))
	assert.Empty(t, s.ExtractArchitect("It stands by the river."))
}

func TestExtractArchitectMatchesLoosePhrases(t *testing.T) {
	s := newTestNarrativeService()

	// The pattern keys on capitalization after "by", not on grammar, so
	// non-person phrases match as well.
	assert.Equal(t, "Romantic ideals", s.ExtractArchitect("The facade was inspired by Romantic ideals, not by any single hand."))
}

func TestDetectMoodOrder(t *testing.T) {
	s := newTestNarrativeService()

	// War outranks nature even when both keyword sets match.
	assert.Equal(t, MoodWar, s.DetectMood("A battle fought on the mountain pass"))
	// Spiritual outranks grand for shared keywords like cathedral.
	assert.Equal(t, MoodSpiritual, s.DetectMood("A gothic cathedral in the old town"))
	assert.Equal(t, MoodLove, s.DetectMood("A favorite honeymoon destination"))
	assert.Equal(t, MoodNature, s.DetectMood("Cliffs above the sea"))
	assert.Equal(t, MoodGrand, s.DetectMood("An opera house on the harbour"))
	assert.Equal(t, MoodNeutral, s.DetectMood("An old building downtown"))
	assert.Equal(t, MoodNeutral, s.DetectMood(""))
}

func TestDetectMoodIsCaseInsensitive(t *testing.T) {
	s := newTestNarrativeService()

	assert.Equal(t, MoodWar, s.DetectMood("WAR MEMORIAL"))
}

func TestEchoOfTimeMatchesMood(t *testing.T) {
	s := newTestNarrativeService()

	quote := s.EchoOfTime(MoodWar)
	assert.Contains(t, DefaultQuoteBank()[MoodWar], quote)
}

func TestEchoOfTimeUnknownMoodFallsBackToNeutral(t *testing.T) {
	s := newTestNarrativeService()

	quote := s.EchoOfTime("melancholy")
	assert.Contains(t, DefaultQuoteBank()[MoodNeutral], quote)
}

func TestQuoteBankPickSingleEntry(t *testing.T) {
	bank := QuoteBank{MoodGrand: {"only one"}}

	assert.Equal(t, "only one", bank.Pick(MoodGrand))
}

func TestLoadQuoteBankMissingFileUsesDefaults(t *testing.T) {
	bank := LoadQuoteBank("testdata/does-not-exist.json")

	assert.Equal(t, DefaultQuoteBank(), bank)
}
