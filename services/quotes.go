package services

import (
	"encoding/json"
	"math/rand"
	"os"
)

// Mood tags. Classification walks the buckets in narrative_service.go in
// this order; neutral is the fallback when nothing matches.
const (
	MoodWar       = "war"
	MoodLove      = "love"
	MoodSpiritual = "spiritual"
	MoodNature    = "nature"
	MoodGrand     = "grand"
	MoodNeutral   = "neutral"
)

// QuoteBank maps a mood tag to its quotations. It is built once at startup
// and read-only afterwards, so concurrent requests can read it without
// synchronization.
type QuoteBank map[string][]string

// DefaultQuoteBank returns the built-in quotations shipped with the service.
func DefaultQuoteBank() QuoteBank {
	return QuoteBank{
		MoodWar: {
			"Where silence screams louder than war.",
			"Ruins remember what victors forget.",
			"Peace is carved from the scar of battle.",
		},
		MoodLove: {
			"Even steel can feel love if kissed by light.",
			"Two hearts turned stone into legend.",
			"Love built this so it would never die.",
		},
		MoodSpiritual: {
			"Here, stone breathes a prayer.",
			"Faith is the architecture of the unseen.",
			"Footsteps soften when the soul listens.",
		},
		MoodNature: {
			"Time drifts where the waves remember.",
			"Mountains teach the patience of the earth.",
			"The wind writes history on water and rock.",
		},
		MoodGrand: {
			"Dreams forged in iron and ambition.",
			"Every arch is a heartbeat of an era.",
			"Greatness is geometry set to music.",
		},
		MoodNeutral: {
			"Stone remembers; crowds forget.",
			"What survives of us is story.",
			"Every brick keeps a secret.",
		},
	}
}

// LoadQuoteBank reads a quote bank from a JSON file, keeping the built-in
// defaults when the file is missing, unreadable or empty.
func LoadQuoteBank(path string) QuoteBank {
	bank := DefaultQuoteBank()
	if path == "" {
		return bank
	}

	file, err := os.Open(path)
	if err != nil {
		return bank
	}
	defer file.Close()

	var loaded QuoteBank
	if err := json.NewDecoder(file).Decode(&loaded); err != nil || len(loaded) == 0 {
		return bank
	}
	return loaded
}

// Pick returns a uniformly random quotation for the mood. A mood with no
// entries falls back to the neutral list.
func (b QuoteBank) Pick(mood string) string {
	quotes := b[mood]
	if len(quotes) == 0 {
		quotes = b[MoodNeutral]
	}
	if len(quotes) == 0 {
		return ""
	}
	return quotes[rand.Intn(len(quotes))]
}
