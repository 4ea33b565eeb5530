package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadQuoteBankFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"neutral": ["A custom line."]}`), 0o600))

	bank := LoadQuoteBank(path)

	assert.Equal(t, QuoteBank{MoodNeutral: {"A custom line."}}, bank)
}

func TestLoadQuoteBankEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	assert.Equal(t, DefaultQuoteBank(), LoadQuoteBank(path))
}

func TestPickReturnsEmptyForEmptyBank(t *testing.T) {
	assert.Empty(t, QuoteBank{}.Pick(MoodGrand))
}
