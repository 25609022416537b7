package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSettings_EmptyKeepsDefaults(t *testing.T) {
	got, warnings := MergeSettings(DefaultSettings(), nil)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultSettings(), got)
}

func TestMergeSettings_KnownKeys(t *testing.T) {
	raw := []byte(`{
		"self": true,
		"touch": false,
		"lang": "ru",
		"search_engine": "duckduck",
		"keys": ["Alt", "s"],
		"shortcuts": ["gh:github.com/bnema/", " "],
		"exclude_urls": ["www.Example.com", "example.com"],
		"unknown_field": 42
	}`)

	got, warnings := MergeSettings(DefaultSettings(), raw)
	assert.Empty(t, warnings)
	assert.True(t, got.OpenInSelf)
	assert.False(t, got.Touch)
	assert.True(t, got.Background)
	assert.Equal(t, LangRU, got.Lang)
	assert.Equal(t, "duckduck", got.SearchEngine)
	assert.Equal(t, [2]string{"Alt", "s"}, got.Keys)
	assert.Equal(t, []string{"gh:github.com/bnema/"}, got.Shortcuts)
	assert.Equal(t, []string{"example.com"}, got.ExcludeURLs)
}

func TestMergeSettings_WrongTypesAreSkipped(t *testing.T) {
	raw := []byte(`{"self": "yes", "keys": ["Control"], "search_engine": "altavista", "lang": "fr"}`)

	got, warnings := MergeSettings(DefaultSettings(), raw)
	assert.Len(t, warnings, 4)
	assert.False(t, got.OpenInSelf)
	assert.Equal(t, DefaultSettings().Keys, got.Keys)
	assert.Equal(t, DefaultEngineKey, got.SearchEngine)
	assert.Equal(t, LangEN, got.Lang)
}

func TestMergeSettings_MalformedBlob(t *testing.T) {
	got, warnings := MergeSettings(DefaultSettings(), []byte(`not json`))
	require.Len(t, warnings, 1)
	assert.Equal(t, DefaultSettings(), got)
}

func TestSettings_RoundTripThroughMerge(t *testing.T) {
	s := DefaultSettings()
	s.OpenInSelf = true
	s.Shortcuts = []string{"r:reddit.com/r/"}

	raw, err := s.Encode()
	require.NoError(t, err)

	got, warnings := MergeSettings(DefaultSettings(), raw)
	assert.Empty(t, warnings)
	assert.Equal(t, s, got)
}

func TestSettings_IsExcludedHost(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.IsExcludedHost("www.linkedin.com"))
	assert.True(t, s.IsExcludedHost("linkedin.com"))
	assert.False(t, s.IsExcludedHost("uk.linkedin.com"))
}
