package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	var keywords []string
	require.NoError(t, ParseJSON(`["chicken", "tacos"]`, &keywords))
	assert.Equal(t, []string{"chicken", "tacos"}, keywords)
}

func TestParseJSONBytes(t *testing.T) {
	var source RecipeSource
	data := []byte(`{"site_name": "AllRecipes", "url_template": "https://a.com/?q={query}", "active": true}`)
	require.NoError(t, ParseJSONBytes(data, &source))
	assert.Equal(t, "AllRecipes", source.SiteName)
	assert.True(t, source.Active)
}

func TestToJSONRoundTrip(t *testing.T) {
	in := RecipeSource{SiteName: "Test", URLTemplate: "https://t.com/?q={query}", Active: true}

	data, err := ToJSON(in)
	require.NoError(t, err)

	var out RecipeSource
	require.NoError(t, ParseJSON(data, &out))
	assert.Equal(t, in, out)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a": 1} garbage`, &v)
	assert.Error(t, err)
}

func TestQuoteJSONKeys(t *testing.T) {
	raw := `{name: "pasta", tags: [1, 2]}`
	fixed := QuoteJSONKeys(raw)
	assert.Equal(t, `{"name": "pasta", "tags": [1, 2]}`, fixed)

	// 已經合規的 JSON 不應被改動
	ok := `{"name": "pasta"}`
	assert.Equal(t, ok, QuoteJSONKeys(ok))
}
