package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseStructured(t *testing.T) {
	raw := `Here is what I found:
{"high_confidence":[{"name":"Avocados","evidence":"front shelf"}],"medium_confidence":[{"name":"red bell peppers","evidence":"drawer"}]}`

	items := ParseResponse(raw, "")

	require.Len(t, items, 2)
	assert.Equal(t, Item{Name: "avocados", Tier: TierHigh}, items[0])
	assert.Equal(t, Item{Name: "peppers", Tier: TierMedium}, items[1])
}

func TestParseResponseStructuredFiltersInvalid(t *testing.T) {
	raw := `{"high_confidence":[{"name":"vegetables"},{"name":"eggs"}],"medium_confidence":[{"name":"jar"}]}`

	items := ParseResponse(raw, "")

	require.Len(t, items, 1)
	assert.Equal(t, "eggs", items[0].Name)
	assert.Equal(t, TierHigh, items[0].Tier)
}

func TestParseResponseCommaFallback(t *testing.T) {
	items := ParseResponse("eggs, milk, tomatoes", "")

	require.Len(t, items, 3)
	names := []string{items[0].Name, items[1].Name, items[2].Name}
	assert.Equal(t, []string{"eggs", "milk", "tomatoes"}, names)
	for _, item := range items {
		assert.Equal(t, TierDefault, item.Tier)
	}
}

func TestParseResponseFallbackDedupes(t *testing.T) {
	items := ParseResponse("eggs, Eggs, red bell pepper, peppers", "")

	require.Len(t, items, 2)
	assert.Equal(t, "eggs", items[0].Name)
	assert.Equal(t, "peppers", items[1].Name)
}

func TestParseResponseMalformedJSONDegrades(t *testing.T) {
	// A broken JSON span falls back to the comma list over the whole text.
	items := ParseResponse(`{"high_confidence": eggs, milk`, "")

	// "milk" survives the comma split; the brace-laden token does not
	// block the fallback.
	found := false
	for _, item := range items {
		if item.Name == "milk" {
			found = true
			assert.Equal(t, TierDefault, item.Tier)
		}
	}
	assert.True(t, found)
}

func TestParseResponseTotalFailureIsEmpty(t *testing.T) {
	assert.Empty(t, ParseResponse("", ""))
	assert.Empty(t, ParseResponse("???", ""))
}

func TestParseResponseDietaryRestrictions(t *testing.T) {
	raw := `{"high_confidence":[{"name":"chicken breast"},{"name":"tofu"}],"medium_confidence":[]}`

	items := ParseResponse(raw, "vegan")

	require.Len(t, items, 1)
	assert.Equal(t, "tofu", items[0].Name)
}

func TestTierConfidence(t *testing.T) {
	assert.Equal(t, 0.95, TierHigh.Confidence())
	assert.Equal(t, 0.8, TierMedium.Confidence())
	assert.Equal(t, 0.7, TierDefault.Confidence())
	assert.Equal(t, 0.7, Tier("bogus").Confidence())
}
