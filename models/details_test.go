package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailsSetAndGet(t *testing.T) {
	var d Details
	d.Set("Material", "Cotton")
	d.Set("Fit", "Regular")
	d.Set("Material", "Linen") // replace keeps position

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "Material", d[0].Label)

	material, ok := d.Get("Material")
	assert.True(t, ok)
	assert.Equal(t, "Linen", material)

	_, ok = d.Get("Missing")
	assert.False(t, ok)
	assert.True(t, d.Has("Fit"))
}

func TestDetailsMarshalOrder(t *testing.T) {
	var d Details
	d.Set("Zeta", "1")
	d.Set("Alpha", "2")
	d.Set("Mid", "3")

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":"1","Alpha":"2","Mid":"3"}`, string(out))
}

func TestDetailsMarshalEmpty(t *testing.T) {
	out, err := json.Marshal(Details{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestDetailsMarshalEscaping(t *testing.T) {
	var d Details
	d.Set(`Size "Large"`, "60% / 40%")

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `{"Size \"Large\"":"60% / 40%"}`, string(out))
}

func TestDetailsRoundTrip(t *testing.T) {
	var d Details
	d.Set("Item Weight", "250 g")
	d.Set("Department", "Mens")
	d.Set("Colour", "Navy")

	out, err := json.Marshal(d)
	require.NoError(t, err)

	var back Details
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, d, back)
}

func TestFailedScrapeShape(t *testing.T) {
	p := FailedScrape("Please try again. Unable to connect to Amazon.")

	assert.False(t, p.Success)
	assert.Equal(t, "Please try again. Unable to connect to Amazon.", p.Error)
	assert.Equal(t, "unknown", p.ASIN)
	assert.Equal(t, "N/A", p.Title)
	assert.Equal(t, []string{"N/A"}, p.Bullets)
	assert.Equal(t, "N/A", p.Pricing.CurrentPrice)
	assert.Equal(t, "USD", p.Pricing.Currency)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
}
