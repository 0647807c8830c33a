package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyAttributes(t *testing.T) {
	prompt := "Category: [Category], Gender: [Gender], Style: [Style]"
	attributes := map[string]string{
		"Category": "Clothing",
		"Gender":   "Men",
	}

	result := ApplyAttributes(prompt, attributes)
	assert.Equal(t, "Category: Clothing, Gender: Men, Style: [Style]", result)
}

func TestApplyAttributesNoPlaceholders(t *testing.T) {
	assert.Equal(t, "plain text", ApplyAttributes("plain text", map[string]string{"Key": "Value"}))
}

func TestImagePromptTemplates(t *testing.T) {
	assert.Len(t, ImagePromptTemplates, 5)
	for i, template := range ImagePromptTemplates {
		assert.Contains(t, template, "[Category]", "template %d missing category placeholder", i)
		assert.Contains(t, template, "[SubCategory]", "template %d missing subcategory placeholder", i)
	}
	// Main and product-only styles require the white background.
	assert.Contains(t, ImagePromptTemplates[0], "pure white background")
	assert.Contains(t, ImagePromptTemplates[1], "pure white background")
	// Lifestyle style explicitly does not.
	assert.Contains(t, ImagePromptTemplates[2], "NOT required")
}

func TestCopywriterPrompt(t *testing.T) {
	prompt := CopywriterPrompt("T-Shirt", "Brand: Acme\nMaterial: Cotton", "name")

	assert.Contains(t, prompt, "Product Name: [title here]")
	assert.Contains(t, prompt, "Subcategory: T-Shirt")
	assert.Contains(t, prompt, "Brand: Acme")
	assert.Contains(t, prompt, "Max 200 characters")
	assert.Contains(t, prompt, "product title")

	descPrompt := CopywriterPrompt("Kurta", "", "description")
	assert.Contains(t, descPrompt, "Product Description: [description here]")
	assert.Contains(t, descPrompt, "No additional details provided")
	assert.Contains(t, descPrompt, "Details: Basic clothing item")
	assert.False(t, strings.Contains(descPrompt, "product title generation"))
}

func TestStripCopyLabel(t *testing.T) {
	assert.Equal(t, "Acme Cotton Tee",
		StripCopyLabel("Product Name: Acme Cotton Tee", "Product Name:"))
	assert.Equal(t, "No label here",
		StripCopyLabel("No label here", "Product Name:"))
}
