package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDetailLines(t *testing.T) {
	data := map[string]interface{}{
		"subcategory": "Shirt",
		"type":        "title",
		"Brand":       "Acme",
		"Material":    " Cotton ",
		"Fit":         "N/A",
		"Colour":      "null",
		"Pattern":     "",
		"Weight":      nil,
		"Size":        42,
	}

	lines := buildDetailLines(data)
	assert.Equal(t, []string{"Brand: Acme", "Material: Cotton", "Size: 42"}, lines)
}

func TestBuildDetailLinesEmpty(t *testing.T) {
	data := map[string]interface{}{
		"subcategory": "Shirt",
		"type":        "title",
		"Fit":         "N/A",
	}
	assert.Empty(t, buildDetailLines(data))
}

func TestResolveSubcategory(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]interface{}
		expected string
	}{
		{
			name:     "explicit field",
			data:     map[string]interface{}{"subcategory": "Kurta", "Generic Name": "Other"},
			expected: "Kurta",
		},
		{
			name:     "generic name fallback",
			data:     map[string]interface{}{"Generic Name": "Saree"},
			expected: "Saree",
		},
		{
			name:     "product type fallback",
			data:     map[string]interface{}{"Product Type": "Jeans"},
			expected: "Jeans",
		},
		{
			name:     "category fallback",
			data:     map[string]interface{}{"Category": "Clothing"},
			expected: "Clothing",
		},
		{
			name:     "default",
			data:     map[string]interface{}{"Brand": "Acme"},
			expected: "Clothing Item",
		},
		{
			name:     "generic name wins over category",
			data:     map[string]interface{}{"Generic Name": "Saree", "Category": "Clothing"},
			expected: "Saree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveSubcategory(tt.data))
		})
	}
}
