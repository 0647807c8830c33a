package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/listcraft/listing-studio/utils"
)

// subcategoryFallbacks are tried in order when the request carries no
// explicit subcategory.
var subcategoryFallbacks = []string{"Generic Name", "Product Type", "Category"}

const defaultSubcategory = "Clothing Item"

// buildDetailLines turns the request attributes into "Key: Value" lines
// for the prompt, dropping control keys and empty or placeholder values.
// Lines are sorted by key so the prompt is deterministic.
func buildDetailLines(data map[string]interface{}) []string {
	var lines []string
	for k, v := range data {
		if k == "subcategory" || k == "type" || v == nil {
			continue
		}
		cleaned := strings.TrimSpace(fmt.Sprintf("%v", v))
		if cleaned == "" || cleaned == "N/A" || cleaned == "null" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", k, cleaned))
	}
	sort.Strings(lines)
	return lines
}

// resolveSubcategory picks the subcategory for the prompt: the explicit
// field first, then the attribute fallbacks, then a generic default.
func resolveSubcategory(data map[string]interface{}) string {
	if sub, ok := data["subcategory"].(string); ok && sub != "" {
		return sub
	}
	for _, key := range subcategoryFallbacks {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return defaultSubcategory
}

// GenerateTitleDescriptionHandler generates listing copy from scraped
// product attributes. The "type" field selects title or description.
func GenerateTitleDescriptionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Generate Copy API]")

	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil || len(data) == 0 {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "error": "No data provided",
		})
		return
	}

	taskType, _ := data["type"].(string)
	if taskType == "" {
		taskType = "title"
	}

	subcategory := resolveSubcategory(data)
	detailLines := buildDetailLines(data)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Subcategory: %q, detail lines: %d", subcategory, len(detailLines)))

	if len(detailLines) == 0 {
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Please provide at least some product details like Brand, Material, Fit, etc.",
		})
		return
	}
	productDetails := strings.Join(detailLines, "\n")

	switch taskType {
	case "title":
		prompt := utils.CopywriterPrompt(subcategory, productDetails, "name")
		output, err := utils.GenerateListingCopy(r.Context(), prompt)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, err.Error())
			utils.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false, "error": err.Error(),
			})
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"generated_title": utils.StripCopyLabel(output, "Product Name:"),
		})

	case "description":
		prompt := utils.CopywriterPrompt(subcategory, productDetails, "description")
		output, err := utils.GenerateListingCopy(r.Context(), prompt)
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, err.Error())
			utils.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"success": false, "error": err.Error(),
			})
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":               true,
			"generated_description": utils.StripCopyLabel(output, "Product Description:"),
		})

	default:
		utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false, "error": "Unknown type specified",
		})
	}
}
