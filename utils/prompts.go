package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ImagePromptTemplates are the listing image styles, indexed by
// style_index. Placeholders like [Category] are filled from the product
// attributes before the prompt is sent.
var ImagePromptTemplates = []string{
	// 0: main image
	"High-quality professional fashion product photo for an Amazon listing main image. " +
		"The entire product must be shown, without being cropped, with a pure white background (RGB 255,255,255, hex #FFFFFF), " +
		"and the model standing upright. " +
		"Strict note: Keep the uploaded dress exactly as it is. Do not change the color, pattern, or design under any circumstances. " +
		"The product must fill at least 85% but not touch the image borders. " +
		"No props, no accessories, no packaging, no text, badges, graphics, or watermarks. " +
		"No mannequin, From head to toe, only a human model. Sharp focus, true-to-color, professional lighting. " +
		"Image must be at least 1600x1600 pixels. " +
		"Category: [Category], Gender: [Gender], Age Group: [AgeGroup], Style: [Style], Subcategory: [SubCategory]",

	// 1: product only
	"Amazon fashion category compliant product image. Present the single product, fully visible, with a pure white background (RGB 255,255,255, hex #FFFFFF). " +
		"Product must fill 85%-90% of the frame but should not touch the edge. " +
		"Strict note: Keep the uploaded dress exactly as it is. Do not change the color, pattern, or design under any circumstances. " +
		"Do not include human body, model, props, accessories, packaging, text, logos, watermarks, badges, or additional graphics. " +
		"The image must be sharp, clear, and reflect true product color and details. " +
		"At least 1600x1600px resolution. " +
		"Category: [Category], Gender: [Gender], Age Group: [AgeGroup], Style: [Style], Subcategory: [SubCategory]",

	// 2: lifestyle
	"Lifestyle/gallery image for Amazon fashion. Show the model wearing the product in a real-world, vibrant event or indoor setting " +
		"(such as a boutique, studio, wedding, or party scene). " +
		"Strict note: Keep the uploaded dress exactly as it is. Do not change the color, pattern, or design under any circumstances. " +
		"The product must remain the focus, fully visible, without text, watermarks, or unrelated props. " +
		"Professional, realistic lighting only. Pure white background NOT required for this type. " +
		"Category: [Category], Gender: [Gender], Age Group: [AgeGroup], Style: [Style], Subcategory: [SubCategory]",

	// 3: angle view
	"Amazon-compliant model image, showing a left, right, or back view. " +
		"Model must be standing from head to toe, product fully in frame, at least 85% of the image, not cut off. " +
		"Strict note: Keep the uploaded dress exactly as it is. Do not change the color, pattern, or design under any circumstances. " +
		"No text, graphics, badges, watermarks, packaging, or unrelated props. " +
		"Clean, subtle festive or indoor background permitted, but product remains clearly visible. " +
		"Category: [Category], Gender: [Gender], Age Group: [AgeGroup], Style: [Style], Subcategory: [SubCategory]",

	// 4: infographic
	"Infographic gallery image for Amazon fashion product, showing the traditional suit centered on soft pastel (not pure white) background. " +
		"Include minimalist icons and a clean Product Details section. Use minimal, readable text, clear separation, NO overlaying text on product and NO spelling errors. " +
		"The product must remain the focus and fully visible. At least 1600x1600px resolution. " +
		"Strict note: Keep the uploaded dress exactly as it is. Do not change the color, pattern, or design under any circumstances. " +
		"No cropping, all text complete and readable, professional high-end appearance. " +
		"Category: [Category], Gender: [Gender], Age Group: [AgeGroup], Style: [Style], Subcategory: [SubCategory]",
}

var placeholderPattern = regexp.MustCompile(`\[(\w+)\]`)

// ApplyAttributes substitutes [Key] placeholders in a prompt template
// from the attribute map. Unknown placeholders are left untouched.
func ApplyAttributes(prompt string, attributes map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(prompt, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := attributes[key]; ok {
			return value
		}
		return match
	})
}

// CopywriterPrompt builds the few-shot prompt for title or description
// generation. taskType is "name" or "description".
func CopywriterPrompt(subcategory, productDetails, taskType string) string {
	var instruction, artifact string
	if taskType == "name" {
		instruction = "TASK: Write exactly one labeled line: Product Name: [title here]"
		artifact = "product title"
	} else {
		instruction = "TASK: Write exactly one labeled line: Product Description: [description here]"
		artifact = "product description"
	}
	details := productDetails
	if details == "" {
		details = "No additional details provided"
	}
	fallbackDetails := productDetails
	if fallbackDetails == "" {
		fallbackDetails = "Basic clothing item"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `
You are an expert Amazon e-commerce copywriter specializing in Clothing.
Generate a %s based on the provided details.
%s

Available Product Information:
Subcategory: %s
%s

IMPORTANT:
- For title: Max 200 characters, include key features
- For description: Max 2000 characters, focus on material, fit, and benefits
- Use factual information only from the provided details
- If details are limited, create a professional generic description
- No promotional language, be factual and descriptive
- End description with a complete sentence

EXAMPLES:
Even with minimal information, create professional output:

Input:
Subcategory: T-Shirt
Brand: Generic Brand
Material: Cotton

Output for title:
Product Name: Generic Brand Cotton T-Shirt | Comfortable Casual Wear

Output for description:
Product Description: This cotton t-shirt from Generic Brand offers comfortable everyday wear. Made from soft cotton material, it provides breathability and ease of movement. The classic design makes it suitable for various casual occasions.

Subcategory: %s
Details: %s
`, artifact, instruction, subcategory, details, subcategory, fallbackDetails)
	return b.String()
}
