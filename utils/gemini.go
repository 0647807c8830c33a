package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/listcraft/listing-studio/config"
	"google.golang.org/api/option"
)

func newGeminiClient(ctx context.Context) (*genai.Client, error) {
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	return client, nil
}

// GenerateListingCopy runs the copywriter prompt against the text model
// and returns the trimmed output. Safety blocks and empty responses are
// reported as errors, not as output text.
func GenerateListingCopy(ctx context.Context, prompt string) (string, error) {
	client, err := newGeminiClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel(config.GeminiTextModel)
	model.SetTemperature(0.8)
	model.SetMaxOutputTokens(2000)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Generation Failed: API Error. %v", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Generation Failed: Model returned no candidates/output.")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		blockedCategory := ""
		if len(candidate.SafetyRatings) > 0 {
			blockedCategory = candidate.SafetyRatings[0].Category.String()
		}
		return "", fmt.Errorf("Generation Failed: Output Blocked by Safety Filters (Finish Reason: SAFETY). Blocked Category: %s", blockedCategory)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("Generation Failed: Model stopped with non-success reason.")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	output := strings.TrimSpace(b.String())
	if output == "" {
		return "", fmt.Errorf("Generation Failed: Model stopped with non-success reason.")
	}
	return output, nil
}

// StripCopyLabel removes the "Product Name:" / "Product Description:"
// label the model is instructed to emit.
func StripCopyLabel(output, label string) string {
	if strings.HasPrefix(output, label) {
		return strings.TrimSpace(output[len(label):])
	}
	return output
}

// GenerateStyledImage sends a source product image plus a style prompt
// to the image model and returns the generated image bytes.
func GenerateStyledImage(ctx context.Context, imageData []byte, imageFormat, stylePrompt string) ([]byte, error) {
	client, err := newGeminiClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(config.GeminiImageModel)
	model.SetTemperature(0.6)
	model.SetTopP(0.9)
	model.SetTopK(40)

	fullPrompt := fmt.Sprintf(
		"Transform this photo photorealistically for premium e-commerce quality. Instructions: %s Avoid distortion, blur, watermarks, or cropping.",
		stylePrompt,
	)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData(imageFormat, imageData),
		genai.Text(fullPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && strings.HasPrefix(blob.MIMEType, "image/") {
			return blob.Data, nil
		}
	}

	return nil, fmt.Errorf("no image returned from model")
}
