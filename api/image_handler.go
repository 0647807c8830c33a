package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/listcraft/listing-studio/config"
	"github.com/listcraft/listing-studio/models"
	"github.com/listcraft/listing-studio/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxUploadSize = 20 << 20 // 20 MB

// GenerateImageHandler produces a styled listing image from an uploaded
// product photo. The multipart form carries the image file, a
// style_index selecting one of the prompt templates and an attributes
// JSON object for placeholder substitution.
func GenerateImageHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Generate Image API]")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "No image uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to read uploaded image", http.StatusBadRequest)
		return
	}

	imageFormat := "jpeg"
	if ct := header.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		imageFormat = strings.TrimPrefix(ct, "image/")
	}

	styleIndex, err := strconv.Atoi(r.FormValue("style_index"))
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid style_index", http.StatusBadRequest)
		return
	}
	if styleIndex < 0 || styleIndex >= len(utils.ImagePromptTemplates) {
		utils.RespondError(w, &logMessageBuilder, "style_index out of range", http.StatusBadRequest)
		return
	}

	attributes := map[string]string{}
	if attrStr := r.FormValue("attributes"); attrStr != "" {
		if err := json.Unmarshal([]byte(attrStr), &attributes); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid attributes JSON", http.StatusBadRequest)
			return
		}
	}

	prompt := utils.ApplyAttributes(utils.ImagePromptTemplates[styleIndex], attributes)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generating image, style %d", styleIndex))

	generated, err := utils.GenerateStyledImage(r.Context(), imageData, imageFormat, prompt)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Generation failed: %v", err), http.StatusInternalServerError)
		return
	}

	objectKey := fmt.Sprintf("generated/listing_%d.jpg", time.Now().UnixNano())
	if _, err := utils.UploadFileToS3(r.Context(), bytes.NewReader(generated), objectKey, "image/jpeg"); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to store generated image: %v", err), http.StatusInternalServerError)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, "Warning: UserID not found in context")
	}

	generation := models.Generation{
		ID:                primitive.NewObjectID(),
		UserID:            userID,
		StyleIndex:        styleIndex,
		Prompt:            prompt,
		GeneratedImageKey: objectKey,
		Status:            "completed",
		CreatedAt:         time.Now(),
	}
	collection := utils.GetCollection(config.DatabaseName, "generations")
	if _, err := collection.InsertOne(r.Context(), generation); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save generation record: %v", err))
	}

	imageURL := objectKey
	if url, err := utils.GetPresignedURL(r.Context(), objectKey); err == nil {
		imageURL = url
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"image_url":   imageURL,
		"object_key":  objectKey,
		"style_index": styleIndex,
		"file_size":   len(generated),
	})
}
