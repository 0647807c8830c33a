package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/listcraft/listing-studio/config"
	"github.com/listcraft/listing-studio/models"
	"github.com/listcraft/listing-studio/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GalleryResponse represents the response structure for the gallery API
type GalleryResponse struct {
	Images      []models.Generation `json:"images"`
	Total       int64               `json:"total"`
	CurrentPage int                 `json:"current_page"`
	TotalPages  int                 `json:"total_pages"`
}

// GalleryHandler lists the user's generated listing images, newest
// first, with page/limit pagination.
func GalleryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page := 1
	limit := 10
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	collection := utils.GetCollection(config.DatabaseName, "generations")
	filter := bson.M{"user_id": userID, "status": "completed"}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		http.Error(w, "Failed to fetch data", http.StatusInternalServerError)
		return
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	findOptions.SetSkip(int64((page - 1) * limit))
	findOptions.SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		http.Error(w, "Failed to fetch data", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var generations []models.Generation
	if err = cursor.All(ctx, &generations); err != nil {
		http.Error(w, "Failed to decode data", http.StatusInternalServerError)
		return
	}

	// Swap stored keys for presigned URLs in the response.
	for i := range generations {
		if generations[i].GeneratedImageKey != "" {
			if url, err := utils.GetPresignedURL(r.Context(), generations[i].GeneratedImageKey); err == nil {
				generations[i].GeneratedImageKey = url
			}
		}
		if generations[i].SourceImageKey != "" {
			if url, err := utils.GetPresignedURL(r.Context(), generations[i].SourceImageKey); err == nil {
				generations[i].SourceImageKey = url
			}
		}
	}

	// Ensure empty slice is returned as [] instead of null
	if generations == nil {
		generations = []models.Generation{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	utils.RespondJSON(w, http.StatusOK, GalleryResponse{
		Images:      generations,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}
