package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/listcraft/listing-studio/config"
	"github.com/listcraft/listing-studio/models"
	"github.com/listcraft/listing-studio/scrapers"
	"github.com/listcraft/listing-studio/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScrapeHandler handles the scraping request. Fetch failures are
// returned as a well-formed failure record with HTTP 200, so clients
// always receive the same shape.
func ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Scrape API]")

	// Support both Query Params and JSON Body
	productURL := r.URL.Query().Get("url")
	if productURL == "" {
		var req struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			productURL = req.URL
		}
	}

	if productURL == "" {
		utils.AddToLogMessage(&logMessageBuilder, "URL parameter missing")
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'url' query parameter or JSON body", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scraping URL: %s", productURL))

	scraper, resolvedURL, err := scrapers.GetScraper(productURL)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Error finding scraper: %v", err), http.StatusBadRequest)
		return
	}

	product, err := scraper.ScrapeProduct(r.Context(), resolvedURL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scraping failed: %v", err))
		failed := models.FailedScrape(err.Error())
		failed.URL = resolvedURL
		utils.RespondJSON(w, http.StatusOK, failed)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Scraping successful")

	// Persist images to S3 when a bucket is configured; keys go to the
	// database, presigned URLs go to the response.
	if config.AWSBucketName != "" && len(product.Images) > 0 {
		urlToKey, err := utils.UploadImagesToS3(r.Context(), product.Images, "product_images")
		if err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error uploading images: %v", err))
		}
		var keys []string
		for _, img := range product.Images {
			if key, ok := urlToKey[img]; ok {
				keys = append(keys, key)
			} else {
				keys = append(keys, img) // Fallback
			}
		}
		product.Images = keys
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, "Warning: UserID not found in context")
	}

	product.ID = primitive.NewObjectID()
	product.UserID = userID
	product.CreatedAt = time.Now()

	collection := utils.GetCollection(config.DatabaseName, "products")
	if _, err := collection.InsertOne(r.Context(), product); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save product to MongoDB: %v", err))
	} else {
		utils.AddToLogMessage(&logMessageBuilder, "Product saved to MongoDB")
	}

	product.Images = utils.PresignImageURLs(r.Context(), product.Images)

	utils.RespondJSON(w, http.StatusOK, product)
}
