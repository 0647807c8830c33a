package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/listcraft/listing-studio/api"
	"github.com/listcraft/listing-studio/config"
	"github.com/listcraft/listing-studio/utils"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return corsMiddleware(api.AuthMiddleware(h).ServeHTTP)
	}

	http.HandleFunc("/scrape", protected(api.ScrapeHandler))
	http.HandleFunc("/generate-image", protected(api.GenerateImageHandler))
	http.HandleFunc("/gallery", protected(api.GalleryHandler))

	// Copy generation stays open; the frontend calls it before signup.
	http.HandleFunc("/api/generate-title-description", corsMiddleware(api.GenerateTitleDescriptionHandler))

	// Auth Routes
	http.HandleFunc("/auth/signup", corsMiddleware(api.SignupHandler))
	http.HandleFunc("/auth/verify-otp", corsMiddleware(api.VerifyOTPHandler))
	http.HandleFunc("/auth/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/auth/forgot-password", corsMiddleware(api.ForgotPasswordHandler))
	http.HandleFunc("/auth/reset-password", corsMiddleware(api.ResetPasswordHandler))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	fmt.Printf("Usage: curl \"http://localhost:%s/scrape?url=<product_url>\"\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
