package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI         string
	DatabaseName     string
	Port             string
	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string
	AWSRegion        string
	AWSBucketName    string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	DatabaseName = os.Getenv("DATABASE_NAME")
	if DatabaseName == "" {
		DatabaseName = "listingstudio"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	GeminiTextModel = os.Getenv("GEMINI_TEXT_MODEL")
	if GeminiTextModel == "" {
		GeminiTextModel = "gemini-2.5-flash"
	}

	GeminiImageModel = os.Getenv("GEMINI_IMAGE_MODEL")
	if GeminiImageModel == "" {
		GeminiImageModel = "gemini-2.5-flash-image-preview"
	}

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "ap-south-1"
	}

	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
}
