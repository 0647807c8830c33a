package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pricing holds the extracted price fields. Unmatched fields keep the
// "N/A" sentinel; currency is a fixed default.
type Pricing struct {
	CurrentPrice string `bson:"current_price" json:"currentPrice"`
	ListPrice    string `bson:"list_price" json:"listPrice"`
	Savings      string `bson:"savings" json:"savings"`
	Currency     string `bson:"currency" json:"currency"`
}

// Product is the structured record produced by one scrape invocation.
// It is built fresh per scrape, fully populated before it is returned,
// and never mutated afterwards.
type Product struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID string             `bson:"user_id,omitempty" json:"-"`

	Success        bool   `bson:"success" json:"success"`
	Error          string `bson:"error,omitempty" json:"error,omitempty"`
	CaptchaWarning bool   `bson:"captcha_warning,omitempty" json:"captcha_warning,omitempty"`

	ASIN        string `bson:"asin" json:"asin"`
	Title       string `bson:"title" json:"title"`
	Brand       string `bson:"brand,omitempty" json:"brand,omitempty"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
	Description string `bson:"description" json:"description"`

	Bullets              []string `bson:"bullets" json:"bullets"`
	ProductDetails       Details  `bson:"product_details" json:"productDetails"`
	ManufacturingDetails Details  `bson:"manufacturing_details" json:"manufacturingDetails"`
	AdditionalInfo       Details  `bson:"additional_info" json:"additionalInfo"`
	Pricing              Pricing  `bson:"pricing" json:"pricing"`
	Images               []string `bson:"images" json:"images"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"-"`
}

// NewPricing returns a Pricing with all fields set to sentinels.
func NewPricing() Pricing {
	return Pricing{
		CurrentPrice: "N/A",
		ListPrice:    "N/A",
		Savings:      "N/A",
		Currency:     "USD",
	}
}

// FailedScrape builds the well-formed failure record returned when the
// fetch stage fails. Callers always receive a record with an explicit
// success flag, never a transport-level error.
func FailedScrape(message string) *Product {
	return &Product{
		Success:     false,
		Error:       message,
		ASIN:        "unknown",
		Title:       "N/A",
		Brand:       "N/A",
		Description: "N/A",
		Bullets:     []string{"N/A"},
		Pricing:     NewPricing(),
		Images:      []string{},
	}
}
