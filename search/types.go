package search

import "context"

// Platform identifies a supported retailer.
type Platform string

const (
	PlatformAmazon   Platform = "Amazon"
	PlatformFlipkart Platform = "Flipkart"
	PlatformSwiggy   Platform = "Swiggy"
	PlatformZepto    Platform = "Zepto"
	PlatformBlinkit  Platform = "Blinkit"
)

// RawItem is a single listing as reported by a source adapter.
// The price is the display string exactly as scraped; normalization
// happens in the aggregation pipeline.
type RawItem struct {
	Title    string   `json:"title"`
	Price    string   `json:"price"`
	Image    string   `json:"image"`
	Link     string   `json:"link"`
	Quantity string   `json:"quantity,omitempty"`
	Rating   string   `json:"rating,omitempty"`
	Platform Platform `json:"platform"`
}

// ScoredItem is a RawItem that survived scoring and price
// normalization. Only items with Score > 0 and a finite
// NormalizedPrice exist as ScoredItems.
type ScoredItem struct {
	RawItem
	Score           int     `json:"relevanceScore"`
	NormalizedPrice float64 `json:"normalizedPrice"`
}

// Source is the capability a retailer adapter exposes. Fetch is
// expected to fail closed within its own self-imposed timeout: it
// returns whatever it managed to collect, or an error, but never
// hangs indefinitely.
type Source interface {
	Name() string
	Fetch(ctx context.Context, term string) ([]RawItem, error)
}
