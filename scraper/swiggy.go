package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"pricescout/search"
)

// Swiggy scrapes Instamart search results.
type Swiggy struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	timeout time.Duration
}

func NewSwiggy(logger *zap.Logger, client *http.Client, baseURL string, timeout time.Duration) *Swiggy {
	return &Swiggy{logger: logger, client: client, baseURL: baseURL, timeout: timeout}
}

func (s *Swiggy) Name() string { return "swiggy" }

func (s *Swiggy) Fetch(ctx context.Context, term string) ([]search.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	searchURL := fmt.Sprintf("%s/instamart/search?custom_back=true&query=%s", s.baseURL, url.QueryEscape(term))
	doc, err := fetchDocument(ctx, s.client, searchURL)
	if err != nil {
		return nil, err
	}

	var items []search.RawItem
	doc.Find(`div[data-testid="default_container_ux4"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		item := search.RawItem{
			Platform: search.PlatformSwiggy,
			Title:    firstText(card, `div[class*="novMV"]`, "div.sc-aXZVg"),
			Price:    firstText(card, `div[data-testid="item-offer-price"]`, `div[data-testid="itemMRPPrice"]`),
			Quantity: firstText(card, `div[data-testid="item-quantity"]`, "div.sc-beqWaB"),
		}
		if src, ok := card.Find("img").First().Attr("src"); ok {
			item.Image = src
		}
		// Instamart cards are not anchors; the search page itself is
		// the closest stable link.
		item.Link = searchURL

		if item.Title != "" && item.Price != "" {
			items = append(items, item)
		}
		return len(items) < groceryMaxItems
	})

	s.logger.Info("extracted listings",
		zap.String("source", s.Name()),
		zap.Int("items", len(items)))
	return items, nil
}
