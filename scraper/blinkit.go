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

const groceryMaxItems = 15

// Blinkit scrapes the quick-commerce search grid.
type Blinkit struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	timeout time.Duration
}

func NewBlinkit(logger *zap.Logger, client *http.Client, baseURL string, timeout time.Duration) *Blinkit {
	return &Blinkit{logger: logger, client: client, baseURL: baseURL, timeout: timeout}
}

func (b *Blinkit) Name() string { return "blinkit" }

func (b *Blinkit) Fetch(ctx context.Context, term string) ([]search.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	searchURL := fmt.Sprintf("%s/s/?q=%s", b.baseURL, url.QueryEscape(term))
	doc, err := fetchDocument(ctx, b.client, searchURL)
	if err != nil {
		return nil, err
	}

	var items []search.RawItem
	doc.Find(`div[role="button"][id]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		item := search.RawItem{
			Platform: search.PlatformBlinkit,
			Title:    firstText(card, "div.Product__UpdatedTitle-sc-11dk8zk-9", "div[class*='Title']"),
			Price:    firstText(card, "div[class*='Price'] div", "div[class*='Price']"),
			Quantity: firstText(card, "div[class*='Variant']", "div[class*='Quantity']"),
		}
		if src, ok := card.Find("img").First().Attr("src"); ok {
			item.Image = src
		}
		if id, ok := card.Attr("id"); ok {
			item.Link = fmt.Sprintf("%s/prn/x/prid/%s", b.baseURL, id)
		}

		if item.Title != "" && item.Price != "" && item.Link != "" {
			items = append(items, item)
		}
		return len(items) < groceryMaxItems
	})

	b.logger.Info("extracted listings",
		zap.String("source", b.Name()),
		zap.Int("items", len(items)))
	return items, nil
}
