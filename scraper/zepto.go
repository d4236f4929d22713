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

// Zepto scrapes the quick-commerce search grid.
type Zepto struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
	timeout time.Duration
}

func NewZepto(logger *zap.Logger, client *http.Client, baseURL string, timeout time.Duration) *Zepto {
	return &Zepto{logger: logger, client: client, baseURL: baseURL, timeout: timeout}
}

func (z *Zepto) Name() string { return "zepto" }

func (z *Zepto) Fetch(ctx context.Context, term string) ([]search.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, z.timeout)
	defer cancel()

	searchURL := fmt.Sprintf("%s/search?query=%s", z.baseURL, url.QueryEscape(term))
	doc, err := fetchDocument(ctx, z.client, searchURL)
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(z.baseURL)

	var items []search.RawItem
	doc.Find(`a[data-testid="product-card"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		item := search.RawItem{
			Platform: search.PlatformZepto,
			Title:    firstText(card, `h5[data-testid="product-card-name"]`, "h5"),
			Price:    firstText(card, `h4[data-testid="product-card-price"]`, "h4"),
			Quantity: firstText(card, `span[data-testid="product-card-quantity"] h4`, "p"),
		}
		if src, ok := card.Find("img").First().Attr("src"); ok {
			item.Image = src
		}
		if href, ok := card.Attr("href"); ok && base != nil {
			if ref, err := url.Parse(href); err == nil {
				item.Link = base.ResolveReference(ref).String()
			}
		}

		if item.Title != "" && item.Price != "" && item.Link != "" {
			items = append(items, item)
		}
		return len(items) < groceryMaxItems
	})

	z.logger.Info("extracted listings",
		zap.String("source", z.Name()),
		zap.Int("items", len(items)))
	return items, nil
}
