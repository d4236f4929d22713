package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"pricescout/search"
)

const flipkartMaxItems = 15

// Flipkart scrapes result pages with a colly collector; the listing
// grid is server-rendered.
type Flipkart struct {
	logger    *zap.Logger
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

func NewFlipkart(logger *zap.Logger, baseURL string, timeout time.Duration, transport http.RoundTripper) *Flipkart {
	return &Flipkart{
		logger:    logger,
		baseURL:   baseURL,
		timeout:   timeout,
		transport: transport,
	}
}

func (f *Flipkart) Name() string { return "flipkart" }

func (f *Flipkart) Fetch(ctx context.Context, term string) ([]search.RawItem, error) {
	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
		colly.MaxDepth(1),
		colly.Async(true),
	)
	c.SetRequestTimeout(f.timeout)
	if f.transport != nil {
		c.WithTransport(f.transport)
	}

	var (
		mu       sync.Mutex
		items    []search.RawItem
		fetchErr error
	)

	c.OnHTML("div[data-id]", func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		if len(items) >= flipkartMaxItems {
			return
		}

		item := parseFlipkartCard(e.DOM)
		if item.Title == "" || item.Price == "" || item.Link == "" {
			return
		}
		item.Link = e.Request.AbsoluteURL(item.Link)
		items = append(items, item)
	})

	c.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		fetchErr = err
		mu.Unlock()
		f.logger.Warn("request failed",
			zap.String("source", f.Name()),
			zap.String("url", r.Request.URL.String()),
			zap.Error(err))
	})

	searchURL := fmt.Sprintf("%s/search?q=%s", f.baseURL, url.QueryEscape(term))
	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", searchURL, err)
	}
	c.Wait()

	if len(items) == 0 && fetchErr != nil {
		return nil, fetchErr
	}
	f.logger.Info("extracted listings",
		zap.String("source", f.Name()),
		zap.Int("items", len(items)))
	return items, nil
}

func parseFlipkartCard(card *goquery.Selection) search.RawItem {
	item := search.RawItem{
		Platform: search.PlatformFlipkart,
		Title: firstText(card,
			"div.KzDlHZ",
			"div._4rR01T",
			"a.s1Q9rs",
			"a.wjcEIp"),
		Price: firstText(card,
			"div.Nx9bqj",
			"div._30jeq3"),
		Rating: firstText(card,
			"div.XQDdHH",
			"div._3LWZlK"),
	}

	if src, ok := card.Find("img").First().Attr("src"); ok {
		item.Image = src
	}
	for _, sel := range []string{"a.CGtC98", "a._1fQZEK", "a.s1Q9rs", "a"} {
		if href, ok := card.Find(sel).First().Attr("href"); ok && !strings.Contains(href, "javascript:") {
			item.Link = href
			break
		}
	}
	return item
}
