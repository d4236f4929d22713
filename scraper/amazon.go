package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"pricescout/search"
)

const amazonMaxItems = 15

// Amazon renders search pages in a headless browser; Amazon serves
// little useful markup to plain HTTP clients.
type Amazon struct {
	logger  *zap.Logger
	baseURL string
	timeout time.Duration
	options []chromedp.ExecAllocatorOption
}

func NewAmazon(logger *zap.Logger, baseURL string, timeout time.Duration) *Amazon {
	return &Amazon{
		logger:  logger,
		baseURL: baseURL,
		timeout: timeout,
		options: append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.Headless,

			// Stealth options
			chromedp.Flag("accept-language", "en-US,en;q=0.9"),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("exclude-switches", "enable-automation"),
			chromedp.Flag("disable-extensions", ""),
		),
	}
}

func (a *Amazon) Name() string { return "amazon" }

func (a *Amazon) Fetch(ctx context.Context, term string) ([]search.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, a.options...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	searchURL := fmt.Sprintf("%s/s?k=%s&ref=nb_sb_noss", a.baseURL, url.QueryEscape(term))
	a.logger.Info("navigating to search",
		zap.String("source", a.Name()),
		zap.String("url", searchURL))

	var html string
	err := chromedp.Run(taskCtx,
		emulation.SetUserAgentOverride(browserUserAgent),
		chromedp.Navigate(searchURL),
		chromedp.Evaluate(`
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined,
			});
		`, nil),
		chromedp.WaitReady("body"),
		chromedp.Sleep(time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	items := parseAmazon(doc, searchURL)
	a.logger.Info("extracted listings",
		zap.String("source", a.Name()),
		zap.Int("items", len(items)))
	return items, nil
}

// parseAmazon extracts listings from a rendered result page. The
// markup is A/B-tested, so each field walks a selector fallback list.
func parseAmazon(doc *goquery.Document, pageURL string) []search.RawItem {
	base, _ := url.Parse(pageURL)

	containers := []string{
		`div[data-component-type="s-search-result"]`,
		`.s-result-item`,
		`[data-asin]:not([data-asin=""])`,
	}

	var results *goquery.Selection
	for _, sel := range containers {
		if found := doc.Find(sel); found.Length() > 0 {
			results = found
			break
		}
	}
	if results == nil {
		return nil
	}

	var items []search.RawItem
	results.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		item := search.RawItem{
			Platform: search.PlatformAmazon,
			Title: firstText(el,
				"h2.a-size-mini span.a-text-normal",
				"span.a-size-medium.a-color-base.a-text-normal",
				"h2.a-size-medium span",
				"h2 a span"),
			Price:  firstText(el, ".a-price-whole", ".a-price .a-offscreen"),
			Rating: strings.TrimSpace(el.Find("span.a-icon-alt").First().Text()),
		}

		if src, ok := el.Find("img.s-image").First().Attr("src"); ok {
			item.Image = src
		}
		if href, ok := el.Find("a.a-link-normal.s-no-outline").First().Attr("href"); ok {
			if ref, err := url.Parse(href); err == nil && base != nil {
				item.Link = base.ResolveReference(ref).String()
			}
		}

		if item.Title != "" && item.Price != "" && item.Link != "" {
			items = append(items, item)
		}
		return len(items) < amazonMaxItems
	})
	return items
}
