package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"pricescout/search"
)

const flipkartCard = `
<div data-id="MOBGTAGPTB3VS24W">
  <a class="CGtC98" href="/apple-iphone-15-blue-128-gb/p/itm6ac6485515ae4">
    <img src="https://rukminim2.flixcart.com/image/iphone15.jpg"/>
    <div class="KzDlHZ">Apple iPhone 15 (Blue, 128 GB)</div>
    <div class="XQDdHH">4.6</div>
    <div class="Nx9bqj">₹69,999</div>
  </a>
</div>`

func TestParseFlipkartCard(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(flipkartCard))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	item := parseFlipkartCard(doc.Find("div[data-id]").First())
	if item.Title != "Apple iPhone 15 (Blue, 128 GB)" {
		t.Errorf("unexpected title: %q", item.Title)
	}
	if item.Price != "₹69,999" {
		t.Errorf("unexpected price: %q", item.Price)
	}
	if item.Rating != "4.6" {
		t.Errorf("unexpected rating: %q", item.Rating)
	}
	if item.Link != "/apple-iphone-15-blue-128-gb/p/itm6ac6485515ae4" {
		t.Errorf("unexpected link: %q", item.Link)
	}
	if item.Image != "https://rukminim2.flixcart.com/image/iphone15.jpg" {
		t.Errorf("unexpected image: %q", item.Image)
	}
	if item.Platform != search.PlatformFlipkart {
		t.Errorf("unexpected platform: %q", item.Platform)
	}
}

func TestParseFlipkartCard_LegacyMarkup(t *testing.T) {
	legacy := `
<div data-id="MOB123">
  <a class="_1fQZEK" href="/p/legacy">
    <img class="_396cs4" src="https://img/legacy.jpg"/>
    <div class="_4rR01T">Apple iPhone 14 (Midnight, 128 GB)</div>
    <div class="_3LWZlK">4.5</div>
    <div class="_30jeq3">₹54,999</div>
  </a>
</div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(legacy))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	item := parseFlipkartCard(doc.Find("div[data-id]").First())
	if item.Title != "Apple iPhone 14 (Midnight, 128 GB)" {
		t.Errorf("legacy title selector failed: %q", item.Title)
	}
	if item.Price != "₹54,999" {
		t.Errorf("legacy price selector failed: %q", item.Price)
	}
	if item.Link != "/p/legacy" {
		t.Errorf("legacy link selector failed: %q", item.Link)
	}
}
