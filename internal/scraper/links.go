package scraper

import (
	"github.com/PuerkitoBio/goquery"
)

// ExtractGameLinks collects game page links from a parsed listing page.
// Relative hrefs are resolved against baseURL; duplicates are dropped
// while discovery order is kept.
func ExtractGameLinks(doc *goquery.Document, baseURL string) []string {
	var links []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || !IsGameLink(href) {
			return
		}
		full := ResolveURL(baseURL, href)
		if _, exists := seen[full]; exists {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})

	return links
}
