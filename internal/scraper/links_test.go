package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGameLinks(t *testing.T) {
	doc := parseHTML(t, `<html><body>
		<a href="/elden-ring-free-download/">Elden Ring</a>
		<a href="/hades-free-download/">Hades</a>
		<a href="/elden-ring-free-download/">Elden Ring again</a>
		<a href="https://steamrip.com/celeste-free-download/">Celeste</a>
		<a href="/about/">About</a>
		<a href="/games-list-page/">All games</a>
	</body></html>`)

	links := ExtractGameLinks(doc, "https://steamrip.com/games-list-page/")

	assert.Equal(t, []string{
		"https://steamrip.com/elden-ring-free-download/",
		"https://steamrip.com/hades-free-download/",
		"https://steamrip.com/celeste-free-download/",
	}, links)
}

func TestExtractGameLinks_Empty(t *testing.T) {
	doc := parseHTML(t, `<html><body><a href="/about/">About</a></body></html>`)

	assert.Empty(t, ExtractGameLinks(doc, "https://steamrip.com/games-list-page/"))
}
