package scraper

import (
	"regexp"
	"strings"
	"time"

	"steamripper/internal/model"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	downloadHereRe = regexp.MustCompile(`(?i)DOWNLOAD\s+HERE`)
	downloadClsRe  = regexp.MustCompile(`(?i)download`)
	systemReqRe    = regexp.MustCompile(`(?i)SYSTEM REQUIREMENTS`)
	gameInfoRe     = regexp.MustCompile(`(?i)GAME INFO`)

	genreRe     = regexp.MustCompile(`Genre:\s*([^\n]+)`)
	developerRe = regexp.MustCompile(`Developer:\s*([^\n]+)`)
	sizeRe      = regexp.MustCompile(`Game Size:\s*([^\n]+)`)
	versionRe   = regexp.MustCompile(`Version:\s*([^\n]+)`)
)

var coverKeywords = []string{"cover", "poster", "banner"}
var screenshotKeywords = []string{"screenshot", "screen", "shot"}

// ExtractOptions controls which optional fields are populated
type ExtractOptions struct {
	IncludeScreenshots bool
	IncludeYouTube     bool
}

// ExtractGame builds a Game from a parsed game page
func ExtractGame(doc *goquery.Document, pageURL string, opts ExtractOptions) *model.Game {
	name := extractName(doc, pageURL)

	game := &model.Game{
		ID:            GameID(pageURL),
		Name:          name,
		Description:   extractDescription(doc),
		DownloadLinks: extractDownloadLinks(doc),
		ScrapedURL:    pageURL,
		ScrapedAt:     time.Now(),
	}

	game.CoverImage, game.Screenshots = extractImages(doc, pageURL, opts.IncludeScreenshots)
	if game.Screenshots == nil {
		game.Screenshots = []string{}
	}

	if opts.IncludeYouTube {
		game.YouTubeGameplay = YouTubeGameplayURL(name)
	}

	game.AdditionalInfo = extractAdditionalInfo(doc)

	return game
}

// extractName derives the game name from h1, the title tag or the URL
func extractName(doc *goquery.Document, pageURL string) string {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = TitleFromURL(pageURL)
	}
	return CleanGameTitle(title)
}

// extractDescription reads the entry content block
func extractDescription(doc *goquery.Document) string {
	block := doc.Find("div.entry-content").First()
	if block.Length() == 0 {
		block = doc.Find("div.content").First()
	}
	if block.Length() == 0 {
		return ""
	}
	return TruncateDescription(normalizeSpace(block.Text()), 500)
}

// extractImages picks the cover image and the screenshot set
func extractImages(doc *goquery.Document, pageURL string, includeScreenshots bool) (string, []string) {
	var cover string
	var firstSrc string
	var screenshots []string

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		if firstSrc == "" {
			firstSrc = src
		}

		lower := strings.ToLower(src)
		if cover == "" && containsAny(lower, coverKeywords) {
			cover = ResolveURL(pageURL, src)
		}
		if includeScreenshots && containsAny(lower, screenshotKeywords) {
			screenshots = append(screenshots, ResolveURL(pageURL, src))
		}
	})

	if cover == "" && firstSrc != "" {
		cover = ResolveURL(pageURL, firstSrc)
	}

	return cover, screenshots
}

// extractDownloadLinks collects download buttons keyed by hosting platform.
// Buttons matched by class overwrite buttons matched by visible text when
// both resolve to the same platform.
func extractDownloadLinks(doc *goquery.Document) map[string]string {
	links := make(map[string]string)

	assign := func(_ int, el *goquery.Selection) {
		href, ok := el.Attr("href")
		if !ok || href == "" {
			return
		}
		links[ClassifyDownloadHost(href)] = href
	}

	doc.Find("a, button").FilterFunction(func(_ int, el *goquery.Selection) bool {
		return downloadHereRe.MatchString(el.Text())
	}).Each(assign)

	doc.Find("a, button").FilterFunction(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		return downloadClsRe.MatchString(class)
	}).Each(assign)

	return links
}

// extractAdditionalInfo parses the SYSTEM REQUIREMENTS and GAME INFO blocks
func extractAdditionalInfo(doc *goquery.Document) model.AdditionalInfo {
	var info model.AdditionalInfo

	if section := findTextHolder(doc, systemReqRe); section != nil {
		info.SystemRequirements = normalizeSpace(section.Text())
	}

	if section := findTextHolder(doc, gameInfoRe); section != nil {
		text := section.Text()
		info.Genre = firstSubmatch(genreRe, text)
		info.Developer = firstSubmatch(developerRe, text)
		info.Size = firstSubmatch(sizeRe, text)
		info.Version = firstSubmatch(versionRe, text)
	}

	return info
}

// findTextHolder returns the first element that directly contains a text
// node matching re
func findTextHolder(doc *goquery.Document, re *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if re.MatchString(ownText(s)) {
			found = s
			return false
		}
		return true
	})
	return found
}

// ownText concatenates the direct text-node children of a selection
func ownText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var sb strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func firstSubmatch(re *regexp.Regexp, text string) string {
	if match := re.FindStringSubmatch(text); len(match) > 1 {
		return strings.TrimSpace(match[1])
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// normalizeSpace collapses runs of whitespace into single spaces
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
