package scraper

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

var (
	freeDownloadSuffixRe = regexp.MustCompile(`(?i)\s*free download.*$`)
	trailingParensRe     = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	gameLinkRe           = regexp.MustCompile(`-free-download`)
)

// GameID derives the stable game identifier from the page URL
func GameID(pageURL string) string {
	sum := md5.Sum([]byte(pageURL))
	return hex.EncodeToString(sum[:])[:16]
}

// CleanGameTitle normalizes a raw page title into the game name.
// SteamRip titles carry a "Free Download (v1.2.3)" style suffix.
func CleanGameTitle(title string) string {
	name := strings.TrimSpace(title)
	name = freeDownloadSuffixRe.ReplaceAllString(name, "")
	name = trailingParensRe.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// TitleFromURL falls back to the last meaningful path segment of the page URL
func TitleFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// IsGameLink reports whether an href points at a game page
func IsGameLink(href string) bool {
	return gameLinkRe.MatchString(href)
}

// ResolveURL resolves a possibly relative href against a base URL
func ResolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// ClassifyDownloadHost maps a download URL to its hosting platform
func ClassifyDownloadHost(href string) string {
	lower := strings.ToLower(href)
	switch {
	case strings.Contains(lower, "megadb"):
		return "megadb"
	case strings.Contains(lower, "buzzheavier"), strings.Contains(lower, "buzzheave"):
		return "buzzheavier"
	case strings.Contains(lower, "gofile"):
		return "gofile"
	case strings.Contains(lower, "mega.nz"):
		return "mega"
	case strings.Contains(lower, "mediafire"):
		return "mediafire"
	case strings.Contains(lower, "rapidgator"):
		return "rapidgator"
	default:
		return "unknown"
	}
}

// YouTubeGameplayURL builds the gameplay search URL for a game name
func YouTubeGameplayURL(name string) string {
	query := strings.ReplaceAll(name, " ", "+")
	return "https://www.youtube.com/results?search_query=" + query + "+gameplay"
}

// TruncateDescription caps a description at max runes, appending an ellipsis
func TruncateDescription(description string, max int) string {
	runes := []rune(description)
	if len(runes) <= max {
		return description
	}
	return string(runes[:max]) + "..."
}
