// Package generic is the best-effort strategy for custom and unknown
// boards: walk every anchor that looks like a posting link and take
// whatever hints the surrounding markup offers.
package generic

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/normalize"
)

var jobPathMarkers = []string{"/jobs/", "/careers/", "/positions/", "/openings/", "/job/", "/vacancies/"}

type Strategy struct {
	Tag domain.Platform // PlatformCustom or PlatformUnknown
}

func (s Strategy) Platform() domain.Platform {
	if s.Tag == "" {
		return domain.PlatformUnknown
	}
	return s.Tag
}

func (Strategy) ExtractStubs(doc *goquery.Document, baseURL string) []domain.JobStub {
	var stubs []domain.JobStub

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := absoluteURL(baseURL, strings.TrimSpace(href))
		if !looksLikeJobLink(abs) || abs == baseURL {
			return
		}

		title := normalize.CleanText(a.Text())
		if len(title) < 4 || looksLikeJunkTitle(title) {
			return
		}

		container := a.Closest("li, tr, article, section, div")
		text := normalize.CleanText(container.Text())
		if text == "" {
			text = title
		}

		stubs = append(stubs, domain.JobStub{
			Title:        title,
			URL:          abs,
			LocationHint: normalize.CleanText(container.Find("[class*='location']").First().Text()),
			Text:         text,
		})
	})
	return stubs
}

// No reliable pagination convention exists for arbitrary boards.
func (Strategy) NextPage(*goquery.Document, string, int) string { return "" }

func looksLikeJobLink(u string) bool {
	low := strings.ToLower(u)
	for _, m := range jobPathMarkers {
		if strings.Contains(low, m) {
			return true
		}
	}
	return false
}

func looksLikeJunkTitle(t string) bool {
	l := strings.ToLower(t)
	switch {
	case strings.Contains(l, "view all"), strings.Contains(l, "see all"):
		return true
	case l == "apply" || l == "apply now" || l == "learn more":
		return true
	case strings.Contains(l, "cookie") || strings.Contains(l, "privacy"):
		return true
	}
	return false
}

func absoluteURL(baseURL, href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
