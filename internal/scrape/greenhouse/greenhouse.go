// Package greenhouse extracts job stubs from Greenhouse-powered
// boards (boards.greenhouse.io, job-boards.greenhouse.io and embeds).
package greenhouse

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/normalize"
)

type Strategy struct{}

func (Strategy) Platform() domain.Platform { return domain.PlatformGreenhouse }

// ExtractStubs prefers the board's .opening rows; boards that wrap
// listings differently fall back to an anchor walk over /jobs/ links.
func (Strategy) ExtractStubs(doc *goquery.Document, baseURL string) []domain.JobStub {
	stubs := fromOpenings(doc, baseURL)
	if len(stubs) > 0 {
		return stubs
	}
	return fromAnchors(doc, baseURL)
}

func fromOpenings(doc *goquery.Document, baseURL string) []domain.JobStub {
	var stubs []domain.JobStub

	doc.Find(".opening, div[data-mapped='true']").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("a[href]").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		title := normalize.CleanText(a.Text())
		if title == "" || looksLikeJunkTitle(title) {
			return
		}

		// department headers sit on the enclosing section on most boards
		dept := normalize.CleanText(s.Closest("section").Find("h2, h3").First().Text())

		stubs = append(stubs, domain.JobStub{
			Title:          title,
			URL:            absoluteURL(baseURL, href),
			LocationHint:   normalize.CleanText(s.Find(".location").First().Text()),
			DepartmentHint: dept,
			Text:           normalize.CleanText(s.Text()),
		})
	})
	return stubs
}

func fromAnchors(doc *goquery.Document, baseURL string) []domain.JobStub {
	var stubs []domain.JobStub

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs := absoluteURL(baseURL, strings.TrimSpace(href))
		if !strings.Contains(strings.ToLower(abs), "/jobs/") {
			return
		}
		title := normalize.CleanText(a.Text())
		if title == "" || looksLikeJunkTitle(title) {
			return
		}

		parent := a.Parent()
		stubs = append(stubs, domain.JobStub{
			Title:        title,
			URL:          abs,
			LocationHint: normalize.CleanText(parent.Find(".location").First().Text()),
			Text:         normalize.CleanText(parent.Text()),
		})
	})
	return stubs
}

// NextPage follows numeric ?page= pagination when the board exposes
// it. Returns "" when there is no page after the current one.
func (Strategy) NextPage(doc *goquery.Document, baseURL string, page int) string {
	found := false
	doc.Find("a[href*='page=']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		u, err := url.Parse(href)
		if err != nil {
			return true
		}
		n, err := strconv.Atoi(u.Query().Get("page"))
		if err == nil && n > page {
			found = true
			return false
		}
		return true
	})
	if !found {
		return ""
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page+1))
	u.RawQuery = q.Encode()
	return u.String()
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

func looksLikeJunkTitle(t string) bool {
	l := strings.ToLower(t)
	return strings.Contains(l, "view all") || l == "apply" || strings.Contains(l, "cookie") || strings.Contains(l, "privacy")
}
