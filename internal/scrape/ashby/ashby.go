// Package ashby extracts job stubs from Ashby boards
// (jobs.ashbyhq.com/<org>). Ashby ships the whole board as an
// embedded window.__appData JSON blob; the DOM walk is only a
// fallback for embeds that render server-side.
package ashby

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/normalize"
)

type Strategy struct{}

func (Strategy) Platform() domain.Platform { return domain.PlatformAshby }

// appData mirrors only the fields we need; everything else in the
// blob is ignored on purpose.
type appData struct {
	JobBoard struct {
		JobPostings []posting `json:"jobPostings"`
	} `json:"jobBoard"`
}

type posting struct {
	ID                      string `json:"id"`
	Title                   string `json:"title"`
	LocationName            string `json:"locationName"`
	TeamName                string `json:"teamName"`
	DepartmentName          string `json:"departmentName"`
	EmploymentType          string `json:"employmentType"`
	CompensationTierSummary string `json:"compensationTierSummary"`
}

func (Strategy) ExtractStubs(doc *goquery.Document, baseURL string) []domain.JobStub {
	if stubs := fromAppData(doc, baseURL); len(stubs) > 0 {
		return stubs
	}
	return fromDOM(doc, baseURL)
}

// Ashby boards do not paginate; the appData blob carries everything.
func (Strategy) NextPage(*goquery.Document, string, int) string { return "" }

func fromAppData(doc *goquery.Document, baseURL string) []domain.JobStub {
	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, "window.__appData") {
			raw = text
			return false
		}
		return true
	})
	if raw == "" {
		return nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil
	}

	var data appData
	if err := json.Unmarshal([]byte(raw[start:end+1]), &data); err != nil {
		return nil
	}

	stubs := make([]domain.JobStub, 0, len(data.JobBoard.JobPostings))
	for _, p := range data.JobBoard.JobPostings {
		title := normalize.CleanText(p.Title)
		if title == "" || p.ID == "" {
			continue
		}
		dept := p.DepartmentName
		if dept == "" {
			dept = p.TeamName
		}
		stubs = append(stubs, domain.JobStub{
			Title:          title,
			URL:            strings.TrimRight(baseURL, "/") + "/" + p.ID,
			LocationHint:   normalize.CleanText(p.LocationName),
			DepartmentHint: normalize.CleanText(dept),
			Text:           normalize.CleanText(strings.Join([]string{title, p.LocationName, p.EmploymentType, p.CompensationTierSummary}, " ")),
		})
	}
	return stubs
}

func fromDOM(doc *goquery.Document, baseURL string) []domain.JobStub {
	var stubs []domain.JobStub

	doc.Find("a[class*='jobPosting'], div[class*='jobPosting'] a[href], a[href*='ashbyhq.com']").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		title := normalize.CleanText(a.Find("h3, h4, [class*='title']").First().Text())
		if title == "" {
			title = normalize.CleanText(a.Text())
		}
		if title == "" {
			return
		}
		if strings.HasPrefix(href, "/") {
			href = strings.TrimRight(baseURL, "/") + href
		}
		stubs = append(stubs, domain.JobStub{
			Title:        title,
			URL:          href,
			LocationHint: normalize.CleanText(a.Find("[class*='location']").First().Text()),
			Text:         normalize.CleanText(a.Text()),
		})
	})
	return stubs
}
