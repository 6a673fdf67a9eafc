// Package normalize turns raw job stubs into canonical partial
// postings. Every classifier is a pure fallback chain: ordered rules
// tried in sequence, first non-empty result wins, with a terminal
// default instead of an error. Re-normalizing an already-normalized
// record yields the same result.
package normalize

import (
	"regexp"
	"strings"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/salary"
)

var reParens = regexp.MustCompile(`\(([^)]+)\)`)

// Stub produces a canonical partial posting. Salary comes from the
// stub's inline text only; the detail fetcher fills gaps later.
func Stub(stub domain.JobStub, platform domain.Platform) domain.JobPosting {
	title := CleanText(stub.Title)
	title, embedded := splitEmbeddedLocation(title)

	loc := Location(stub.LocationHint, embedded, title+" "+stub.Text)

	return domain.JobPosting{
		Title:          title,
		Location:       loc,
		Department:     Department(stub.DepartmentHint, title),
		Seniority:      SeniorityOf(title),
		Work:           WorkArrangementOf(title, loc, stub.Text),
		Salary:         salary.Parse(stub.Text),
		URL:            strings.TrimSpace(stub.URL),
		SourcePlatform: platform,
	}
}

// Location resolves in order: structured hint, location embedded in
// the title's trailing parentheses, keyword scan, "Not specified".
func Location(hint, embedded, scanText string) string {
	if h := CleanText(hint); h != "" {
		return h
	}
	if embedded != "" {
		return embedded
	}
	low := strings.ToLower(scanText)
	for _, city := range cityKeywords {
		if i := strings.Index(low, city); i >= 0 {
			return CleanText(scanText[i : i+len(city)])
		}
	}
	return domain.NotSpecified
}

// splitEmbeddedLocation strips a trailing "(Remote - US)"-style
// suffix from the title when it looks like a location. The last
// parenthesized group wins, matching the "Title (Location)" pattern.
func splitEmbeddedLocation(title string) (string, string) {
	matches := reParens.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		return title, ""
	}
	candidate := CleanText(matches[len(matches)-1][1])
	if !looksLikeLocation(candidate) {
		return title, ""
	}
	stripped := strings.Replace(title, "("+matches[len(matches)-1][1]+")", "", 1)
	return CleanText(stripped), candidate
}

func looksLikeLocation(s string) bool {
	low := strings.ToLower(s)
	if strings.Contains(s, ",") {
		return true
	}
	for _, m := range regionMarkers {
		if containsWord(low, m) {
			return true
		}
	}
	for _, city := range cityKeywords {
		if strings.Contains(low, city) {
			return true
		}
	}
	return false
}

// Department resolves: structured hint, then title keyword table,
// then "Not specified".
func Department(hint, title string) string {
	if h := CleanText(hint); h != "" {
		return h
	}
	low := strings.ToLower(title)
	for _, rule := range departmentRules {
		for _, needle := range rule.Any {
			if strings.Contains(low, needle) {
				return rule.Department
			}
		}
	}
	return domain.NotSpecified
}

// SeniorityOf scans the title from most-specific tier to least.
// A title with no marker is Mid; an empty title is Unknown.
func SeniorityOf(title string) domain.Seniority {
	low := strings.ToLower(CleanText(title))
	if low == "" {
		return domain.SeniorityUnknown
	}
	for _, tier := range seniorityTiers {
		for _, m := range tier.Markers {
			if !strings.Contains(low, m) {
				continue
			}
			switch tier.Tier {
			case "staff":
				return domain.SeniorityStaff
			case "lead":
				return domain.SeniorityLead
			case "senior":
				return domain.SenioritySenior
			case "entry":
				return domain.SeniorityEntry
			}
		}
	}
	return domain.SeniorityMid
}

// WorkArrangementOf scans title+location (then any extra text) for
// arrangement markers. A concrete office location with no marker
// defaults to Onsite; no location at all is Unknown.
func WorkArrangementOf(title, location, extra string) domain.WorkArrangement {
	blob := strings.ToLower(strings.Join([]string{title, location, extra}, " "))

	switch {
	case strings.Contains(blob, "remote"):
		return domain.WorkRemote
	case strings.Contains(blob, "hybrid"):
		return domain.WorkHybrid
	case strings.Contains(blob, "on-site") || strings.Contains(blob, "onsite") || strings.Contains(blob, "on site"):
		return domain.WorkOnsite
	}

	if loc := CleanText(location); loc != "" && loc != domain.NotSpecified {
		return domain.WorkOnsite
	}
	return domain.WorkUnknown
}

// CleanText collapses whitespace, including non-breaking spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func containsWord(haystack, word string) bool {
	i := 0
	for {
		j := strings.Index(haystack[i:], word)
		if j < 0 {
			return false
		}
		j += i
		before := j == 0 || !isAlnum(haystack[j-1])
		end := j + len(word)
		after := end == len(haystack) || !isAlnum(haystack[end])
		if before && after {
			return true
		}
		i = j + 1
	}
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
