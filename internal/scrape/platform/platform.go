// Package platform picks the extraction strategy tag for a career
// site. URL patterns are checked first (no network); when they say
// nothing the caller hands over the already-fetched page and the
// structural fingerprint decides. Unknown is a usable answer (the
// generic strategy), never a failure.
package platform

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"talentai-engine/internal/domain"
)

// Detect resolves a platform tag from the URL alone when possible,
// otherwise from the page body fetched by the caller.
func Detect(rawURL string, body []byte) domain.Platform {
	if p := DetectURL(rawURL); p != domain.PlatformUnknown {
		return p
	}
	return DetectBody(body)
}

// DetectURL matches host/path against known board patterns. Cheap,
// no network call.
func DetectURL(rawURL string) domain.Platform {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return domain.PlatformUnknown
	}
	host := strings.ToLower(u.Host)

	switch {
	case strings.HasSuffix(host, "greenhouse.io"):
		return domain.PlatformGreenhouse
	case strings.HasSuffix(host, "ashbyhq.com"):
		return domain.PlatformAshby
	}
	return domain.PlatformUnknown
}

// DetectBody inspects structural fingerprints: embedded-data markers
// first, then DOM class conventions, then any job-link shape at all.
func DetectBody(body []byte) domain.Platform {
	if len(body) == 0 {
		return domain.PlatformUnknown
	}

	if bytes.Contains(body, []byte("window.__appData")) ||
		bytes.Contains(body, []byte("ashby_embed")) {
		return domain.PlatformAshby
	}
	if bytes.Contains(body, []byte("boards.greenhouse.io")) ||
		bytes.Contains(body, []byte("greenhouse.io/embed")) {
		return domain.PlatformGreenhouse
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return domain.PlatformUnknown
	}
	if doc.Find(".opening, div[data-mapped='true'], section.level-0").Length() > 0 {
		return domain.PlatformGreenhouse
	}
	if doc.Find("a[href*='/jobs/'], a[href*='/careers/'], a[href*='/positions/'], a[href*='/openings/']").Length() > 0 {
		return domain.PlatformCustom
	}
	return domain.PlatformUnknown
}
