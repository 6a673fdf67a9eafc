package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/ashby"
	"talentai-engine/internal/scrape/generic"
	"talentai-engine/internal/scrape/greenhouse"
)

// Strategy is the one capability a platform has to provide. Adding a
// platform means adding a package and a case here, nothing else.
type Strategy interface {
	Platform() domain.Platform
	// ExtractStubs tolerates partial markup; missing hints are valid.
	ExtractStubs(doc *goquery.Document, baseURL string) []domain.JobStub
	// NextPage returns the following listing page URL, or "" when
	// the board has no further pages.
	NextPage(doc *goquery.Document, baseURL string, page int) string
}

func ForPlatform(p domain.Platform) Strategy {
	switch p {
	case domain.PlatformGreenhouse:
		return greenhouse.Strategy{}
	case domain.PlatformAshby:
		return ashby.Strategy{}
	case domain.PlatformCustom:
		return generic.Strategy{Tag: domain.PlatformCustom}
	default:
		return generic.Strategy{Tag: domain.PlatformUnknown}
	}
}
