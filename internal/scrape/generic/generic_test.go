package generic

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"talentai-engine/internal/domain"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestExtractStubs(t *testing.T) {
	html := `
<html><body>
<ul>
  <li>
    <a href="/careers/senior-engineer">Senior Engineer</a>
    <span class="job-location">Amsterdam</span>
  </li>
  <li><a href="/careers/designer">Product Designer</a></li>
  <li><a href="/blog/hiring-update">Why we hire slowly</a></li>
  <li><a href="/careers/apply-now-today">Apply now</a></li>
</ul>
</body></html>`
	stubs := Strategy{Tag: domain.PlatformCustom}.ExtractStubs(doc(t, html), "https://acme.com/careers")

	require.Len(t, stubs, 2)
	require.Equal(t, "Senior Engineer", stubs[0].Title)
	require.Equal(t, "https://acme.com/careers/senior-engineer", stubs[0].URL)
	require.Equal(t, "Amsterdam", stubs[0].LocationHint)
	require.Equal(t, "Product Designer", stubs[1].Title)
}

func TestExtractStubsSkipsSelfLink(t *testing.T) {
	html := `<html><body><a href="https://acme.com/careers">Our careers page here</a></body></html>`
	stubs := Strategy{}.ExtractStubs(doc(t, html), "https://acme.com/careers")
	require.Empty(t, stubs)
}

func TestExtractStubsShortTitlesDropped(t *testing.T) {
	html := `
<html><body>
<a href="/jobs/1">Go</a>
<a href="/jobs/2">Go Engineer</a>
</body></html>`
	stubs := Strategy{}.ExtractStubs(doc(t, html), "https://acme.com")
	require.Len(t, stubs, 1)
	require.Equal(t, "Go Engineer", stubs[0].Title)
}

func TestPlatformTag(t *testing.T) {
	require.Equal(t, domain.PlatformCustom, Strategy{Tag: domain.PlatformCustom}.Platform())
	require.Equal(t, domain.PlatformUnknown, Strategy{}.Platform())
}

func TestNextPageAlwaysEmpty(t *testing.T) {
	require.Equal(t, "", Strategy{}.NextPage(nil, "https://acme.com", 1))
}
