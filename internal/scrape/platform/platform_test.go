package platform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"talentai-engine/internal/domain"
)

func TestDetectURL(t *testing.T) {
	tests := []struct {
		url  string
		want domain.Platform
	}{
		{"https://boards.greenhouse.io/acme", domain.PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme", domain.PlatformGreenhouse},
		{"https://jobs.ashbyhq.com/acme", domain.PlatformAshby},
		{"https://acme.com/careers", domain.PlatformUnknown},
		{"not a url", domain.PlatformUnknown},
		{"", domain.PlatformUnknown},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DetectURL(tt.url), "url=%q", tt.url)
	}
}

func TestDetectBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.Platform
	}{
		{
			name: "ashby app data",
			body: `<html><script>window.__appData = {"jobBoard":{}};</script></html>`,
			want: domain.PlatformAshby,
		},
		{
			name: "greenhouse embed marker",
			body: `<html><iframe src="https://boards.greenhouse.io/embed/job_board?for=acme"></iframe></html>`,
			want: domain.PlatformGreenhouse,
		},
		{
			name: "greenhouse dom classes",
			body: `<html><div class="opening"><a href="/acme/jobs/1">Engineer</a></div></html>`,
			want: domain.PlatformGreenhouse,
		},
		{
			name: "plain job links",
			body: `<html><a href="/careers/engineer-123">Engineer</a></html>`,
			want: domain.PlatformCustom,
		},
		{
			name: "nothing recognizable",
			body: `<html><p>We are not hiring.</p></html>`,
			want: domain.PlatformUnknown,
		},
		{
			name: "empty body",
			body: "",
			want: domain.PlatformUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DetectBody([]byte(tt.body)))
		})
	}
}

func TestDetectURLWinsOverBody(t *testing.T) {
	body := []byte(`<html><script>window.__appData = {};</script></html>`)
	got := Detect("https://boards.greenhouse.io/acme", body)
	require.Equal(t, domain.PlatformGreenhouse, got)
}
