package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://www.linkedin.com/jobs/view/123", PlatformLinkedIn},
		{"https://www.naukri.com/job-listings-123", PlatformNaukri},
		{"https://careers.example.com/jobs/1", PlatformUnknown},
		{"https://notgreenhouse.io/jobs/1", PlatformUnknown},
		{"::not a url", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	got := PlatformContentSelectors(PlatformLever)
	assert.Equal(t, ".posting-page", got[0])
	assert.Contains(t, got, ".job-description")

	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	got := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, got, "form")
	assert.Contains(t, got, ".voluntary-self-id")

	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Equal(t, applicationNoise, unknown)
}

func TestPlatformNoiseSelectors_DoesNotAliasDefaults(t *testing.T) {
	got := PlatformNoiseSelectors(PlatformUnknown)
	got[0] = "changed"
	assert.Equal(t, "form", applicationNoise[0])
}
