package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board whose pages need their own selectors.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformNaukri     Platform = "naukri"
	PlatformUnknown    Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string // host suffixes
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".section-wrapper.page-full-width", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformLinkedIn,
		hosts:    []string{"linkedin.com"},
		content:  []string{".show-more-less-html__markup", ".description__text", ".jobs-description__content"},
		noise:    []string{".sign-in-modal", ".contextual-sign-in-modal", ".similar-jobs"},
	},
	{
		platform: PlatformNaukri,
		hosts:    []string{"naukri.com"},
		content:  []string{".styles_JDC__dang-inner-html__h0K4t", ".job-desc", ".dang-inner-html"},
		noise:    []string{".styles_jhc__apply-button-container__5Bqnb", ".chatbot_Drawer"},
	},
}

// applicationNoise is removed from every job page: apply forms, EEO text,
// share buttons and consent banners.
var applicationNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".legal-disclosure",
	".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(urlStr string) Platform {
	if r := ruleFor(urlStr); r != nil {
		return r.platform
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform,
// followed by the generic job posting selectors.
func PlatformContentSelectors(p Platform) []string {
	for _, r := range platformRules {
		if r.platform == p {
			return append(append([]string(nil), r.content...), JobPostingSelectors()...)
		}
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the selectors removed before extraction.
func PlatformNoiseSelectors(p Platform) []string {
	noise := append([]string(nil), applicationNoise...)
	for _, r := range platformRules {
		if r.platform == p {
			noise = append(noise, r.noise...)
		}
	}
	return noise
}

func ruleFor(urlStr string) *platformRule {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platformRules {
		for _, suffix := range platformRules[i].hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return &platformRules[i]
			}
		}
	}
	return nil
}
