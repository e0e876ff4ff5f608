package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		if host == p.suffix || strings.HasSuffix(host, "."+p.suffix) {
			return p.platform
		}
	}
	return PlatformUnknown
}

// Selectors returns the content selectors specific to the platform, tried
// before the generic ones.
func (p Platform) Selectors() []string {
	switch p {
	case PlatformGreenhouse:
		return []string{"#content", ".job__description", "#app_body"}
	case PlatformLever:
		return []string{".posting-page .content", ".section-wrapper.page-full-width"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobPostingDescription']"}
	case PlatformAshby:
		return []string{"[class*='descriptionText']"}
	default:
		return nil
	}
}
