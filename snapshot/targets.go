package snapshot

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Target is one page to capture.
type Target struct {
	Name string
	URL  string
}

// Targets returns the overall dashboard followed by one page per region.
func Targets(baseURL string, regions []string) ([]Target, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parse base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("snapshot: base url %q must be absolute", baseURL)
	}

	targets := make([]Target, 0, len(regions)+1)
	targets = append(targets, Target{Name: "overview", URL: base.String()})
	for _, region := range regions {
		u := *base
		q := u.Query()
		q.Set("region", region)
		u.RawQuery = q.Encode()
		targets = append(targets, Target{Name: region, URL: u.String()})
	}
	return targets, nil
}

// FileName turns a target name into a safe PNG file name.
func FileName(t Target) string {
	slug := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, strings.TrimSpace(t.Name))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "snapshot"
	}
	return slug + ".png"
}
