// Package host turns free text, URLs and selections into a bare hostname.
package host

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	reScheme = regexp.MustCompile(`(?i)^https?://`)
	reIPv4   = regexp.MustCompile(`(?:^|\s)(\d{1,3}(?:\.\d{1,3}){3})(?:$|\s)`)
	reDomain = regexp.MustCompile(`(?i)([a-z0-9.-]+\.[a-z]{2,})`)
	reWWW    = regexp.MustCompile(`(?i)^www\.`)
)

// Host is a resolved target split into the parts templates need
type Host struct {
	Full       string
	ShortLabel string
	Apex       string
}

// Extract returns a best-effort hostname or IPv4 literal found in text, or
// "" when nothing usable is present.
func Extract(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if reScheme.MatchString(text) {
		u, err := url.Parse(text)
		if err != nil {
			return ""
		}
		return reWWW.ReplaceAllString(strings.ToLower(u.Hostname()), "")
	}

	if m := reIPv4.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	if m := reDomain.FindStringSubmatch(text); m != nil {
		return reWWW.ReplaceAllString(m[1], "")
	}
	return ""
}

// Split derives the short label and apex from a hostname
func Split(full string) Host {
	parts := strings.Split(full, ".")
	h := Host{Full: full, ShortLabel: parts[0], Apex: parts[0]}
	if n := len(parts); n >= 2 {
		h.ShortLabel = parts[n-2]
		h.Apex = parts[n-2] + "." + parts[n-1]
	}
	return h
}

// Parse combines Extract and Split
func Parse(text string) (Host, bool) {
	full := Extract(text)
	if full == "" {
		return Host{}, false
	}
	return Split(full), true
}
