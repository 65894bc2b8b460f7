// Package inspect reads loaded OTX API pages for the end-of-data signal.
package inspect

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"osint-pivot/internal/models"
)

// OTXHost is the only origin whose pages are inspected
const OTXHost = "otx.alienvault.com"

var (
	rePath    = regexp.MustCompile(`(?i)^/api/v1/indicator/(hostname|domain)/([^/]+)/url_list`)
	reNoNext  = regexp.MustCompile(`(?i)"has_next"\s*:\s*false`)
	reHasNext = regexp.MustCompile(`(?i)"has_next"\s*:\s*true`)
)

// PageRef identifies which job page a loaded URL belongs to
type PageRef struct {
	Kind models.JobKind
	Host string
	Page int
}

// ParseOTXURL maps a url_list page address to its job and page number
func ParseOTXURL(raw string) (PageRef, bool) {
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Hostname(), OTXHost) {
		return PageRef{}, false
	}

	m := rePath.FindStringSubmatch(u.EscapedPath())
	if m == nil {
		return PageRef{}, false
	}

	hostname, err := url.PathUnescape(m[2])
	if err != nil || hostname == "" {
		return PageRef{}, false
	}

	ref := PageRef{Kind: models.KindDomain, Host: hostname, Page: 1}
	if strings.EqualFold(m[1], "hostname") {
		ref.Kind = models.KindHostname
	}
	if p := u.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return PageRef{}, false
		}
		ref.Page = n
	}
	return ref, true
}

// PageText returns the rendered text of a page body. HTML documents are
// reduced to the text of <body>; anything else is returned as-is.
func PageText(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "<") {
		return trimmed, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return "", fmt.Errorf("failed to parse page html: %w", err)
	}
	return strings.TrimSpace(doc.Find("body").Text()), nil
}

// HasNext looks for the has_next flag in a page body. found is false when
// the page carries no usable signal.
func HasNext(body string) (value, found bool) {
	text, err := PageText(body)
	if err != nil {
		return false, false
	}

	// any well-formed JSON is read structurally, never by pattern
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err == nil {
		obj, ok := doc.(map[string]any)
		if !ok {
			return false, false
		}
		b, ok := obj["has_next"].(bool)
		return b, ok
	}

	// end-of-data wins when a malformed page carries both
	switch {
	case reNoNext.MatchString(text):
		return false, true
	case reHasNext.MatchString(text):
		return true, true
	}
	return false, false
}
