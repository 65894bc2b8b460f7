// Package templates builds destination URLs for the OSINT tool catalog.
package templates

import (
	"strconv"
	"strings"

	"osint-pivot/internal/host"
	"osint-pivot/internal/models"
)

const (
	otxBase      = "https://otx.alienvault.com/api/v1/indicator/"
	githubSearch = "https://github.com/search?q="
)

// Options are the per-request inputs taken from settings
type Options struct {
	Keyword     string
	DomainLevel int
	NotFilters  bool
}

// DefaultOptions matches a fresh settings store
func DefaultOptions() Options {
	return Options{DomainLevel: models.DefaultDomainLevel, NotFilters: true}
}

// Engine maps action ids to URLs. It holds no mutable state.
type Engine struct {
	virusTotalKey string
	lookups       map[string]lookup
	dorks         map[string]dork
	keywordDorks  map[string]dork
}

// NewEngine creates an Engine. An empty VirusTotal key switches the
// VirusTotal actions to the public web UI.
func NewEngine(virusTotalKey string) *Engine {
	e := &Engine{
		virusTotalKey: virusTotalKey,
		lookups:       make(map[string]lookup, len(lookups)),
		dorks:         make(map[string]dork, len(githubDorks)),
		keywordDorks:  make(map[string]dork, len(keywordDorks)),
	}
	for _, l := range lookups {
		e.lookups[l.ID] = l
	}
	for _, d := range githubDorks {
		e.dorks[d.ID] = d
	}
	for _, d := range keywordDorks {
		e.keywordDorks[d.ID] = d
	}
	for alias, id := range keywordAliases {
		e.keywordDorks[alias] = e.keywordDorks[id]
	}
	return e
}

// IsKeywordAction reports whether action fans out over keywords
func (e *Engine) IsKeywordAction(action string) bool {
	_, ok := e.keywordDorks[action]
	return ok
}

// Known reports whether action is in the catalog
func (e *Engine) Known(action string) bool {
	if _, ok := e.lookups[action]; ok {
		return true
	}
	if _, ok := e.dorks[action]; ok {
		return true
	}
	return e.IsKeywordAction(action)
}

// Build returns the URL for action against h. Unknown actions, and keyword
// actions without a keyword, yield ("", false).
func (e *Engine) Build(action string, h host.Host, opts Options) (string, bool) {
	if l, ok := e.lookups[action]; ok {
		enc := encodedHost{
			Full:  EncodeURIComponent(h.Full),
			Short: EncodeURIComponent(h.ShortLabel),
			Apex:  EncodeURIComponent(h.Apex),
		}
		return l.URL(enc, e), true
	}
	if d, ok := e.dorks[action]; ok {
		return githubCodeSearch(renderQuery(d, h, opts)), true
	}
	if d, ok := e.keywordDorks[action]; ok {
		if strings.TrimSpace(opts.Keyword) == "" {
			return "", false
		}
		return githubCodeSearch(renderQuery(d, h, opts)), true
	}
	return "", false
}

// Query returns the decoded code-search query for a dork action
func (e *Engine) Query(action string, h host.Host, opts Options) (string, bool) {
	if d, ok := e.dorks[action]; ok {
		return renderQuery(d, h, opts), true
	}
	if d, ok := e.keywordDorks[action]; ok {
		return renderQuery(d, h, opts), true
	}
	return "", false
}

// OTXPageURL builds the url_list endpoint for one page of a job
func OTXPageURL(kind models.JobKind, hostname string, page int) string {
	segment := "hostname"
	if kind == models.KindDomain {
		segment = "domain"
	}
	return otxBase + segment + "/" + EncodeURIComponent(hostname) + "/url_list?limit=500&page=" + strconv.Itoa(page)
}

// DepthPattern renders the subdomain repetition for a domain level,
// falling back to the default level when out of range.
func DepthPattern(level int) string {
	if !models.ValidDomainLevel(level) {
		level = models.DefaultDomainLevel
	}
	return "{" + strconv.Itoa(level) + ",}"
}

// KeywordFragment renders the assignment pattern for one keyword
func KeywordFragment(keyword string) string {
	return strings.Replace(keywordFragment, "{keyword}", keyword, 1)
}

func renderQuery(d dork, h host.Host, opts Options) string {
	r := strings.NewReplacer(
		"{short}", h.ShortLabel,
		"{apex}", h.Apex,
		"{depth}", DepthPattern(opts.DomainLevel),
		"{kw}", KeywordFragment(strings.TrimSpace(opts.Keyword)),
	)
	parts := []string{strings.TrimSpace(r.Replace(d.Query))}
	if d.NotFilters && opts.NotFilters {
		parts = append(parts, notFilters)
	}
	return joinParts(parts)
}

func joinParts(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func githubCodeSearch(query string) string {
	return githubSearch + EncodeURIComponent(query) + "&type=code"
}
