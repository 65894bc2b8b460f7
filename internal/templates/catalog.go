package templates

import "osint-pivot/internal/models"

// Catalog groups, in menu order
const (
	GroupSearch        = "search"
	GroupArchives      = "archives"
	GroupCerts         = "certs"
	GroupShodanIPs     = "shodan_ips"
	GroupLeakIX        = "leakix"
	GroupGitHubDorking = "github_dorking"
	GroupGitHubKeyword = "github_keywords"
)

// GroupTitles are the menu labels of each group
var GroupTitles = map[string]string{
	GroupSearch:        "Search Engines",
	GroupArchives:      "Archives",
	GroupCerts:         "Certs & Enum Subdomains",
	GroupShodanIPs:     "Shodan & IPs Discovery",
	GroupLeakIX:        "leakix & Others",
	GroupGitHubDorking: "GitHub Dorking (Advanced)",
	GroupGitHubKeyword: "GitHub Dorking (Keywords)",
}

// lookup is a single-tool URL builder. enc holds percent-encoded host parts.
type lookup struct {
	ID    string
	Title string
	Group string
	URL   func(enc encodedHost, e *Engine) string
}

type encodedHost struct {
	Full  string
	Short string
	Apex  string
}

var lookups = []lookup{
	{"bing_search", "Bing Search (site:)", GroupSearch, func(h encodedHost, _ *Engine) string {
		return "https://www.bing.com/search?q=site%3A" + h.Full
	}},
	{"google_search", "Google Search (site:)", GroupSearch, func(h encodedHost, _ *Engine) string {
		return "https://www.google.com/search?q=site%3A" + h.Full
	}},
	{"duckduckgo", "DuckDuckGo (site:)", GroupSearch, func(h encodedHost, _ *Engine) string {
		return "https://duckduckgo.com/?q=site%3A" + h.Full
	}},
	{"yandex", "Yandex (site:)", GroupSearch, func(h encodedHost, _ *Engine) string {
		return "https://yandex.com/search/?text=site%3A" + h.Full
	}},

	{"wayback_web", "Wayback GUI (web/*/domain/*)", GroupArchives, func(h encodedHost, _ *Engine) string {
		return "https://web.archive.org/web/*/" + h.Full + "/*"
	}},
	{"archive_full", "Wayback CDX (Full filters)", GroupArchives, func(h encodedHost, _ *Engine) string {
		return "https://web.archive.org/cdx/search/cdx?url=*." + h.Full + "&fl=original&collapse=urlkey&filter=statuscode:200"
	}},
	{"archive_simple", "Wayback CDX (Simple)", GroupArchives, func(h encodedHost, _ *Engine) string {
		return "https://web.archive.org/cdx/search/cdx?url=*." + h.Full + "&fl=original&collapse=urlkey"
	}},
	{"virustotal", "VirusTotal (domain)", GroupArchives, func(h encodedHost, e *Engine) string {
		if e.virusTotalKey == "" {
			return "https://www.virustotal.com/gui/domain/" + h.Full
		}
		return "https://www.virustotal.com/vtapi/v2/domain/report?apikey=" + EncodeURIComponent(e.virusTotalKey) + "&domain=" + h.Full
	}},
	{"virustotal_ip", "VirusTotal (IP)", GroupArchives, func(h encodedHost, e *Engine) string {
		if e.virusTotalKey == "" {
			return "https://www.virustotal.com/gui/ip-address/" + h.Full
		}
		return "https://www.virustotal.com/vtapi/v2/ip-address/report?apikey=" + EncodeURIComponent(e.virusTotalKey) + "&ip=" + h.Full
	}},
	{"urlscan", "URLScan (search)", GroupArchives, func(h encodedHost, _ *Engine) string {
		return "https://urlscan.io/search/#" + h.Full
	}},
	{string(models.KindHostname), "OTX (Hostname)", GroupArchives, func(h encodedHost, _ *Engine) string {
		return otxBase + "hostname/" + h.Full + "/url_list?limit=500&page=1"
	}},
	{string(models.KindDomain), "OTX (Domain)", GroupArchives, func(h encodedHost, _ *Engine) string {
		return otxBase + "domain/" + h.Full + "/url_list?limit=500&page=1"
	}},

	{"securitytrails", "SecurityTrails (apex)", GroupCerts, func(h encodedHost, _ *Engine) string {
		return "https://securitytrails.com/list/apex_domain/" + h.Full
	}},
	{"crtsh_cn", "crt.sh CN=", GroupCerts, func(h encodedHost, _ *Engine) string {
		return "https://crt.sh/?CN=" + h.Full
	}},
	{"crtsh_o", "crt.sh O=", GroupCerts, func(h encodedHost, _ *Engine) string {
		return "https://crt.sh/?O=" + h.Short
	}},
	{"subdomainfinder", "SubdomainFinder (c99 scan)", GroupCerts, func(encodedHost, *Engine) string {
		return "https://subdomainfinder.c99.nl/"
	}},

	{"shodan_ssl", "Shodan (ssl)", GroupShodanIPs, func(h encodedHost, _ *Engine) string {
		return "https://www.shodan.io/search?query=ssl%3A%22" + h.Full + "%22"
	}},
	{"shodan_org", "Shodan (org)", GroupShodanIPs, func(h encodedHost, _ *Engine) string {
		return "https://www.shodan.io/search?query=org%3A%22" + h.Short + "%22"
	}},
	{"shodan_cn", "Shodan (ssl.cert.CN)", GroupShodanIPs, func(h encodedHost, _ *Engine) string {
		return "https://www.shodan.io/search?query=ssl.cert.subject.CN%3A%22" + h.Full + "%22"
	}},
	{"netlas_host", "Netlas (Host pattern)", GroupShodanIPs, func(h encodedHost, _ *Engine) string {
		return "https://app.netlas.io/domains/?q=domain%3A" + h.Full
	}},
	{"netlas_subdomain", "Netlas (Subdomain & A records)", GroupShodanIPs, func(h encodedHost, _ *Engine) string {
		return "https://app.netlas.io/domains/?q=domain%3A*." + h.Full
	}},
	{"rapiddns", "RapidDNS (same IP)", GroupShodanIPs, func(h encodedHost, _ *Engine) string {
		return "https://rapiddns.io/sameip/" + h.Full
	}},

	{"leakix_plugin", "LeakIX (GitConfigHttpPlugin)", GroupLeakIX, func(h encodedHost, _ *Engine) string {
		return "https://leakix.net/search?scope=leak&q=%2Bplugin%3A%22GitConfigHttpPlugin%22+" + h.Full
	}},
	{"leakix_service", "LeakIX (service host)", GroupLeakIX, func(h encodedHost, _ *Engine) string {
		return "https://leakix.net/search?scope=leak&q=" + h.Full
	}},
	{"leakix_recent", "LeakIX (recent GitConfigHttpPlugin)", GroupLeakIX, func(encodedHost, *Engine) string {
		return "https://leakix.net/search?scope=leak&q=%2Bcreation_date%3A%3E2025-10-01"
	}},
	{"toolbox_dig", "Google Toolbox DIG (CNAME)", GroupLeakIX, func(h encodedHost, _ *Engine) string {
		return "https://toolbox.googleapps.com/apps/dig/#CNAME/" + h.Full
	}},
	{"csp_evaluator", "CSP Evaluator (Google)", GroupLeakIX, func(encodedHost, *Engine) string {
		return "https://csp-evaluator.withgoogle.com/"
	}},
	{"sslshopper", "SSLShopper Checker", GroupLeakIX, func(h encodedHost, _ *Engine) string {
		return "https://www.sslshopper.com/ssl-checker.html#hostname=" + h.Full
	}},
}

// Actions lists every catalog entry in menu order
func Actions() []models.ActionInfo {
	out := make([]models.ActionInfo, 0, len(lookups)+len(githubDorks)+len(keywordDorks))
	for _, l := range lookups {
		out = append(out, models.ActionInfo{ID: l.ID, Title: l.Title, Group: l.Group})
	}
	for _, d := range githubDorks {
		out = append(out, models.ActionInfo{ID: d.ID, Title: d.Title, Group: GroupGitHubDorking})
	}
	for _, d := range keywordDorks {
		out = append(out, models.ActionInfo{ID: d.ID, Title: d.Title, Group: GroupGitHubKeyword})
	}
	return out
}

// GroupActions returns the action ids of one group in menu order
func GroupActions(group string) []string {
	var ids []string
	for _, a := range Actions() {
		if a.Group == group {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
