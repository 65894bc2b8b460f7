package templates

// notFilters suppresses placeholder and example matches in code search.
const notFilters = `NOT xxxx NOT **** NOT 123 NOT changeme NOT example NOT guest NOT localhost NOT fake NOT 1234 NOT xxx NOT 127.0.0.1 NOT test NOT tracker NOT RobotsDisallowed NOT disallowed NOT robots`

// keywordFragment matches a keyword assigned to a quoted value.
const keywordFragment = `/[$#^]?{keyword}[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`

// dork is a GitHub code-search query template. Tokens:
// {short} second-level label, {apex} last two labels,
// {depth} subdomain repetition such as {2,}, {kw} keyword fragment.
type dork struct {
	ID         string
	Title      string
	Query      string
	NotFilters bool
}

var githubDorks = []dork{
	{ID: "github_dork_1", Title: "Email Pattern Search (Subdomain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_2", Title: "Email Pattern Search (Domain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/`, NotFilters: true},
	{ID: "github_dork_3", Title: "URL Protocol Pattern (Domain)", Query: `/[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/`, NotFilters: true},
	{ID: "github_dork_4", Title: "URL Protocol Pattern (Subdomain)", Query: `/[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_5", Title: "Credentials in URLs (Domain)", Query: `/[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_6", Title: "Secrets in URLs (Domain)", Query: `/[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_7", Title: "Password Exposure (Subdomain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_8", Title: "Secret Exposure (Subdomain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_9", Title: "Env File Credentials (Domain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/ AND PATH:.env`, NotFilters: true},
	{ID: "github_dork_10", Title: "Password Leaks (Domain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_11", Title: "Env File Secrets (Domain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/ AND PATH:.env`, NotFilters: true},
	{ID: "github_dork_12", Title: "Secret Leaks (Domain)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_13", Title: "Organization Password Search", Query: `org:{short} /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_14", Title: "Organization Secret Search", Query: `org:{short} /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_15", Title: "Organization Pass Search", Query: `org:{short} /[$#^]?pass[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_16", Title: "ServiceNow Instance Search", Query: `/{short}(?:[a-zA-Z0-9_-]+\.)+service-now\.com/`, NotFilters: false},
	{ID: "github_dork_17", Title: "ServiceNow Alt Search", Query: `/{short}(?:[a-zA-Z0-9_-]+\.)+servicenow\.com/`, NotFilters: false},
	{ID: "github_dork_18", Title: "ServiceNow Subdomain Search", Query: `/{short}(?:[a-zA-Z0-9-]+\.){depth}service-now\.com/`, NotFilters: false},
	{ID: "github_dork_19", Title: "ServiceNow Subdomain Alt Search", Query: `/{short}(?:[a-zA-Z0-9-]+\.){depth}servicenow\.com/`, NotFilters: false},
	{ID: "github_dork_20", Title: "ServiceNow Reverse Domain", Query: `/servicenow\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_21", Title: "ServiceNow Dash Reverse Domain", Query: `/service-now\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_22", Title: "JDBC Credentials (Subdomain)", Query: `/jdbc:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_23", Title: "JDBC Secrets (Subdomain)", Query: `/jdbc:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_24", Title: "JDBC Connection String", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_25", Title: "JDBC with Auth Password", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_26", Title: "JDBC with Auth Secret", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_27", Title: "JDBC @ Auth Password", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_28", Title: "JDBC @ Auth Secret", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_29", Title: "JDBC @ Pass Search", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_30", Title: "JDBC @ Secret Search", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_31", Title: "Jenkins Client Secret", Query: `/jenkins\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_32", Title: "Jenkins Secret Token", Query: `/jenkins\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_33", Title: "JFrog Client Secret", Query: `/jfrog\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_34", Title: "JFrog Secret Token", Query: `/jfrog\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_35", Title: "GitLab Client Secret", Query: `/gitlab\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_36", Title: "GitLab Secret Token", Query: `/gitlab\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_37", Title: "GitHub Client Secret", Query: `/github\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_38", Title: "GitHub Secret Token", Query: `/github\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_39", Title: "ServiceNow Domain Search", Query: `/servicenow\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/`, NotFilters: true},
	{ID: "github_dork_40", Title: "ServiceNow Domain Dash Search", Query: `/service-now\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/`, NotFilters: true},
	{ID: "github_dork_41", Title: "JDBC Domain Credentials", Query: `/jdbc:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_42", Title: "JDBC Domain Secrets", Query: `/jdbc:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_43", Title: "JDBC Domain Connection", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:(?:[a-zA-Z0-9-]+\.){depth}{apex}/`, NotFilters: true},
	{ID: "github_dork_44", Title: "JDBC Domain Auth Pass", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_45", Title: "JDBC Domain Auth Secret", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_46", Title: "JDBC Domain @ Pass", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_47", Title: "JDBC Domain @ Secret", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_48", Title: "JDBC Domain @ Pass Alt", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_49", Title: "JDBC Domain @ Secret Alt", Query: `/jdbc:[a-zA-Z0-9_-]+:[a-zA-Z0-9_-]+:@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_50", Title: "Jenkins Domain Secret", Query: `/jenkins\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_51", Title: "Jenkins Domain Token", Query: `/jenkins\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_52", Title: "JFrog Domain Secret", Query: `/jfrog\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_53", Title: "JFrog Domain Token", Query: `/jfrog\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_54", Title: "GitLab Domain Secret", Query: `/gitlab\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_55", Title: "GitLab Domain Token", Query: `/gitlab\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_56", Title: "GitHub Domain Secret", Query: `/github\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?CLIENT_SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_57", Title: "GitHub Domain Token", Query: `/github\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?SECRET[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_58", Title: "Confluence Token Search", Query: `/confluence[a-zA-Z0-9_-]*\.(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?Token[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_59", Title: "SAP Connection Password", Query: `/:sap:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_60", Title: "SAP Connection Secret", Query: `/:sap:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_61", Title: "ODBC Connection String", Query: `/odbc:[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_62", Title: "MongoDB Connection String", Query: `/mongodb:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_63", Title: "Redis Connection String", Query: `/redis:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_64", Title: "Couchbase Connection String", Query: `/couchbase:\/\/(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_65", Title: "Google Service Account Keys", Query: `/gserviceaccount.com/ AND /BEGIN PRIVATE KEY/ NOT /@project.iam.gserviceaccount.com/ NOT /your-client-email-here/ NOT /your-service-account/ NOT /@yourproject/`, NotFilters: true},
	{ID: "github_dork_66", Title: "Confluence Domain Token", Query: `/confluence[a-zA-Z0-9_-]*\.(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?Token[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_67", Title: "SAP Domain Password", Query: `/:sap:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?password[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_68", Title: "SAP Domain Secret", Query: `/:sap:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND /[$#^]?secret[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_69", Title: "SaaS Credentials (Multi)", Query: `/(?:[a-zA-Z0-9-]+\.){depth}(auth0|okta|jfrog\.io|onelogin|looker|jenkins)\.(?:[a-zA-Z0-9-]+\.)*/ AND /[$#^]?(SECRET|CLIENT_SECRET|password)[[:space:]]*[:=]?[[:space:]]*['"][a-zA-Z1-9-$#^]*/`, NotFilters: true},
	{ID: "github_dork_70", Title: "Subdomain Email Pattern", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{short}\./`, NotFilters: true},
	{ID: "github_dork_71", Title: "Domain Email Pattern", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/`, NotFilters: true},
}

var keywordDorks = []dork{
	{ID: "github_kw_org", Title: "Keyword Search (Organization)", Query: `org:{short} {kw}`, NotFilters: true},
	{ID: "github_kw_subdomain", Title: "Keyword Search (Subdomain Emails)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{short}\./ AND {kw}`, NotFilters: true},
	{ID: "github_kw_domain", Title: "Keyword Search (Domain Emails)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND {kw}`, NotFilters: true},
	{ID: "github_kw_env", Title: "Keyword Search (Env Files)", Query: `/@(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND {kw} AND PATH:.env`, NotFilters: true},
	{ID: "github_kw_url", Title: "Keyword Search (URLs)", Query: `/[a-zA-Z0-9_-]+:\/\/(?:[a-zA-Z0-9-]+\.){depth}{apex}/ AND {kw}`, NotFilters: true},
}

// keywordAliases maps the keyword dork ids older page menus send to the
// dork they run
var keywordAliases = map[string]string{
	"github_org_password":   "github_kw_org",
	"github_org_secret":     "github_kw_org",
	"github_regex_password": "github_kw_domain",
	"github_regex_secret":   "github_kw_domain",
	"github_regex_secret2":  "github_kw_subdomain",
}
