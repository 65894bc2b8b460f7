package models

// Settings is the process-wide user configuration
type Settings struct {
	CustomKeywords    []string `json:"customKeywords"`
	NotFiltersEnabled bool     `json:"notFiltersEnabled"`
	DomainLevel       int      `json:"domainLevel"`
}

// Domain level bounds
const (
	MinDomainLevel     = 1
	MaxDomainLevel     = 3
	DefaultDomainLevel = 2
)

// ValidDomainLevel reports whether level is in {1,2,3}
func ValidDomainLevel(level int) bool {
	return level >= MinDomainLevel && level <= MaxDomainLevel
}
