package models

import "strings"

// JobKind selects which paginated OTX endpoint a job walks
type JobKind string

const (
	KindHostname JobKind = "otx_hostname"
	KindDomain   JobKind = "otx_domain"
)

// Valid reports whether k is one of the two OTX kinds
func (k JobKind) Valid() bool {
	return k == KindHostname || k == KindDomain
}

// JobState is the run state of a job
type JobState string

const (
	StateActive JobState = "ACTIVE"
	StatePaused JobState = "PAUSED"
)

// JobID builds the composite job key "<kind>:<host>"
func JobID(kind JobKind, host string) string {
	return string(kind) + ":" + host
}

// SplitJobID reverses JobID. The host part may itself contain colons.
func SplitJobID(id string) (JobKind, string, bool) {
	kind, host, ok := strings.Cut(id, ":")
	if !ok || host == "" || !JobKind(kind).Valid() {
		return "", "", false
	}
	return JobKind(kind), host, true
}

// Job is one tracked OTX enumeration for a (kind, host) pair
type Job struct {
	ID          string
	Kind        JobKind
	Host        string
	Stopped     bool
	NextPage    int
	PagesOpened int
	PagesBudget int
	GroupID     string
	TabIDs      []string
}

// State derives the run state from the stop flag
func (j *Job) State() JobState {
	if j.Stopped {
		return StatePaused
	}
	return StateActive
}

// Snapshot returns the observer view of the job
func (j *Job) Snapshot() JobSnapshot {
	return JobSnapshot{
		NextPage:    j.NextPage,
		Stop:        j.Stopped,
		GroupID:     j.GroupID,
		TabCount:    len(j.TabIDs),
		PagesOpened: j.PagesOpened,
		PagesBudget: j.PagesBudget,
	}
}

// JobSnapshot is the client-facing view of a job
type JobSnapshot struct {
	NextPage    int    `json:"nextPage"`
	Stop        bool   `json:"stop"`
	GroupID     string `json:"groupId,omitempty"`
	TabCount    int    `json:"tabCount"`
	PagesOpened int    `json:"pagesOpened"`
	PagesBudget int    `json:"pagesBudget"`
}
