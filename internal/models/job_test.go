package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobID_RoundTrip(t *testing.T) {
	id := JobID(KindHostname, "example.com")
	assert.Equal(t, "otx_hostname:example.com", id)

	kind, host, ok := SplitJobID(id)
	assert.True(t, ok)
	assert.Equal(t, KindHostname, kind)
	assert.Equal(t, "example.com", host)
}

func TestSplitJobID_Invalid(t *testing.T) {
	for _, id := range []string{"", "otx_hostname", "otx_hostname:", "bogus:example.com"} {
		_, _, ok := SplitJobID(id)
		assert.False(t, ok, "id %q", id)
	}
}

func TestJob_Snapshot(t *testing.T) {
	j := &Job{NextPage: 3, PagesOpened: 2, PagesBudget: 5, GroupID: "g", TabIDs: []string{"a", "b"}}
	s := j.Snapshot()
	assert.Equal(t, JobSnapshot{NextPage: 3, GroupID: "g", TabCount: 2, PagesOpened: 2, PagesBudget: 5}, s)
	assert.Equal(t, StateActive, j.State())

	j.Stopped = true
	assert.Equal(t, StatePaused, j.State())
	assert.True(t, j.Snapshot().Stop)
}

func TestValidDomainLevel(t *testing.T) {
	assert.False(t, ValidDomainLevel(0))
	assert.True(t, ValidDomainLevel(1))
	assert.True(t, ValidDomainLevel(3))
	assert.False(t, ValidDomainLevel(4))
}
