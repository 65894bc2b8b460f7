package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osint-pivot/internal/models"
)

func init() {
	color.NoColor = true
}

func TestBuildMessage(t *testing.T) {
	on, off := true, false
	tests := []struct {
		args []string
		want models.Message
	}{
		{[]string{"run", "crtsh_cn", "see", "example.com"}, models.Message{Action: models.ActionExecute, Type: "crtsh_cn", Text: "see example.com"}},
		{[]string{"group", "search", "example.com"}, models.Message{Action: models.ActionExecuteGroup, Group: "search", Text: "example.com"}},
		{[]string{"open", "https://a", "https://b"}, models.Message{Action: models.ActionOpenTabs, URLs: []string{"https://a", "https://b"}}},
		{[]string{"list"}, models.Message{Action: models.ActionOTXList}},
		{[]string{"stop", "otx_domain:example.com"}, models.Message{Action: models.ActionOTXStop, JobID: "otx_domain:example.com"}},
		{[]string{"stop-all"}, models.Message{Action: models.ActionOTXStopAll}},
		{[]string{"resume-all"}, models.Message{Action: models.ActionOTXResumeAll}},
		{[]string{"clear"}, models.Message{Action: models.ActionOTXClear}},
		{[]string{"keywords"}, models.Message{Action: models.ActionGetKeywords}},
		{[]string{"keywords", "set", "a,b"}, models.Message{Action: models.ActionUploadKeywords, Keywords: []string{"a", "b"}}},
		{[]string{"keywords", "reset"}, models.Message{Action: models.ActionResetKeywords}},
		{[]string{"notfilters", "on"}, models.Message{Action: models.ActionToggleNot, Enabled: &on}},
		{[]string{"notfilters", "off"}, models.Message{Action: models.ActionToggleNot, Enabled: &off}},
		{[]string{"notfilters", "toggle"}, models.Message{Action: models.ActionToggleNot}},
		{[]string{"level", "3"}, models.Message{Action: models.ActionSetLevel, Level: 3}},
		{[]string{"level"}, models.Message{Action: models.ActionGetLevel}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := buildMessage(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMessage_Errors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"run", "crtsh_cn"},
		{"stop"},
		{"level", "4"},
		{"notfilters", "maybe"},
		{"keywords", "set"},
	} {
		_, err := buildMessage(args)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}

	_, err := buildMessage([]string{"explode"})
	assert.ErrorIs(t, err, errUnknownVerb)
}

func TestRun_PostsMessageAndRenders(t *testing.T) {
	var got models.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/message", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(models.Response{
			OK: true,
			Jobs: map[string]models.JobSnapshot{
				"otx_hostname:example.com": {NextPage: 3, PagesOpened: 2, PagesBudget: 5, TabCount: 2},
			},
		})
	}))
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), newClient(srv.URL), []string{"list"}, &out))

	assert.Equal(t, models.ActionOTXList, got.Action)
	assert.Contains(t, out.String(), "otx_hostname:example.com  ACTIVE  page 3  opened 2/5  tabs 2")
}

func TestRun_RejectedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Response{OK: false, Error: "invalid domain level"})
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := run(context.Background(), newClient(srv.URL), []string{"level", "2"}, &out)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "invalid domain level")
}

func TestRender_Dispatch(t *testing.T) {
	var out bytes.Buffer
	render(&out, models.Message{Action: models.ActionExecute}, models.Response{OK: true, Dispatched: 3, ResolvedFor: "example.com"})
	assert.Equal(t, "[+] 3 tab(s) for example.com\n", out.String())

	out.Reset()
	render(&out, models.Message{Action: models.ActionExecute}, models.Response{OK: true})
	assert.Equal(t, "[!] no host found in input\n", out.String())
}

func TestReadEvents(t *testing.T) {
	stream := ": heartbeat\n\n" +
		"event: otx_update\ndata: {\"action\":\"otx_update\",\"jobs\":{}}\n\n" +
		"event: settings_update\ndata: {\"action\":\"settings_update\",\"settings\":{\"domainLevel\":2}}\n\n"

	var types []string
	require.NoError(t, readEvents(strings.NewReader(stream), func(typ, data string) {
		types = append(types, typ)
	}))
	assert.Equal(t, []string{models.ActionOTXUpdate, models.ActionSettingsUpdate}, types)

	var out bytes.Buffer
	renderEvent(&out, models.ActionSettingsUpdate, `{"action":"settings_update","settings":{"domainLevel":2,"notFiltersEnabled":true}}`)
	assert.Equal(t, "[*] settings: level 2, NOT filters true, 0 custom keyword(s)\n", out.String())
}
