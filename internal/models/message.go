package models

import "encoding/json"

// Message actions accepted on the message channel
const (
	ActionOTXStopAll   = "otx_stop_all"
	ActionOTXResumeAll = "otx_resume_all"
	ActionOTXStop      = "otx_stop"
	ActionOTXList      = "otx_list"
	ActionOTXClear     = "otx_clear"
	ActionOTXPageStat  = "otx_page_status"
	ActionOTXUpdate    = "otx_update"

	ActionExecute        = "executeAction"
	ActionKeywordDork    = "executeKeywordDork"
	ActionExecuteGroup   = "executeGroup"
	ActionOpenTabs       = "openTabs"
	ActionListActions    = "listActions"
	ActionUploadKeywords = "uploadKeywords"
	ActionResetKeywords  = "resetKeywords"
	ActionGetKeywords    = "getKeywords"
	ActionToggleNot      = "toggleNotFilters"
	ActionGetNot         = "getNotFilters"
	ActionSetLevel       = "setDomainLevel"
	ActionGetLevel       = "getDomainLevel"

	ActionSettingsUpdate = "settings_update"
)

// Message is a request on the message channel. Only the fields relevant to
// Action are read.
type Message struct {
	Action   string   `json:"action"`
	Type     string   `json:"type,omitempty"`
	Text     string   `json:"text,omitempty"`
	JobID    string   `json:"jobId,omitempty"`
	JobType  string   `json:"jobType,omitempty"`
	Host     string   `json:"host,omitempty"`
	Page     int      `json:"page,omitempty"`
	HasNext  *bool    `json:"has_next,omitempty"`
	URLs     []string `json:"urls,omitempty"`
	Group    string   `json:"group,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"`
	Level    int      `json:"level,omitempty"`
}

// Response is the reply on the message channel. A non-nil Jobs is always
// encoded, so an empty job set goes out as "jobs": {}.
type Response struct {
	OK          bool                   `json:"ok"`
	Error       string                 `json:"error,omitempty"`
	Jobs        map[string]JobSnapshot `json:"jobs,omitempty"`
	Keywords    []string               `json:"keywords,omitempty"`
	Custom      *bool                  `json:"custom,omitempty"`
	Enabled     *bool                  `json:"enabled,omitempty"`
	Level       int                    `json:"level,omitempty"`
	Actions     []ActionInfo           `json:"actions,omitempty"`
	Dispatched  int                    `json:"dispatched,omitempty"`
	ResolvedFor string                 `json:"host,omitempty"`
}

// ActionInfo describes one catalog action for menus and the popup
type ActionInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Group string `json:"group"`
}

// Update is the unsolicited broadcast payload. Jobs follows the same
// encoding rule as Response.
type Update struct {
	Action   string                 `json:"action"`
	Jobs     map[string]JobSnapshot `json:"jobs,omitempty"`
	Settings *Settings              `json:"settings,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	if r.Jobs == nil {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		Jobs map[string]JobSnapshot `json:"jobs"`
	}{plain(r), r.Jobs})
}

// MarshalJSON implements json.Marshaler
func (u Update) MarshalJSON() ([]byte, error) {
	type plain Update
	if u.Jobs == nil {
		return json.Marshal(plain(u))
	}
	return json.Marshal(struct {
		plain
		Jobs map[string]JobSnapshot `json:"jobs"`
	}{plain(u), u.Jobs})
}
