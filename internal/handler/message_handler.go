package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"osint-pivot/internal/logger"
	"osint-pivot/internal/models"
	"osint-pivot/internal/service"
	"osint-pivot/internal/templates"
)

const maxMessageBytes = 1 << 20

// MessageHandler handles the JSON message channel used by the extension
type MessageHandler struct {
	jobs     *service.JobService
	settings *service.SettingsService
	dispatch *service.DispatchService
	logger   logger.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(jobs *service.JobService, settings *service.SettingsService, dispatch *service.DispatchService, log logger.Logger) *MessageHandler {
	return &MessageHandler{
		jobs:     jobs,
		settings: settings,
		dispatch: dispatch,
		logger:   log,
	}
}

// HandleMessage handles POST /message
func (h *MessageHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var msg models.Message
	if err := json.NewDecoder(io.LimitReader(r.Body, maxMessageBytes)).Decode(&msg); err != nil {
		h.logger.Debug("Rejected malformed message", logger.Error(err))
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"), h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.Handle(r.Context(), msg), h.logger)
}

// Handle routes one message to the owning service and builds the reply
func (h *MessageHandler) Handle(ctx context.Context, msg models.Message) models.Response {
	switch msg.Action {
	case models.ActionOTXStopAll:
		return models.Response{OK: h.jobs.StopAll()}
	case models.ActionOTXResumeAll:
		return models.Response{OK: h.jobs.ResumeAll()}
	case models.ActionOTXStop:
		return models.Response{OK: h.jobs.Stop(msg.JobID)}
	case models.ActionOTXList:
		return models.Response{OK: true, Jobs: h.jobs.List()}
	case models.ActionOTXClear:
		return h.clear(msg)
	case models.ActionOTXPageStat:
		return h.pageStatus(msg)
	case models.ActionExecute, models.ActionKeywordDork:
		return h.execute(ctx, msg)
	case models.ActionExecuteGroup:
		return h.executeGroup(ctx, msg)
	case models.ActionOpenTabs:
		if len(msg.URLs) == 0 {
			return failure("urls are required")
		}
		return models.Response{OK: true, Dispatched: h.dispatch.OpenURLs(ctx, msg.URLs)}
	case models.ActionListActions:
		return models.Response{OK: true, Actions: templates.Actions()}
	case models.ActionGetKeywords:
		kws, custom := h.settings.Keywords()
		return models.Response{OK: true, Keywords: kws, Custom: &custom}
	case models.ActionUploadKeywords:
		return h.uploadKeywords(ctx, msg)
	case models.ActionResetKeywords:
		return h.resetKeywords(ctx)
	case models.ActionToggleNot:
		enabled, err := h.settings.SetNotFilters(ctx, msg.Enabled)
		if err != nil {
			return h.settingsFailure(msg.Action, err)
		}
		return models.Response{OK: true, Enabled: &enabled}
	case models.ActionGetNot:
		enabled := h.settings.Get().NotFiltersEnabled
		return models.Response{OK: true, Enabled: &enabled}
	case models.ActionSetLevel:
		if err := h.settings.SetDomainLevel(ctx, msg.Level); err != nil {
			return h.settingsFailure(msg.Action, err)
		}
		return models.Response{OK: true, Level: msg.Level}
	case models.ActionGetLevel:
		return models.Response{OK: true, Level: h.settings.Get().DomainLevel}
	default:
		h.logger.Debug("Ignoring unknown message", logger.String("action", msg.Action))
		return failure("unknown action")
	}
}

func (h *MessageHandler) clear(msg models.Message) models.Response {
	if msg.JobID == "" {
		h.jobs.ClearStopped()
		return models.Response{OK: true}
	}
	if err := h.jobs.Clear(msg.JobID); err != nil {
		return failure(err.Error())
	}
	return models.Response{OK: true}
}

// pageStatus always acknowledges; only an explicit has_next=false has an effect
func (h *MessageHandler) pageStatus(msg models.Message) models.Response {
	if msg.HasNext != nil {
		h.jobs.ReportPageStatus(models.JobKind(msg.JobType), msg.Host, msg.Page, *msg.HasNext)
	}
	return models.Response{OK: true}
}

func (h *MessageHandler) execute(ctx context.Context, msg models.Message) models.Response {
	action := msg.Type
	if action == "" {
		action = msg.Action
	}
	if strings.TrimSpace(msg.Text) == "" {
		return failure("text is required")
	}

	res, err := h.dispatch.Dispatch(ctx, action, msg.Text)
	if err != nil {
		return h.dispatchFailure(action, err)
	}
	resp := models.Response{OK: true, Dispatched: res.Tabs, ResolvedFor: res.Host}
	if res.Job != nil {
		resp.Jobs = map[string]models.JobSnapshot{
			models.JobID(models.JobKind(action), res.Host): *res.Job,
		}
	}
	return resp
}

func (h *MessageHandler) executeGroup(ctx context.Context, msg models.Message) models.Response {
	if strings.TrimSpace(msg.Text) == "" {
		return failure("text is required")
	}
	res, err := h.dispatch.DispatchGroup(ctx, msg.Group, msg.Text)
	if err != nil {
		return h.dispatchFailure(msg.Group, err)
	}
	return models.Response{OK: true, Dispatched: res.Tabs, ResolvedFor: res.Host}
}

// dispatchFailure maps dispatch errors to replies. A missing host is a no-op.
func (h *MessageHandler) dispatchFailure(action string, err error) models.Response {
	switch {
	case errors.Is(err, service.ErrNoHost):
		h.logger.Info("No host found in input", logger.String("action", action))
		return models.Response{OK: true}
	case errors.Is(err, service.ErrRateLimitExceeded):
		return failure("rate limit exceeded")
	case errors.Is(err, service.ErrUnknownGroup):
		return failure("unknown group")
	default:
		h.logger.Error("Dispatch failed", logger.String("action", action), logger.Error(err))
		return failure("dispatch failed")
	}
}

func (h *MessageHandler) uploadKeywords(ctx context.Context, msg models.Message) models.Response {
	stored, err := h.settings.UploadKeywords(ctx, msg.Keywords)
	if err != nil {
		return h.settingsFailure(msg.Action, err)
	}
	return models.Response{OK: true, Keywords: stored}
}

func (h *MessageHandler) resetKeywords(ctx context.Context) models.Response {
	if err := h.settings.ResetKeywords(ctx); err != nil {
		return h.settingsFailure(models.ActionResetKeywords, err)
	}
	kws, custom := h.settings.Keywords()
	return models.Response{OK: true, Keywords: kws, Custom: &custom}
}

func (h *MessageHandler) settingsFailure(action string, err error) models.Response {
	if errors.Is(err, service.ErrInvalidDomainLevel) {
		return failure("invalid domain level")
	}
	h.logger.Error("Settings update failed", logger.String("action", action), logger.Error(err))
	return failure("failed to save settings")
}

func failure(msg string) models.Response {
	return models.Response{OK: false, Error: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding response", logger.Error(err))
	}
}
