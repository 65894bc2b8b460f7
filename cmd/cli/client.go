package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"osint-pivot/internal/models"
)

var (
	errUsage       = errors.New("usage")
	errUnknownVerb = errors.New("unknown command")
)

// client talks to the daemon's message endpoint
type client struct {
	addr string
	http *http.Client
}

func newClient(addr string) *client {
	return &client{
		addr: strings.TrimRight(addr, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) send(ctx context.Context, msg models.Message) (models.Response, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/message", bytes.NewReader(body))
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()

	var out models.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Response{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return out, nil
}

// watch copies SSE frames from /events to onEvent until ctx ends
func (c *client) watch(ctx context.Context, onEvent func(typ, data string)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.addr+"/events", nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	// the stream is long-lived; only ctx bounds it
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()

	return readEvents(resp.Body, onEvent)
}

func readEvents(r io.Reader, onEvent func(typ, data string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var typ, data string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if data != "" {
				onEvent(typ, data)
			}
			typ, data = "", ""
		case strings.HasPrefix(line, "event: "):
			typ = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildMessage turns command-line arguments into a message
func buildMessage(args []string) (models.Message, error) {
	if len(args) == 0 {
		return models.Message{}, errUsage
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "run":
		if len(rest) < 2 {
			return models.Message{}, fmt.Errorf("%w: run <action> <text>", errUsage)
		}
		return models.Message{Action: models.ActionExecute, Type: rest[0], Text: strings.Join(rest[1:], " ")}, nil
	case "group":
		if len(rest) < 2 {
			return models.Message{}, fmt.Errorf("%w: group <group> <text>", errUsage)
		}
		return models.Message{Action: models.ActionExecuteGroup, Group: rest[0], Text: strings.Join(rest[1:], " ")}, nil
	case "open":
		if len(rest) == 0 {
			return models.Message{}, fmt.Errorf("%w: open <url>...", errUsage)
		}
		return models.Message{Action: models.ActionOpenTabs, URLs: rest}, nil
	case "list":
		return models.Message{Action: models.ActionOTXList}, nil
	case "stop":
		if len(rest) != 1 {
			return models.Message{}, fmt.Errorf("%w: stop <jobId>", errUsage)
		}
		return models.Message{Action: models.ActionOTXStop, JobID: rest[0]}, nil
	case "stop-all":
		return models.Message{Action: models.ActionOTXStopAll}, nil
	case "resume-all":
		return models.Message{Action: models.ActionOTXResumeAll}, nil
	case "clear":
		msg := models.Message{Action: models.ActionOTXClear}
		if len(rest) > 0 {
			msg.JobID = rest[0]
		}
		return msg, nil
	case "actions":
		return models.Message{Action: models.ActionListActions}, nil
	case "keywords":
		return keywordsMessage(rest)
	case "notfilters":
		return notFiltersMessage(rest)
	case "level":
		return levelMessage(rest)
	default:
		return models.Message{}, fmt.Errorf("%w: %s", errUnknownVerb, verb)
	}
}

func keywordsMessage(rest []string) (models.Message, error) {
	if len(rest) == 0 {
		return models.Message{Action: models.ActionGetKeywords}, nil
	}
	switch rest[0] {
	case "reset":
		return models.Message{Action: models.ActionResetKeywords}, nil
	case "set":
		if len(rest) != 2 {
			return models.Message{}, fmt.Errorf("%w: keywords set k1,k2,...", errUsage)
		}
		return models.Message{Action: models.ActionUploadKeywords, Keywords: strings.Split(rest[1], ",")}, nil
	}
	return models.Message{}, fmt.Errorf("%w: keywords [set k1,k2|reset]", errUsage)
}

func notFiltersMessage(rest []string) (models.Message, error) {
	if len(rest) == 0 {
		return models.Message{Action: models.ActionGetNot}, nil
	}
	var enabled bool
	switch rest[0] {
	case "on":
		enabled = true
	case "off":
		enabled = false
	case "toggle":
		return models.Message{Action: models.ActionToggleNot}, nil
	default:
		return models.Message{}, fmt.Errorf("%w: notfilters [on|off|toggle]", errUsage)
	}
	return models.Message{Action: models.ActionToggleNot, Enabled: &enabled}, nil
}

func levelMessage(rest []string) (models.Message, error) {
	if len(rest) == 0 {
		return models.Message{Action: models.ActionGetLevel}, nil
	}
	level, err := strconv.Atoi(rest[0])
	if err != nil || !models.ValidDomainLevel(level) {
		return models.Message{}, fmt.Errorf("%w: level [1|2|3]", errUsage)
	}
	return models.Message{Action: models.ActionSetLevel, Level: level}, nil
}
