// Command osintctl drives a running osint-pivot daemon from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"osint-pivot/internal/models"
	"osint-pivot/internal/templates"
)

var (
	green   = color.New(color.FgGreen)
	red     = color.New(color.FgRed)
	yellow  = color.New(color.FgYellow)
	cyan    = color.New(color.FgCyan)
	magenta = color.New(color.FgMagenta)
	bold    = color.New(color.Bold)
)

const usage = `osintctl [-addr URL] <command>

commands:
  run <action> <text>        run one lookup or dork against the host in text
  group <group> <text>       run every action of a group
  open <url>...              open URLs as tabs
  list                       list OTX jobs
  stop <jobId>               pause one OTX job
  stop-all | resume-all      pause or resume every OTX job
  clear [jobId]              forget one job, or every paused job
  actions                    list action ids
  keywords [set k1,k2|reset] show or change dork keywords
  notfilters [on|off|toggle] show or change the NOT-filter clause
  level [1|2|3]              show or change the subdomain depth
  watch                      stream job and settings updates
`

func main() {
	addr := flag.String("addr", envOr("OSINT_ADDR", "http://localhost:8765"), "daemon address")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, newClient(*addr), flag.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, errUnknownVerb) {
			red.Fprintf(os.Stderr, "%v\n\n", err)
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		red.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client, args []string, w io.Writer) error {
	if len(args) > 0 && args[0] == "watch" {
		return c.watch(ctx, func(typ, data string) { renderEvent(w, typ, data) })
	}

	msg, err := buildMessage(args)
	if err != nil {
		return err
	}
	resp, err := c.send(ctx, msg)
	if err != nil {
		return err
	}
	render(w, msg, resp)
	if !resp.OK {
		return fmt.Errorf("%s rejected", msg.Action)
	}
	return nil
}

func render(w io.Writer, msg models.Message, resp models.Response) {
	if !resp.OK {
		reason := resp.Error
		if reason == "" {
			reason = "nothing to do"
		}
		red.Fprintf(w, "[-] %s: %s\n", msg.Action, reason)
		return
	}

	switch msg.Action {
	case models.ActionOTXList:
		renderJobs(w, resp.Jobs)
	case models.ActionListActions:
		renderActions(w, resp.Actions)
	case models.ActionGetKeywords, models.ActionUploadKeywords, models.ActionResetKeywords:
		source := "custom"
		if resp.Custom != nil && !*resp.Custom {
			source = "default"
		}
		if msg.Action == models.ActionUploadKeywords && len(resp.Keywords) == 0 {
			source = "cleared, defaults apply"
		}
		cyan.Fprintf(w, "[*] keywords (%s): ", source)
		fmt.Fprintln(w, strings.Join(resp.Keywords, ", "))
	case models.ActionGetNot, models.ActionToggleNot:
		state := "off"
		if resp.Enabled != nil && *resp.Enabled {
			state = "on"
		}
		cyan.Fprintf(w, "[*] NOT filters: %s\n", state)
	case models.ActionGetLevel, models.ActionSetLevel:
		cyan.Fprintf(w, "[*] domain level: %d\n", resp.Level)
	case models.ActionExecute, models.ActionExecuteGroup, models.ActionOpenTabs:
		if len(resp.Jobs) > 0 {
			green.Fprintf(w, "[+] OTX job started for %s\n", resp.ResolvedFor)
			renderJobs(w, resp.Jobs)
			return
		}
		if resp.ResolvedFor == "" && msg.Action != models.ActionOpenTabs {
			yellow.Fprintln(w, "[!] no host found in input")
			return
		}
		green.Fprintf(w, "[+] %d tab(s)", resp.Dispatched)
		if resp.ResolvedFor != "" {
			fmt.Fprintf(w, " for %s", resp.ResolvedFor)
		}
		fmt.Fprintln(w)
	default:
		green.Fprintf(w, "[+] %s ok\n", msg.Action)
	}
}

func renderJobs(w io.Writer, jobs map[string]models.JobSnapshot) {
	if len(jobs) == 0 {
		yellow.Fprintln(w, "[!] no OTX jobs")
		return
	}
	ids := make([]string, 0, len(jobs))
	for id := range jobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		j := jobs[id]
		state := green.Sprint("ACTIVE")
		if j.Stop {
			state = yellow.Sprint("PAUSED")
		}
		fmt.Fprintf(w, "%s  %s  page %d  opened %d/%d  tabs %d\n",
			bold.Sprint(id), state, j.NextPage, j.PagesOpened, j.PagesBudget, j.TabCount)
	}
}

func renderActions(w io.Writer, actions []models.ActionInfo) {
	group := ""
	for _, a := range actions {
		if a.Group != group {
			group = a.Group
			title := templates.GroupTitles[group]
			if title == "" {
				title = group
			}
			magenta.Fprintf(w, "\n%s\n", title)
		}
		fmt.Fprintf(w, "  %-28s %s\n", a.ID, a.Title)
	}
}

func renderEvent(w io.Writer, typ, data string) {
	var update models.Update
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		red.Fprintf(w, "[-] bad event: %v\n", err)
		return
	}
	switch update.Action {
	case models.ActionOTXUpdate:
		cyan.Fprintln(w, "[*] jobs updated")
		renderJobs(w, update.Jobs)
	case models.ActionSettingsUpdate:
		if update.Settings == nil {
			return
		}
		s := update.Settings
		cyan.Fprintf(w, "[*] settings: level %d, NOT filters %t, %d custom keyword(s)\n",
			s.DomainLevel, s.NotFiltersEnabled, len(s.CustomKeywords))
	default:
		fmt.Fprintf(w, "[*] %s\n", typ)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
