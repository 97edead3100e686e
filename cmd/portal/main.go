// The portal command is a terminal client for the clinic API: the patient
// dashboard (calendar, day list, filter, cancellation), the appointment
// search page, the doctor's appointment detail panels, and the inline
// profile field editor.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"

	"github.com/jwalitptl/clinic-portal/internal/api"
	"github.com/jwalitptl/clinic-portal/internal/calendar"
	"github.com/jwalitptl/clinic-portal/internal/config"
	"github.com/jwalitptl/clinic-portal/internal/dashboard"
	"github.com/jwalitptl/clinic-portal/internal/detail"
	"github.com/jwalitptl/clinic-portal/internal/editor"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/search"
)

type app struct {
	client    *api.Client
	dashboard *dashboard.Dashboard
	search    *search.Page
	panel     *detail.Panel
	editor    *editor.Editor
	logger    *logger.Logger
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	})

	m := metrics.NewMetrics("portal")
	client := api.New(cfg.Upstream.BaseURL, appLogger, m)
	client.SetTimeout(cfg.Upstream.Timeout())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
		fmt.Println()
		os.Exit(0)
	}()

	hooks := dashboard.Hooks{
		Confirm: confirmPrompt,
		Alert:   alertPrint,
	}

	a := &app{
		client:    client,
		dashboard: dashboard.New(calendar.New(time.Now()), client, hooks, appLogger),
		panel:     detail.New(client, appLogger),
		logger:    appLogger,
	}
	a.dashboard.Start(ctx)
	a.search = search.New(client, initialListing(a.dashboard), alertPrint, appLogger)

	fmt.Printf("clinic portal connected to %s (type 'help')\n", cfg.Upstream.BaseURL)
	fmt.Print(a.dashboard.RenderCalendar())
	fmt.Print(a.dashboard.RenderList())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if line != "" {
			a.run(ctx, line)
		}
		fmt.Print("> ")
	}
}

// initialListing approximates the server-rendered page listing the search
// page falls back to when its query is cleared.
func initialListing(d *dashboard.Dashboard) []model.SearchResult {
	rows := d.Rows()
	out := make([]model.SearchResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.SearchResult{
			AppointmentDate: r.Appointment.Date,
			AppointmentTime: r.Appointment.Time,
			Description:     r.Appointment.Description,
		})
	}
	return out
}

func confirmPrompt(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func alertPrint(msg string) {
	fmt.Printf("!! %s\n", msg)
}

func (a *app) run(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "help":
		printHelp()

	case "cal":
		fmt.Print(a.dashboard.RenderCalendar())
		fmt.Printf("%s, %s\n", a.dashboard.CurrentDateLabel(), a.dashboard.YearLabel())
		fmt.Print(a.dashboard.RenderList())

	case "prev":
		a.dashboard.PrevMonth()
		fmt.Print(a.dashboard.RenderCalendar())

	case "next":
		a.dashboard.NextMonth()
		fmt.Print(a.dashboard.RenderCalendar())

	case "day":
		if len(args) != 1 {
			fmt.Println("usage: day N")
			return
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("usage: day N")
			return
		}
		if err := a.dashboard.SelectDay(ctx, day); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(a.dashboard.RenderCalendar())
		fmt.Print(a.dashboard.RenderList())

	case "filter":
		a.dashboard.Filter(rest)
		fmt.Print(a.dashboard.RenderList())

	case "cancel":
		if len(args) != 1 {
			fmt.Println("usage: cancel APPOINTMENT_ID")
			return
		}
		a.dashboard.Cancel(ctx, args[0])
		fmt.Print(a.dashboard.RenderList())

	case "search":
		a.search.Submit(ctx, rest)
		fmt.Print(a.search.Render())

	case "clear":
		a.search.Input("")
		fmt.Print(a.search.Render())

	case "list":
		fmt.Print(a.search.Render())

	case "detail":
		if len(args) != 1 {
			fmt.Println("usage: detail APPOINTMENT_ID")
			return
		}
		a.panel.Select(ctx, args[0])
		fmt.Print(a.panel.Render())

	case "panel":
		fmt.Print(a.panel.Render())

	case "profile":
		a.openProfile(args)

	case "edit":
		if a.editor == nil {
			fmt.Println("no profile open; use: profile patient|doctor ID field=value ...")
			return
		}
		if len(args) != 1 {
			fmt.Println("usage: edit FIELD")
			return
		}
		if err := a.editor.BeginEdit(args[0]); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(a.editor.Render())

	case "input":
		if a.editor == nil || len(args) < 1 {
			fmt.Println("usage: input FIELD VALUE")
			return
		}
		value := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		if err := a.editor.SetInput(args[0], value); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(a.editor.Render())

	case "save":
		if a.editor == nil || len(args) != 1 {
			fmt.Println("usage: save FIELD")
			return
		}
		if err := a.editor.Submit(ctx, args[0]); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(a.editor.Render())

	case "esc":
		if a.editor == nil || len(args) != 1 {
			fmt.Println("usage: esc FIELD")
			return
		}
		if err := a.editor.Cancel(args[0]); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Print(a.editor.Render())

	default:
		fmt.Printf("unknown command %q (type 'help')\n", cmd)
	}
}

// openProfile builds the inline editor for a profile page. The fields and
// their current values come from the command line, standing in for the
// values the server renders into the page.
func (a *app) openProfile(args []string) {
	if len(args) < 2 {
		fmt.Println("usage: profile patient|doctor ID field=value ...")
		return
	}

	entity := model.EntityKind(args[0])
	var fields []editor.Field
	for _, arg := range args[2:] {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Printf("bad field %q; expected field=value\n", arg)
			return
		}
		fields = append(fields, editor.Field{Name: name, Value: value})
	}

	ed, err := editor.New(editor.Config{
		Entity:     entity,
		EntityID:   args[1],
		DateFields: []string{"date_of_birth", "date_of_expiry"},
	}, a.client, fields, alertPrint, a.logger)
	if err != nil {
		fmt.Println(err)
		return
	}
	a.editor = ed
	fmt.Print(ed.Render())
}

func printHelp() {
	fmt.Println(`dashboard:
  cal                render calendar and day list
  prev / next        page the calendar by one month
  day N              select day N and fetch its appointments
  filter QUERY       filter the day list (empty shows all)
  cancel ID          cancel an appointment

search page:
  search QUERY       server-side appointment search
  clear              clear the query (restores the initial listing)
  list               render the current listing

doctor view:
  detail ID          fetch appointment + patient details
  panel              render the detail panels

profile editing:
  profile patient|doctor ID field=value ...
  edit FIELD         start editing a field
  input FIELD VALUE  type into the field
  save FIELD         save (Enter)
  esc FIELD          cancel (Escape)

quit`)
}
