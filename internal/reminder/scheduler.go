// Package reminder sends desktop notifications ahead of calendar events.
package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fentz26/daybook/internal/connectors"
	"github.com/fentz26/daybook/internal/models"
)

// Config defines the scheduler configuration.
type Config struct {
	// Interval is how often due reminders are checked.
	Interval time.Duration
	// Command is the notifier program.
	Command string
	// Args are passed to Command with {title} and {body} replaced.
	Args []string
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		Interval: 30 * time.Second,
		Command:  "notify-send",
		Args:     []string{"{title}", "{body}"},
	}
}

// Source lists the events whose reminder is due at now.
type Source interface {
	DueReminders(now time.Time) []models.CalendarEvent
}

// Scheduler polls a Source and notifies each due event once.
type Scheduler struct {
	source    Source
	connector connectors.Connector
	config    *Config
	now       func() time.Time
	enabled   func() bool

	mu       sync.Mutex
	notified map[string]bool

	// Control
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a new scheduler. enabled is consulted before every poll;
// nil means always enabled.
func New(src Source, conn connectors.Connector, cfg *Config, enabled func() bool) *Scheduler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		source:    src,
		connector: conn,
		config:    cfg,
		now:       time.Now,
		enabled:   enabled,
		notified:  make(map[string]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the scheduler loop.
func (sch *Scheduler) Start() {
	sch.wg.Add(1)
	go sch.loop()
	log.Println("Reminder scheduler started")
}

// Stop gracefully stops the scheduler.
func (sch *Scheduler) Stop() {
	sch.cancel()
	sch.wg.Wait()
	log.Println("Reminder scheduler stopped")
}

// loop polls on every tick until stopped.
func (sch *Scheduler) loop() {
	defer sch.wg.Done()

	ticker := time.NewTicker(sch.config.Interval)
	defer ticker.Stop()

	sch.Poll(sch.ctx)
	for {
		select {
		case <-sch.ctx.Done():
			return
		case <-ticker.C:
			sch.Poll(sch.ctx)
		}
	}
}

// Poll sends every due reminder not yet sent by this scheduler and
// returns how many were delivered.
func (sch *Scheduler) Poll(ctx context.Context) int {
	if !sch.enabled() {
		return 0
	}

	now := sch.now()
	sent := 0
	for _, ev := range sch.source.DueReminders(now) {
		key := notifyKey(ev)

		sch.mu.Lock()
		done := sch.notified[key]
		sch.mu.Unlock()
		if done {
			continue
		}

		if err := sch.notify(ctx, ev); err != nil {
			log.Printf("Error sending reminder for event %s: %v", ev.ID, err)
			continue
		}

		sch.mu.Lock()
		sch.notified[key] = true
		sch.mu.Unlock()
		sent++
		log.Printf("Sent reminder for event %s (%s)", ev.ID, ev.Title)
	}
	return sent
}

func (sch *Scheduler) notify(ctx context.Context, ev models.CalendarEvent) error {
	args := RenderFor(sch.config.Command, sch.config.Args, ev)
	res, err := sch.connector.Execute(ctx, sch.config.Command, args)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%s exited with %d: %s", sch.config.Command, res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

// notifyKey changes when the event is moved, so a rescheduled event is
// reminded again.
func notifyKey(ev models.CalendarEvent) string {
	return ev.ID + "@" + ev.Date.String() + "T" + ev.StartTime
}

// Render substitutes {title} and {body} in args for ev.
func Render(args []string, ev models.CalendarEvent) []string {
	return render(args, ev, func(s string) string { return s })
}

// RenderFor is Render with the values quoted for command. osascript
// places them inside AppleScript string literals.
func RenderFor(command string, args []string, ev models.CalendarEvent) []string {
	if command == "osascript" {
		return render(args, ev, appleQuote)
	}
	return Render(args, ev)
}

var appleEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func appleQuote(s string) string {
	return appleEscaper.Replace(s)
}

func render(args []string, ev models.CalendarEvent, quote func(string) string) []string {
	body := "Starts at " + ev.StartTime
	if ev.Location != "" {
		body += " · " + ev.Location
	}
	r := strings.NewReplacer("{title}", quote(ev.Title), "{body}", quote(body))

	out := make([]string, len(args))
	for i, a := range args {
		out[i] = r.Replace(a)
	}
	return out
}
