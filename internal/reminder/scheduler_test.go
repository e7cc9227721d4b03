package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fentz26/daybook/internal/connectors"
	"github.com/fentz26/daybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockConnector records every executed command.
type mockConnector struct {
	mu    sync.Mutex
	calls [][]string
	fail  error
	exit  int
}

func (m *mockConnector) Execute(ctx context.Context, cmd string, args []string) (*connectors.ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	m.calls = append(m.calls, append([]string{cmd}, args...))
	return &connectors.ExecResult{Command: cmd, Args: args, ExitCode: m.exit}, nil
}

func (m *mockConnector) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.calls...)
}

type staticSource []models.CalendarEvent

func (s staticSource) DueReminders(time.Time) []models.CalendarEvent {
	return s
}

var standup = models.CalendarEvent{
	ID:        "ev1",
	Title:     "Standup",
	Date:      models.Date{Year: 2024, Month: time.May, Day: 15},
	StartTime: "09:30",
	Location:  "Room 4",
	Reminder:  15,
}

func TestPoll_NotifiesOnce(t *testing.T) {
	conn := &mockConnector{}
	sch := New(staticSource{standup}, conn, nil, nil)

	assert.Equal(t, 1, sch.Poll(context.Background()))
	assert.Equal(t, 0, sch.Poll(context.Background()))

	calls := conn.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"notify-send", "Standup", "Starts at 09:30 · Room 4"}, calls[0])
}

func TestPoll_RescheduledEventNotifiesAgain(t *testing.T) {
	conn := &mockConnector{}
	src := staticSource{standup}
	sch := New(src, conn, nil, nil)
	sch.Poll(context.Background())

	moved := standup
	moved.StartTime = "10:00"
	sch.source = staticSource{moved}
	assert.Equal(t, 1, sch.Poll(context.Background()))
}

func TestPoll_Disabled(t *testing.T) {
	conn := &mockConnector{}
	sch := New(staticSource{standup}, conn, nil, func() bool { return false })

	assert.Equal(t, 0, sch.Poll(context.Background()))
	assert.Empty(t, conn.Calls())
}

func TestPoll_FailureIsRetried(t *testing.T) {
	conn := &mockConnector{fail: errors.New("no display")}
	sch := New(staticSource{standup}, conn, nil, nil)
	assert.Equal(t, 0, sch.Poll(context.Background()))

	conn.mu.Lock()
	conn.fail = nil
	conn.exit = 1
	conn.mu.Unlock()
	assert.Equal(t, 0, sch.Poll(context.Background()), "non-zero exit is a failure")

	conn.mu.Lock()
	conn.exit = 0
	conn.mu.Unlock()
	assert.Equal(t, 1, sch.Poll(context.Background()))
}

func TestRender(t *testing.T) {
	args := Render([]string{"-title", "{title}", "-message", "{body}"}, models.CalendarEvent{Title: "Gym", StartTime: "18:00"})
	assert.Equal(t, []string{"-title", "Gym", "-message", "Starts at 18:00"}, args)
}

func TestRenderFor_OsascriptEscapesQuotes(t *testing.T) {
	ev := models.CalendarEvent{Title: `Party" & do shell script "id" & "`, StartTime: "20:00", Location: `C:\temp`}
	args := RenderFor("osascript", []string{"-e", `display notification "{body}" with title "{title}"`}, ev)

	assert.Equal(t, []string{"-e", `display notification "Starts at 20:00 · C:\\temp" with title "Party\" & do shell script \"id\" & \""`}, args)
	assert.Equal(t, Render([]string{"{title}"}, ev), RenderFor("notify-send", []string{"{title}"}, ev))
}

func TestStartStop(t *testing.T) {
	conn := &mockConnector{}
	sch := New(staticSource{standup}, conn, &Config{Interval: 10 * time.Millisecond, Command: "notify-send", Args: []string{"{title}"}}, nil)

	sch.Start()
	require.Eventually(t, func() bool { return len(conn.Calls()) == 1 }, time.Second, 5*time.Millisecond)
	sch.Stop()

	assert.Len(t, conn.Calls(), 1)
}
