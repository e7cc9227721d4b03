package planner

import (
	"math"
	"time"

	"github.com/fentz26/daybook/internal/models"
)

// moodWindow is how many recent mood entries feed the distribution.
const moodWindow = 30

// DayCount is the number of tasks completed on one day.
type DayCount struct {
	Date      models.Date
	Completed int
	IsToday   bool
}

// Stats summarizes progress for the stats screen.
type Stats struct {
	Total        int
	Completed    int
	Pending      int
	Points       int
	Streak       int
	Week         []DayCount
	Moods        map[models.Mood]int
	MoodTotal    int
	Categories   map[models.Category]int
	Productivity int
}

// Stats computes the summary from the current state.
func (s *State) Stats() Stats {
	s.lock()
	defer s.unlock()
	return ComputeStats(s.Tasks.items, s.Moods.items, s.Ledger.points, s.Ledger.streak, s.clock.Now())
}

// ComputeStats builds the summary. The week runs from Monday up to and
// including today; a completed task counts on the day of CompletedAt,
// or of its due date when CompletedAt is missing.
func ComputeStats(tasks []models.Task, moods []models.MoodEntry, points, streak int, now time.Time) Stats {
	st := Stats{
		Total:      len(tasks),
		Points:     points,
		Streak:     streak,
		Moods:      make(map[models.Mood]int, len(models.Moods)),
		Categories: make(map[models.Category]int, len(models.Categories)),
	}
	for _, m := range models.Moods {
		st.Moods[m] = 0
	}
	for _, c := range models.Categories {
		st.Categories[c] = 0
	}

	today := models.Today(now)
	start := weekStart(today)
	perDay := map[models.Date]int{}
	for _, t := range tasks {
		if !t.Completed {
			st.Pending++
			continue
		}
		st.Completed++
		if t.Category.Valid() {
			st.Categories[t.Category]++
		}
		day := t.DueDate
		if t.CompletedAt != nil {
			day = models.DateOf(t.CompletedAt.Local())
		}
		perDay[day]++
	}
	for d := start; !today.Before(d); d = d.AddDays(1) {
		st.Week = append(st.Week, DayCount{Date: d, Completed: perDay[d], IsToday: d == today})
	}

	for i, m := range moods {
		if i == moodWindow {
			break
		}
		if m.Mood.Valid() {
			st.Moods[m.Mood]++
			st.MoodTotal++
		}
	}

	st.Productivity = productivity(st.Completed, st.Total, streak, points)
	return st
}

// weekStart returns the Monday on or before d.
func weekStart(d models.Date) models.Date {
	offset := (int(d.Time(time.UTC).Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func productivity(done, total, streak, points int) int {
	if total < 1 {
		total = 1
	}
	score := float64(done)/float64(total)*50 + float64(streak)*5 + float64(points)/100
	return int(math.Min(100, math.Floor(score+0.5)))
}
