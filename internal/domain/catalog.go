package domain

import (
	"sort"
	"time"
)

// dayLayout keys launches by UTC calendar date.
const dayLayout = "2006-01-02"

// Catalog indexes the launch archive for calendar browsing. It is immutable
// once built and safe for concurrent readers.
type Catalog struct {
	launches []Launch // newest first
	byDay    map[string][]Launch
	byID     map[int]Launch
}

// CalendarDay is one day cell of a month calendar.
type CalendarDay struct {
	Day       int   `json:"day"`
	LaunchIDs []int `json:"launch_ids"`
}

// MonthCalendar is the grid for one month. LeadingBlanks is the weekday of the
// first day (Sunday = 0), i.e. the number of empty cells before it.
type MonthCalendar struct {
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	LeadingBlanks int           `json:"leading_blanks"`
	Days          []CalendarDay `json:"days"`
}

// NewCatalog builds a catalog from an unordered launch list.
func NewCatalog(launches []Launch) *Catalog {
	sorted := make([]Launch, len(launches))
	copy(sorted, launches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LaunchDate.After(sorted[j].LaunchDate)
	})

	c := &Catalog{
		launches: sorted,
		byDay:    make(map[string][]Launch),
		byID:     make(map[int]Launch, len(sorted)),
	}
	// Iterate oldest first so each day's list is ascending.
	for i := len(sorted) - 1; i >= 0; i-- {
		l := sorted[i]
		key := DayKey(l.LaunchDate)
		c.byDay[key] = append(c.byDay[key], l)
		c.byID[l.ID] = l
	}
	return c
}

// DayKey formats the UTC calendar date of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Len reports the number of launches.
func (c *Catalog) Len() int {
	return len(c.launches)
}

// Launches returns all launches, newest first.
func (c *Catalog) Launches() []Launch {
	out := make([]Launch, len(c.launches))
	copy(out, c.launches)
	return out
}

// Latest returns the newest launch.
func (c *Catalog) Latest() (Launch, bool) {
	if len(c.launches) == 0 {
		return Launch{}, false
	}
	return c.launches[0], true
}

// Launch looks up a launch by ID.
func (c *Catalog) Launch(id int) (Launch, bool) {
	l, ok := c.byID[id]
	return l, ok
}

// Years returns the distinct launch years, most recent first.
func (c *Catalog) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, l := range c.launches {
		y := l.LaunchDate.UTC().Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// LaunchesOn returns the launches on the UTC date of day, earliest first.
func (c *Catalog) LaunchesOn(day time.Time) []Launch {
	src := c.byDay[DayKey(day)]
	out := make([]Launch, len(src))
	copy(out, src)
	return out
}

// Month lays out the calendar grid for a month. month must be 1–12.
func (c *Catalog) Month(year int, month time.Month) MonthCalendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cal := MonthCalendar{
		Year:          year,
		Month:         int(month),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDay, daysInMonth),
	}
	for d := 1; d <= daysInMonth; d++ {
		day := CalendarDay{Day: d, LaunchIDs: []int{}}
		for _, l := range c.byDay[DayKey(first.AddDate(0, 0, d-1))] {
			day.LaunchIDs = append(day.LaunchIDs, l.ID)
		}
		cal.Days[d-1] = day
	}
	return cal
}
