// Package format renders timestamps and durations the way the user's
// display settings ask for.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/cto-ai/clif/internal/domain"
)

// Clock formats times using the display_date and display_time settings.
// A nil provider uses the defaults.
type Clock struct {
	date string
	hour string
}

// NewClock reads the display settings once.
func NewClock(settings domain.SettingsProvider) Clock {
	c := Clock{date: "yyyy-mm-dd", hour: "24h"}
	if settings == nil {
		return c
	}
	if v, ok := settings.Get("display_date"); ok && v != "" {
		c.date = v
	}
	if v, ok := settings.Get("display_time"); ok && v != "" {
		c.hour = v
	}
	return c
}

// DateTime formats date and minutes, e.g. "2024-01-23 15:04".
func (c Clock) DateTime(t time.Time) string {
	return c.Date(t) + " " + c.Time(t)
}

// DateTimeShort drops the year, e.g. "01-23 15:04".
func (c Clock) DateTimeShort(t time.Time) string {
	return c.DateShort(t) + " " + c.Time(t)
}

// Full formats date and time with seconds.
func (c Clock) Full(t time.Time) string {
	return c.Date(t) + " " + c.TimeFull(t)
}

func (c Clock) Date(t time.Time) string {
	return t.Format(c.dateLayout())
}

func (c Clock) DateShort(t time.Time) string {
	return t.Format(c.dateLayoutShort())
}

func (c Clock) Time(t time.Time) string {
	if c.hour == "12h" {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

func (c Clock) TimeFull(t time.Time) string {
	if c.hour == "12h" {
		return t.Format("3:04:05 PM")
	}
	return t.Format("15:04:05")
}

func (c Clock) dateLayout() string {
	switch c.date {
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// custom Go layout
		return c.date
	}
}

func (c Clock) dateLayoutShort() string {
	switch c.date {
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	}

	short := c.date
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-")
	if short == "" {
		return "Jan 02"
	}
	return short
}

// Duration renders d rounded for humans: "850ms", "2.4s", "3m05s",
// "1h02m05s".
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return "-"
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	}

	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
