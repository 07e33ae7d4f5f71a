package services

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// ResolveDateRange turns a date-range token into inclusive calendar-day
// bounds, each at midnight local time. A nil bound means unbounded on that
// side. Recognized tokens:
//
//	today, this_week (Monday-anchored), this_month, last_7_days
//	a single ISO date "2006-01-02"
//	two ISO dates joined by " to "
//
// Anything else, including a malformed date, resolves to (nil, nil). The
// leniency is deliberate: a bad filter widens the result set instead of
// failing the request.
func ResolveDateRange(token string, now time.Time) (start, end *time.Time) {
	token = strings.TrimSpace(token)
	today := truncateToDay(now)

	switch token {
	case "":
		return nil, nil
	case "today":
		return &today, &today
	case "this_week":
		// time.Weekday counts Sunday as 0; shift so Monday opens the week.
		offset := (int(now.Weekday()) + 6) % 7
		s := today.AddDate(0, 0, -offset)
		return &s, &today
	case "this_month":
		s := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &s, &today
	case "last_7_days":
		s := today.AddDate(0, 0, -6)
		return &s, &today
	}

	if first, second, found := strings.Cut(token, " to "); found {
		return ResolveDates(first, second, now.Location())
	}

	if d, err := time.ParseInLocation(isoDateLayout, token, now.Location()); err == nil {
		e := d
		return &d, &e
	}
	return nil, nil
}

// ResolveDates parses explicit start and end ISO dates. Each side that fails
// to parse is left unbounded rather than rejected.
func ResolveDates(startStr, endStr string, loc *time.Location) (start, end *time.Time) {
	if d, err := time.ParseInLocation(isoDateLayout, strings.TrimSpace(startStr), loc); err == nil {
		start = &d
	}
	if d, err := time.ParseInLocation(isoDateLayout, strings.TrimSpace(endStr), loc); err == nil {
		end = &d
	}
	return start, end
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
