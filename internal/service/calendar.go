package service

import (
	"fmt"
	"time"

	"github.com/salifshaikh/portfolio/internal/github"
	"github.com/salifshaikh/portfolio/internal/model"
)

const dateLayout = "2006-01-02"

// CalendarResult is the outcome of the best-effort calendar step.
//
// Err is informational only: when it is set, Days is empty and Total is 0,
// and the aggregation still succeeds.
type CalendarResult struct {
	Days  []model.ContributionDay
	Total int
	Err   error
}

// EmptyCalendar is the substitute result used when the calendar fetch fails.
func EmptyCalendar(err error) CalendarResult {
	return CalendarResult{Days: []model.ContributionDay{}, Err: err}
}

// FlattenCalendar turns GitHub's week/day grid into one chronological run of
// days with no gaps. Dates missing between the first and the last reported
// day are filled in with a count of 0. Total is the sum of the daily counts.
//
// A malformed date or a negative count makes the whole calendar unusable,
// which is reported through Err like any other calendar failure.
func FlattenCalendar(cal *github.ContributionCalendar) CalendarResult {
	if cal == nil {
		return EmptyCalendar(fmt.Errorf("calendar: no data"))
	}

	counts := make(map[time.Time]int)
	var first, last time.Time

	for _, week := range cal.Weeks {
		for _, day := range week.ContributionDays {
			d, err := time.Parse(dateLayout, day.Date)
			if err != nil {
				return EmptyCalendar(fmt.Errorf("calendar: bad date %q: %w", day.Date, err))
			}
			if day.ContributionCount < 0 {
				return EmptyCalendar(fmt.Errorf("calendar: negative count on %s", day.Date))
			}
			if len(counts) == 0 || d.Before(first) {
				first = d
			}
			if len(counts) == 0 || d.After(last) {
				last = d
			}
			counts[d] += day.ContributionCount
		}
	}

	days := []model.ContributionDay{}
	total := 0
	if len(counts) == 0 {
		return CalendarResult{Days: days}
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		n := counts[d]
		days = append(days, model.ContributionDay{Date: d.Format(dateLayout), Count: n})
		total += n
	}

	return CalendarResult{Days: days, Total: total}
}
