package budget

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// NormalizeMonth validates a month string and returns its canonical
// zero-padded "YYYY-MM" form. Anything but a 4-digit year, a dash, and a
// 2-digit month between 01 and 12 is rejected.
func NormalizeMonth(month string) (string, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthFormat, month)
	}
	return t.Format(monthLayout), nil
}

// monthRange enumerates every calendar month from fromMonth to toMonth
// inclusive, wrapping year boundaries.
func monthRange(fromMonth, toMonth string) ([]string, error) {
	from, err := NormalizeMonth(fromMonth)
	if err != nil {
		return nil, err
	}
	to, err := NormalizeMonth(toMonth)
	if err != nil {
		return nil, err
	}
	start, _ := time.Parse(monthLayout, from)
	end, _ := time.Parse(monthLayout, to)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from, to)
	}

	var months []string
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		months = append(months, cur.Format(monthLayout))
	}
	return months, nil
}

// monthsOfYear returns the twelve month keys of a calendar year, in order.
func monthsOfYear(year int) []string {
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf("%04d-%02d", year, m))
	}
	return months
}
