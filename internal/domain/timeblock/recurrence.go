package timeblock

import "time"

// ExpandRecurring deterministically expands block into the concrete dates it
// covers within [rangeStart, rangeEnd] (inclusive). It is a pure function of
// its inputs:
//   - daily blocks cover every day in range
//   - weekly blocks cover the same weekday as block.Date
//   - monthly blocks cover the same day-of-month, skipping months that do
//     not have that day
//
// Expansion never starts before block.Date and is bounded by the earlier of
// block.RecurringEndDate and rangeEnd. A non-recurring block expands to its
// own date when it falls inside the range.
func ExpandRecurring(block TimeBlock, rangeStart, rangeEnd time.Time) []time.Time {
	start := truncateDate(rangeStart)
	end := truncateDate(rangeEnd)
	if end.Before(start) {
		return nil
	}

	base := truncateDate(block.Date)

	if !block.IsRecurring || block.RecurringPattern == nil {
		if !base.Before(start) && !base.After(end) {
			return []time.Time{base}
		}
		return nil
	}

	if base.After(start) {
		start = base
	}
	if block.RecurringEndDate != nil {
		recEnd := truncateDate(*block.RecurringEndDate)
		if recEnd.Before(end) {
			end = recEnd
		}
	}
	if end.Before(start) {
		return nil
	}

	var dates []time.Time

	switch *block.RecurringPattern {
	case RecurringDaily:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}

	case RecurringWeekly:
		d := start
		for d.Weekday() != base.Weekday() {
			d = d.AddDate(0, 0, 1)
		}
		for ; !d.After(end); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}

	case RecurringMonthly:
		day := base.Day()
		for i := 0; ; i++ {
			monthStart := time.Date(base.Year(), base.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			if monthStart.After(end) {
				break
			}
			candidate := time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
			if candidate.Month() != monthStart.Month() {
				// Month has no such day (e.g. the 31st in February)
				continue
			}
			if candidate.Before(start) || candidate.After(end) {
				continue
			}
			dates = append(dates, candidate)
		}
	}

	return dates
}

// Occurs reports whether block covers the given calendar date.
func Occurs(block TimeBlock, date time.Time) bool {
	d := truncateDate(date)
	return len(ExpandRecurring(block, d, d)) > 0
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
