package domain

import "time"

// isoWeekday returns 1 (Monday) through 7 (Sunday).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// at returns the instant at tod on the local calendar day of t shifted by days.
// time.Date normalizes the day overflow and resolves DST through the zone.
func at(t time.Time, days int, tod TimeOfDay) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+days, tod.Hour, tod.Minute, 0, 0, t.Location())
}

// IsOpen reports whether the exchange is within regular trading hours at now.
// Opening and closing minutes are both considered open.
func (e Exchange) IsOpen(now time.Time) bool {
	local := now.In(e.Location())
	if isoWeekday(local) >= 6 {
		return false
	}
	open := at(local, 0, e.Opens)
	closing := at(local, 0, e.Closes)
	return !local.Before(open) && !local.After(closing)
}

// NextOpen returns the next opening instant at or after now.
func (e Exchange) NextOpen(now time.Time) time.Time {
	local := now.In(e.Location())
	dow := isoWeekday(local)
	todayOpen := at(local, 0, e.Opens)

	switch {
	case dow >= 6 || (dow == 5 && local.After(todayOpen)):
		// weekend, or Friday after the open: next open is Monday
		return at(local, 8-dow, e.Opens)
	case local.After(todayOpen):
		return at(local, 1, e.Opens)
	default:
		return todayOpen
	}
}

// SecondsUntilNextOpen returns the whole seconds from now until NextOpen.
// It is zero when now is exactly an opening instant.
func (e Exchange) SecondsUntilNextOpen(now time.Time) int64 {
	return e.NextOpen(now).Unix() - now.Unix()
}

// LastClose returns the most recent closing instant relative to now. On
// weekdays before the close this is the previous calendar day's close; on
// weekends it is Friday's close.
func (e Exchange) LastClose(now time.Time) time.Time {
	local := now.In(e.Location())
	dow := isoWeekday(local)
	todayClose := at(local, 0, e.Closes)

	if dow < 6 {
		if !local.Before(todayClose) {
			return todayClose
		}
		return at(local, -1, e.Closes)
	}
	return at(local, -(dow - 5), e.Closes)
}

// TimestampOfLastClose returns LastClose as unix seconds.
func (e Exchange) TimestampOfLastClose(now time.Time) int64 {
	return e.LastClose(now).Unix()
}
