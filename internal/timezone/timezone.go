package timezone

import "time"

// DefaultTimezone is used for display when none is configured. Stored and
// transmitted times are always UTC.
const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Normalize returns t as UTC truncated to whole seconds, the precision the
// wire format carries.
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func Now() time.Time {
	return Normalize(time.Now())
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
