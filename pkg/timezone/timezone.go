// Package timezone resolves IANA timezone identifiers into wall-clock
// strings and UTC offsets. The IANA database is embedded via time/tzdata so
// results do not depend on the host's zoneinfo installation.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// ErrUnknownTimezone is returned for identifiers the IANA database does not
// recognize.
var ErrUnknownTimezone = errors.New("unknown timezone identifier")

// Info describes a timezone at a single instant.
type Info struct {
	Timezone    string    `json:"timezone"`
	Offset      float64   `json:"offset"` // signed UTC offset in fractional hours
	CurrentTime time.Time `json:"currentTime"`
	DisplayName string    `json:"displayName"`
}

// Load resolves an IANA identifier, mapping failures to ErrUnknownTimezone.
// The empty string is rejected rather than defaulting to UTC as
// time.LoadLocation would.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// Validate reports whether name is a recognized IANA identifier.
func Validate(name string) error {
	_, err := Load(name)
	return err
}

// FormatTime renders t as a 12-hour clock time (hh:mm:ss AM/PM) local to tz.
func FormatTime(t time.Time, tz string) (string, error) {
	loc, err := Load(tz)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format("03:04:05 PM"), nil
}

// FormatDate renders t as an abbreviated weekday, month and day-of-month
// local to tz, e.g. "Tue, Jan 2".
func FormatDate(t time.Time, tz string) (string, error) {
	loc, err := Load(tz)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format("Mon, Jan 2"), nil
}

// OffsetAt returns the signed UTC offset of tz in fractional hours at the
// instant t, read directly from the zone database rather than derived from
// rendered wall-clock strings, so DST transitions are handled correctly.
func OffsetAt(t time.Time, tz string) (float64, error) {
	loc, err := Load(tz)
	if err != nil {
		return 0, err
	}
	_, seconds := t.In(loc).Zone()
	return float64(seconds) / 3600, nil
}

// Offset returns the current UTC offset of tz in fractional hours.
func Offset(tz string) (float64, error) {
	return OffsetAt(time.Now(), tz)
}

// GetInfo composes the offset and display name for tz at the current
// instant. DisplayName is the raw identifier with underscores replaced by
// spaces; it is cosmetic, not a locale-aware city name.
func GetInfo(tz string) (*Info, error) {
	now := time.Now()
	offset, err := OffsetAt(now, tz)
	if err != nil {
		return nil, err
	}
	return &Info{
		Timezone:    tz,
		Offset:      offset,
		CurrentTime: now,
		DisplayName: strings.ReplaceAll(tz, "_", " "),
	}, nil
}
