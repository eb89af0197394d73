// Package timezone converts between UTC instants and the fixed UTC+3 wall clock
// the SmartSpace UI displays. The offset is constant; daylight saving is not
// modelled.
package timezone

import (
	"fmt"
	"time"
)

// Offset is the fixed distance between UTC and Beirut wall-clock time.
const Offset = 180 * time.Minute

// InputLayout is the layout used by date/time input fields.
const InputLayout = "2006-01-02T15:04"

// DisplayLayout is the layout used for read-only display.
const DisplayLayout = "Mon 02 Jan 2006, 15:04"

// Beirut is the fixed-offset zone used for rendering.
var Beirut = time.FixedZone("UTC+3", int(Offset/time.Second))

// ToBeirut shifts a UTC instant to its Beirut wall-clock value.
func ToBeirut(utc time.Time) time.Time {
	return utc.In(Beirut)
}

// ToUTC converts a Beirut wall-clock value back to the UTC instant. Only the
// wall-clock fields of local are used; its location is ignored.
func ToUTC(local time.Time) time.Time {
	wall := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	return wall.Add(-Offset)
}

// FormatInput renders a UTC instant for a date/time input field.
func FormatInput(utc time.Time) string {
	if utc.IsZero() {
		return ""
	}
	return ToBeirut(utc).Format(InputLayout)
}

// ParseInput reads a date/time input value as Beirut wall-clock and returns UTC.
func ParseInput(value string) (time.Time, error) {
	local, err := time.ParseInLocation(InputLayout, value, Beirut)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q: %w", value, err)
	}
	return ToUTC(local), nil
}

// FormatDisplay renders a UTC instant for display.
func FormatDisplay(utc time.Time) string {
	if utc.IsZero() {
		return ""
	}
	return ToBeirut(utc).Format(DisplayLayout)
}
