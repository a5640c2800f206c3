package timeparse

import (
	"regexp"
	"strings"
	"time"
)

// layout matches the "Month Day, Year HH:MM" grammar the site uses.
const layout = "January 2, 2006 15:04"

var (
	// Zone suffix of the shape "/ 09:30 IST". The zone marker goes,
	// the clock time stays for the grammar below to pick up.
	istSuffix = regexp.MustCompile(`(/\s*\d{2}:\d{2})\s*IST`)

	// Date component plus optional time, e.g. "September 5, 2025/ 09:30".
	dateTime = regexp.MustCompile(`([A-Za-z]+\s+\d{1,2},\s+\d{4})/?\s*(\d{2}:\d{2})?`)
)

// Parse normalizes a raw schedule string into a time.Time. The second
// return value reports whether a timestamp could be extracted; an
// unparseable string is a data condition, not a pipeline fault, so
// Parse never returns an error.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	raw = istSuffix.ReplaceAllString(raw, "$1")

	match := dateTime.FindStringSubmatch(raw)
	if match == nil {
		return time.Time{}, false
	}

	datePart := match[1]
	timePart := match[2]
	if timePart == "" {
		timePart = "00:00"
	}

	ts, err := time.Parse(layout, datePart+" "+timePart)
	if err != nil {
		return time.Time{}, false
	}

	return ts, true
}
