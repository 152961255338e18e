package conversation

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// Date-range parsing errors. Handlers translate these into re-prompts.
var (
	ErrDateFormat  = errors.New("could not find two dates in the input")
	ErrEmptyRange  = errors.New("end date is not after start date")
	ErrStayTooLong = errors.New("stay exceeds the maximum length")
	ErrDateInvalid = errors.New("date does not exist")
)

// datePattern matches one dd/mm/yyyy token, tolerating "-" or "." as the
// separator inside the date.
var datePattern = regexp.MustCompile(`\b(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})\b`)

// ParseDateRange extracts a stay range from free text. Accepted shapes
// include "15/08/2025 - 17/08/2025", "15/08/2025 al 17/08/2025",
// "del 15/08/2025 al 17/08/2025" and "15-08-2025 a 17-08-2025": any text
// containing exactly two date tokens in day-first order. The range is
// half-open [start, end); end must be after start and the stay no longer
// than maxStayNights nights. Dates are returned at midnight UTC.
func ParseDateRange(input string, maxStayNights int) (time.Time, time.Time, error) {
	matches := datePattern.FindAllStringSubmatch(input, -1)
	if len(matches) != 2 {
		return time.Time{}, time.Time{}, ErrDateFormat
	}

	start, err := parseDateToken(matches[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDateToken(matches[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrEmptyRange
	}
	nights := int(end.Sub(start).Hours() / 24)
	if maxStayNights > 0 && nights > maxStayNights {
		return time.Time{}, time.Time{}, ErrStayTooLong
	}
	return start, end, nil
}

func parseDateToken(match []string) (time.Time, error) {
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (32/01 becomes 01/02); reject that.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, ErrDateInvalid
	}
	return t, nil
}
