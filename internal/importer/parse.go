package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelEpochOffsetDays is the spreadsheet serial number of 1970-01-01.
// Serial dates count days from the 1900 epoch, so a cell value of 45000
// means 45000-25569 days after Unix epoch.
const excelEpochOffsetDays = 25569

// maxSerialDays caps serial date conversion around year 9999. Anything
// larger is a stray number, not a date.
const maxSerialDays = 2958465

// Pre-compiled regexes for cell cleanup (avoids recompilation per row).
var (
	nonNumericRe = regexp.MustCompile(`[^0-9.]`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
)

// monthAbbrevs is the fixed three-letter month table for DD-MMM-YY dates.
var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// dateLayouts are tried in order for free-form textual dates.
// Day-first layouts come before ISO since the fleet's spreadsheets are
// en-GB formatted.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate converts a raw spreadsheet cell to a calendar date.
//
// Three encodings are accepted: a numeric spreadsheet serial day count,
// a free-form textual date matching one of dateLayouts, and the
// DD-MMM-YY / DD-MMM-YYYY form with two-digit years expanded to 20YY.
// Anything else fails with ErrInvalidDate carrying the raw value.
func ParseDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC().Truncate(24 * time.Hour), nil
	case float64:
		return dateFromSerial(v, raw)
	case int:
		return dateFromSerial(float64(v), raw)
	case int64:
		return dateFromSerial(float64(v), raw)
	case string:
		return dateFromString(v)
	default:
		return time.Time{}, cellError(ErrInvalidDate, raw)
	}
}

// dateFromSerial converts an Excel serial day count to a UTC date.
func dateFromSerial(days float64, raw any) (time.Time, error) {
	if math.IsNaN(days) || math.IsInf(days, 0) || days <= 0 || days > maxSerialDays {
		return time.Time{}, cellError(ErrInvalidDate, raw)
	}
	secs := math.Round((days - excelEpochOffsetDays) * 86400)
	t := time.Unix(int64(secs), 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func dateFromString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, cellError(ErrInvalidDate, s)
	}

	if t, err := parseDayMonthAbbrev(s); err == nil {
		return t, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	// A cell of bare digits is a serial day count that arrived as text.
	if digitsOnlyRe.MatchString(s) {
		if days, err := strconv.ParseFloat(s, 64); err == nil {
			return dateFromSerial(days, s)
		}
	}

	return time.Time{}, cellError(ErrInvalidDate, s)
}

// parseDayMonthAbbrev handles "15-Jan-24" and "15-Jan-2024".
// The day must be 1-31, the month must be in the abbreviation table, and
// the assembled date must survive calendar validation (no 31-Feb).
func parseDayMonthAbbrev(s string) (time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, cellError(ErrInvalidDate, s)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, cellError(ErrInvalidDate, s)
	}

	month, ok := monthAbbrevs[strings.ToLower(strings.TrimSpace(parts[1]))]
	if !ok {
		return time.Time{}, cellError(ErrInvalidDate, s)
	}

	yearStr := strings.TrimSpace(parts[2])
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, cellError(ErrInvalidDate, s)
	}
	switch len(yearStr) {
	case 2:
		year += 2000
	case 4:
		// use as-is
	default:
		return time.Time{}, cellError(ErrInvalidDate, s)
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, cellError(ErrInvalidDate, s)
	}
	return t, nil
}

// ParseKilometer coerces a raw cell to a non-negative odometer reading.
//
// Numeric cells pass through directly. Strings are stripped of everything
// except digits and the decimal point first, so "5,000 km" and " 12345 "
// both parse. Negative or non-finite values fail with ErrInvalidKilometer.
func ParseKilometer(raw any) (int, error) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0, cellError(ErrInvalidKilometer, raw)
		}
		return int(v), nil
	case int:
		if v < 0 {
			return 0, cellError(ErrInvalidKilometer, raw)
		}
		return v, nil
	case int64:
		if v < 0 {
			return 0, cellError(ErrInvalidKilometer, raw)
		}
		return int(v), nil
	case string:
		cleaned := nonNumericRe.ReplaceAllString(v, "")
		if cleaned == "" {
			return 0, cellError(ErrInvalidKilometer, v)
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, cellError(ErrInvalidKilometer, v)
		}
		return int(f), nil
	default:
		return 0, cellError(ErrInvalidKilometer, raw)
	}
}

// collapseWhitespace trims a free-text cell and squeezes runs of
// whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
