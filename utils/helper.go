package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"
const MonthLayout = "2006-01"

var validate = validator.New()

// ValidateStruct runs validator tags on rows that bypass gin binding
// (spreadsheet imports, seeders).
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ParseDate parses a YYYY-MM-DD string. ok is false for blank or
// malformed values.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MonthBounds returns the first and last calendar day of a YYYY-MM month.
func MonthBounds(reportMonth string) (time.Time, time.Time, bool) {
	start, err := time.Parse(MonthLayout, strings.TrimSpace(reportMonth))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end := start.AddDate(0, 1, -1)
	return start, end, true
}

func CurrentReportMonth() string {
	return time.Now().Format(MonthLayout)
}

// SanitizeDeviceId trims whitespace and strips the trailing ".0" that
// spreadsheet tools append to numeric-looking ids.
func SanitizeDeviceId(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimSuffix(id, ".0")
	return id
}

// excel serial day 0 is 1899-12-30; 25569 days to the unix epoch
const excelEpochOffsetDays = 25569

// NormalizeCellDate turns a spreadsheet cell into a YYYY-MM-DD string.
// Accepts date strings as-is and converts numeric serial dates.
func NormalizeCellDate(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return ""
	}
	if strings.Contains(cell, "-") {
		return cell
	}
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	t := time.Unix(int64((serial-excelEpochOffsetDays)*86400), 0).UTC()
	return t.Format(DateLayout)
}
