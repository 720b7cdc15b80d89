// Package mensa implements canteen resolution, meal fetching, and the
// presentation row shared by the CLI and the Discord surface.
package mensa

import (
	"time"

	"github.com/charmbracelet/log"
)

// DateFormat is the accepted layout for user-supplied dates.
const DateFormat = "2006-01-02"

// now is swapped in tests.
var now = time.Now

// ResolveDate turns a user-supplied date token into a calendar date in UTC.
// "today" and the empty string mean the current date. Any other token must
// parse as YYYY-MM-DD; a token that does not parse is logged and replaced by
// the current date so flaky chat input never aborts a lookup.
func ResolveDate(token string) time.Time {
	today := now().UTC().Truncate(24 * time.Hour)

	if token == "" || token == "today" {
		return today
	}

	date, err := time.ParseInLocation(DateFormat, token, time.UTC)
	if err != nil {
		log.Warn("invalid date, using today", "date", token)
		return today
	}
	return date
}
