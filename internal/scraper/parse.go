package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var xOfYRe = regexp.MustCompile(`(\d+)\s*of\s*(\d+)`)

// parseXOfY parses strings like "23 of 57" into (23, 57). Unparseable input
// yields (0, 0): missing stats are degraded, not fatal.
func parseXOfY(s string) (landed, attempted int) {
	m := xOfYRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0
	}
	landed, _ = strconv.Atoi(m[1])
	attempted, _ = strconv.Atoi(m[2])
	return landed, attempted
}

// parseClock converts "3:45" to 225 seconds. "--" and malformed input yield 0.
func parseClock(s string) int {
	s = strings.TrimSpace(s)
	mins, secs, ok := strings.Cut(s, ":")
	if !ok {
		return 0
	}
	m, err1 := strconv.Atoi(mins)
	sec, err2 := strconv.Atoi(secs)
	if err1 != nil || err2 != nil || sec < 0 || sec > 59 {
		return 0
	}
	return m*60 + sec
}

// parseInt parses a plain integer cell, tolerating blanks and "--".
func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// parseEventDate parses the ufcstats long date form, e.g. "November 16, 2024".
func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Date:"))
	t, err := time.Parse("January 2, 2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse event date %q: %w", s, err)
	}
	return t, nil
}

// fightDuration returns total cage time in seconds for a fight that ended in
// the given round at the given clock time, assuming standard 5-minute rounds.
func fightDuration(roundEnded, timeEndedSeconds int) int {
	if roundEnded < 1 {
		return 0
	}
	return (roundEnded-1)*5*60 + timeEndedSeconds
}

// idFromURL extracts the trailing opaque id from a ufcstats details URL.
func idFromURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
