package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Resume dates arrive as "YYYY-MM" (or "present") in either the
// Gregorian or the Jalali calendar; the century prefix tells them apart.

const presentMarker = "present"

var yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Enrich derives the fields extraction cannot produce on its own: a
// duration in months per education and work entry, and the age when
// only a birth date was written. The birth date itself is dropped so it
// never reaches the document store.
//
// Enrichment is per-entry best effort: an unparseable or mixed-calendar
// range leaves that entry's duration unset and touches nothing else.
func (r *ResumeData) Enrich() {
	now := time.Now()

	for i := range r.Education {
		e := &r.Education[i]
		if months, ok := durationMonths(e.StartDate, e.EndDate, now); ok {
			e.DurationMonths = months
		}
	}
	for i := range r.WorkExperience {
		w := &r.WorkExperience[i]
		if months, ok := durationMonths(w.StartDate, w.EndDate, now); ok {
			w.DurationMonths = months
		}
	}

	if r.PersonalInfo == nil {
		return
	}
	if r.PersonalInfo.Age == 0 {
		if age, ok := ageFromBirthDate(r.PersonalInfo.DateOfBirth, now); ok {
			r.PersonalInfo.Age = age
		}
	}
	r.PersonalInfo.DateOfBirth = ""
}

// durationMonths computes whole months between two year-month stamps.
// An empty or "present" end means the current month, taken in the
// start date's calendar.
func durationMonths(start, end string, now time.Time) (int, bool) {
	startYear, startMonth, ok := parseYearMonth(start)
	if !ok {
		return 0, false
	}
	startJalali := isJalaliYear(startYear)

	var endYear, endMonth int
	switch strings.ToLower(strings.TrimSpace(end)) {
	case "", presentMarker:
		if startJalali {
			today := ptime.New(now)
			endYear, endMonth = today.Year(), int(today.Month())
		} else {
			endYear, endMonth = now.Year(), int(now.Month())
		}
	default:
		endYear, endMonth, ok = parseYearMonth(end)
		if !ok || isJalaliYear(endYear) != startJalali {
			return 0, false
		}
	}

	months := (endYear-startYear)*12 + endMonth - startMonth
	if months < 0 {
		return 0, false
	}
	return months, true
}

func parseYearMonth(s string) (year, month int, ok bool) {
	s = strings.TrimSpace(s)
	if !yearMonthPattern.MatchString(s) {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(s[:4])
	month, _ = strconv.Atoi(s[5:])
	if !isJalaliYear(year) && !isGregorianYear(year) {
		return 0, 0, false
	}
	return year, month, true
}

func isJalaliYear(year int) bool    { return year >= 1300 && year < 1500 }
func isGregorianYear(year int) bool { return year >= 1900 && year < 2100 }

// ageFromBirthDate derives the age from the leading year of whatever
// birth-date string was written.
func ageFromBirthDate(dob string, now time.Time) (int, bool) {
	dob = strings.TrimSpace(dob)
	if len(dob) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(dob[:4])
	if err != nil {
		return 0, false
	}

	switch {
	case isJalaliYear(year):
		return ptime.New(now).Year() - year, true
	case isGregorianYear(year):
		return now.Year() - year, true
	}
	return 0, false
}
