package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-21 is 1403-01 in the Jalali calendar, which pins both "now"
// readings for the present-marker cases.
var fixedNow = time.Date(2024, time.March, 21, 12, 0, 0, 0, time.UTC)

func TestDurationMonthsGregorian(t *testing.T) {
	months, ok := durationMonths("2018-09", "2020-06", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 21, months)
}

func TestDurationMonthsJalali(t *testing.T) {
	months, ok := durationMonths("1398-01", "1400-01", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 24, months)
}

func TestDurationMonthsPresent(t *testing.T) {
	months, ok := durationMonths("2023-03", "present", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 12, months)

	// Empty end date means present too.
	months, ok = durationMonths("2023-03", "", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 12, months)
}

func TestDurationMonthsPresentJalali(t *testing.T) {
	months, ok := durationMonths("1401-01", "present", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 24, months)
}

func TestDurationMonthsRejectsBadInput(t *testing.T) {
	for _, tc := range []struct{ start, end string }{
		{"2020", "2021-01"},        // missing month
		{"Sept 2020", "2021-01"},   // prose
		{"2020-13", "2021-01"},     // month out of range
		{"2020-01", "1400-01"},     // mixed calendars
		{"1700-01", "1701-01"},     // unsupported century
		{"2021-06", "2020-01"},     // negative range
		{"", "2021-01"},            // no start
	} {
		_, ok := durationMonths(tc.start, tc.end, fixedNow)
		assert.False(t, ok, "start=%q end=%q", tc.start, tc.end)
	}
}

func TestAgeFromBirthDate(t *testing.T) {
	age, ok := ageFromBirthDate("1995-04-12", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 29, age)

	age, ok = ageFromBirthDate("1375", fixedNow)
	require.True(t, ok)
	assert.Equal(t, 28, age, "Jalali birth year against Jalali current year")

	_, ok = ageFromBirthDate("unknown", fixedNow)
	assert.False(t, ok)
	_, ok = ageFromBirthDate("", fixedNow)
	assert.False(t, ok)
}

func TestEnrichComputesDurationsAndDropsBirthDate(t *testing.T) {
	r := &ResumeData{
		PersonalInfo: &PersonalInfo{DateOfBirth: "1995-04-12"},
		Education: []EducationEntry{
			{Degree: "B.Sc", StartDate: "2013-09", EndDate: "2017-06"},
			{Degree: "M.Sc", StartDate: "garbage", EndDate: "2019-06"},
		},
		WorkExperience: []ExperienceEntry{
			{JobTitle: "Engineer", StartDate: "2017-07", EndDate: "2020-07"},
		},
	}

	r.Enrich()

	assert.Equal(t, 45, r.Education[0].DurationMonths)
	assert.Zero(t, r.Education[1].DurationMonths, "bad dates leave the entry untouched")
	assert.Equal(t, 36, r.WorkExperience[0].DurationMonths)

	assert.Empty(t, r.PersonalInfo.DateOfBirth, "birth date never reaches the store")
	assert.Positive(t, r.PersonalInfo.Age)
}

func TestEnrichKeepsExplicitAge(t *testing.T) {
	r := &ResumeData{
		PersonalInfo: &PersonalInfo{Age: 34, DateOfBirth: "1989-01-01"},
	}

	r.Enrich()

	assert.Equal(t, 34, r.PersonalInfo.Age, "a written age wins over derivation")
	assert.Empty(t, r.PersonalInfo.DateOfBirth)
}

func TestEnrichHandlesSparseRecords(t *testing.T) {
	r := &ResumeData{SourceFile: "anon.pdf"}
	r.Enrich()
	assert.Nil(t, r.PersonalInfo)
}
