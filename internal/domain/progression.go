package domain

import "time"

// DayFormat is the ISO calendar-day layout used throughout the API.
const DayFormat = "2006-01-02"

// Progression is the calendar-derived snapshot of where the campaign stands
// on a given day.
type Progression struct {
	DaysPassed  int    `json:"days_passed"`
	WeeksPassed int    `json:"weeks_passed"`
	GymSets     int    `json:"gym_sets"`
	PhaseIndex  int    `json:"phase_index"`
	DateStr     string `json:"date_str"`
}

// CalcProgression derives the progression snapshot for today, measured
// against the campaign start date. Days before the start are clamped forward
// to the start, so the campaign never runs backwards.
//
// Gym sets begin at 3, gain one every 3 full weeks, and cap at 6. The phase
// index is 0/1/2 for January/February/March of the start year and 3 from
// April onward or in any later year.
func CalcProgression(today, start time.Time) Progression {
	effective := today
	if effective.Before(start) {
		effective = start
	}

	ey, em, ed := effective.Date()
	sy, sm, sd := start.Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)

	days := int(e.Sub(s) / (24 * time.Hour))
	weeks := days / 7

	phase := 3
	if ey == sy {
		switch em {
		case time.January:
			phase = 0
		case time.February:
			phase = 1
		case time.March:
			phase = 2
		}
	}

	return Progression{
		DaysPassed:  days,
		WeeksPassed: weeks,
		GymSets:     min(6, 3+weeks/3),
		PhaseIndex:  phase,
		DateStr:     e.Format(DayFormat),
	}
}
