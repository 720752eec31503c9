package entity

import (
	"time"

	"github.com/volatiletech/null/v8"
)

const (
	Monday    = "Monday"
	Tuesday   = "Tuesday"
	Wednesday = "Wednesday"
	Thursday  = "Thursday"
	Friday    = "Friday"
)

// Weekdays is the fixed ordering of school days used for sorting and grouping lessons.
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

type Lesson struct {
	ID        int64      `db:"id" json:"id"`
	Subject   string     `db:"subject" json:"subject"`
	Teacher   string     `db:"teacher" json:"teacher"`
	Classroom string     `db:"classroom" json:"classroom"`
	DayOfWeek string     `db:"day_of_week" json:"day_of_week"`
	TimeStart string     `db:"time_start" json:"time_start"`
	TimeEnd   string     `db:"time_end" json:"time_end"`
	CreatedBy null.Int64 `db:"created_by" json:"created_by"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type DaySchedule struct {
	Day     string
	Lessons []Lesson
}

// GroupByWeekday returns one entry per weekday in Weekdays order. Lessons keep
// their relative order, so an already sorted input yields sorted days.
// Lessons on an unknown day are dropped.
func GroupByWeekday(lessons []Lesson) []DaySchedule {
	schedule := make([]DaySchedule, len(Weekdays))
	index := make(map[string]int, len(Weekdays))
	for i, day := range Weekdays {
		schedule[i] = DaySchedule{Day: day, Lessons: []Lesson{}}
		index[day] = i
	}

	for _, lesson := range lessons {
		i, ok := index[lesson.DayOfWeek]
		if !ok {
			continue
		}
		schedule[i].Lessons = append(schedule[i].Lessons, lesson)
	}

	return schedule
}
