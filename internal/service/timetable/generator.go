// internal/service/timetable/generator.go
package timetable

import (
	"math/rand"
	"sort"

	"acadetrack-service/internal/domain/student"
)

// studyHours are the candidate slots considered for auto-generated
// study sessions, morning, afternoon and evening blocks.
var studyHours = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00", "19:00", "20:00"}

// studyDays excludes Sunday; it stays free.
var studyDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const (
	lunchTime        = "12:00"
	studyProbability = 0.4
)

var dayOrder = map[string]int{
	"Monday": 0, "Tuesday": 1, "Wednesday": 2, "Thursday": 3,
	"Friday": 4, "Saturday": 5, "Sunday": 6,
}

// Generator builds a weekly timetable around a fixed class schedule.
// The rand source is injected so generation is reproducible in tests.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate places the given classes first, then fills free study slots
// with a fixed probability, and adds a lunch break on every study day.
// A slot already holding a class is never double-booked.
func (g *Generator) Generate(classes []student.TimetableEntry) []student.TimetableEntry {
	entries := make([]student.TimetableEntry, 0, len(classes)+len(studyDays)*len(studyHours))

	occupied := make(map[string]bool, len(classes))
	subjects := make([]string, 0, len(classes))
	seenSubject := make(map[string]bool, len(classes))

	for _, c := range classes {
		c.Type = student.EntryClass
		if c.Duration == "" {
			c.Duration = "1h"
		}
		entries = append(entries, c)
		occupied[c.Day+" "+c.Time] = true
		if !seenSubject[c.Subject] {
			seenSubject[c.Subject] = true
			subjects = append(subjects, c.Subject)
		}
	}

	for _, day := range studyDays {
		for _, hour := range studyHours {
			if occupied[day+" "+hour] {
				continue
			}
			if g.rng.Float64() >= studyProbability {
				continue
			}
			subject := "Self Study"
			if len(subjects) > 0 {
				subject = subjects[g.rng.Intn(len(subjects))] + " Review"
			}
			entries = append(entries, student.TimetableEntry{
				Day:      day,
				Time:     hour,
				Subject:  subject,
				Type:     student.EntryStudy,
				Duration: "1h",
			})
			occupied[day+" "+hour] = true
		}

		if !occupied[day+" "+lunchTime] {
			entries = append(entries, student.TimetableEntry{
				Day:      day,
				Time:     lunchTime,
				Subject:  "Lunch Break",
				Type:     student.EntryBreak,
				Duration: "1h",
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if dayOrder[entries[i].Day] != dayOrder[entries[j].Day] {
			return dayOrder[entries[i].Day] < dayOrder[entries[j].Day]
		}
		return entries[i].Time < entries[j].Time
	})

	return entries
}
