package workoutlog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
)

var weightNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseWeight extracts the first number from a weight descriptor:
// "20" → 20, "+10" → 10, "（左）15" → 15. Descriptors without a number
// report false.
func ParseWeight(desc string) (float64, bool) {
	m := weightNumber.FindString(desc)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// OnDay keeps the records of one calendar day (YYYY-MM-DD), in file order.
func OnDay(records []Record, day string) []Record {
	var out []Record
	for _, r := range records {
		if r.Day() == day {
			out = append(out, r)
		}
	}
	return out
}

// Between keeps records whose day falls in [from, to]. An empty bound is open.
func Between(records []Record, from, to string) []Record {
	var out []Record
	for _, r := range records {
		d := r.Day()
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		out = append(out, r)
	}
	return out
}

// LatestWeight returns the numeric weight of the most recent set for an
// exercise label, or 0 when there is none.
func LatestWeight(records []Record, label string) float64 {
	var (
		latest Record
		found  bool
	)
	for _, r := range records {
		if r.Exercise != label {
			continue
		}
		if !found || !r.Time.Before(latest.Time) {
			latest, found = r, true
		}
	}
	if !found {
		return 0
	}
	w, _ := ParseWeight(latest.Weight)
	return w
}

// ExerciseSets is one exercise's sets within a day view.
type ExerciseSets struct {
	Label string
	Sets  []Record
}

// MuscleSection groups a day's exercises under one muscle.
type MuscleSection struct {
	Muscle    string
	Exercises []ExerciseSets
}

// DayView is a day's log grouped for display.
type DayView struct {
	Date      string
	Primary   []MuscleSection
	Secondary []MuscleSection
}

// Empty reports whether the day has no sets.
func (v DayView) Empty() bool {
	return len(v.Primary) == 0 && len(v.Secondary) == 0
}

// BuildDayView groups a day's sets by declared primary muscle and then by
// declared secondary muscle, each by exercise in first-appearance order.
// A set appears under both when the day declares both muscles.
func BuildDayView(records []Record, day string) DayView {
	dayRecs := OnDay(records, day)
	return DayView{
		Date:      day,
		Primary:   sections(dayRecs, func(r Record) string { return r.Primary }),
		Secondary: sections(dayRecs, func(r Record) string { return r.Secondary }),
	}
}

func sections(records []Record, muscleOf func(Record) string) []MuscleSection {
	var out []MuscleSection
	pos := map[string]int{}
	exPos := map[string]map[string]int{}

	for _, r := range records {
		m := muscleOf(r)
		if m == "" {
			continue
		}
		i, ok := pos[m]
		if !ok {
			i = len(out)
			pos[m] = i
			exPos[m] = map[string]int{}
			out = append(out, MuscleSection{Muscle: m})
		}
		j, ok := exPos[m][r.Exercise]
		if !ok {
			j = len(out[i].Exercises)
			exPos[m][r.Exercise] = j
			out[i].Exercises = append(out[i].Exercises, ExerciseSets{Label: r.Exercise})
		}
		out[i].Exercises[j].Sets = append(out[i].Exercises[j].Sets, r)
	}
	return out
}

// FormatSet renders a set the way the day view shows it, e.g. "20KG × 8个".
func FormatSet(r Record) string {
	return fmt.Sprintf("%sKG × %d个", r.Weight, r.Reps)
}

// DailyPoint is one day of an exercise's progression.
type DailyPoint struct {
	Date      string
	MaxWeight float64
	LastReps  int // reps of the day's last set, not of the heaviest one
}

// Progression returns, per day, the heaviest numeric weight logged for label
// and the reps of that day's last set. Days are sorted ascending; days where
// no weight parses are left out.
func Progression(records []Record, label string) []DailyPoint {
	byDay := map[string]*DailyPoint{}
	hasWeight := map[string]bool{}
	var days []string

	for _, r := range records {
		if r.Exercise != label {
			continue
		}
		d := r.Day()
		p, ok := byDay[d]
		if !ok {
			p = &DailyPoint{Date: d}
			byDay[d] = p
			days = append(days, d)
		}
		p.LastReps = r.Reps
		if w, ok := ParseWeight(r.Weight); ok && (!hasWeight[d] || w > p.MaxWeight) {
			p.MaxWeight = w
			hasWeight[d] = true
		}
	}

	sort.Strings(days)
	var out []DailyPoint
	for _, d := range days {
		if hasWeight[d] {
			out = append(out, *byDay[d])
		}
	}
	return out
}

// MuscleFrequency is how many distinct days a muscle was trained.
type MuscleFrequency struct {
	Muscle taxonomy.Muscle
	Days   int
}

// Frequency counts, for each of the six muscles, the distinct days on which
// it was declared as primary or secondary muscle.
func Frequency(records []Record) []MuscleFrequency {
	seen := map[taxonomy.Muscle]map[string]bool{}
	for _, m := range taxonomy.Muscles {
		seen[m] = map[string]bool{}
	}
	for _, r := range records {
		for _, m := range []string{r.Primary, r.Secondary} {
			if days, ok := seen[taxonomy.Muscle(m)]; ok {
				days[r.Day()] = true
			}
		}
	}

	out := make([]MuscleFrequency, 0, len(taxonomy.Muscles))
	for _, m := range taxonomy.Muscles {
		out = append(out, MuscleFrequency{Muscle: m, Days: len(seen[m])})
	}
	return out
}

// Labels lists distinct exercise labels in first-appearance order.
func Labels(records []Record) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		if !seen[r.Exercise] {
			seen[r.Exercise] = true
			out = append(out, r.Exercise)
		}
	}
	return out
}
