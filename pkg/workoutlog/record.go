// Package workoutlog defines the training-set row shared by the diary parser
// and the set logger, its CSV form, and the queries run over a log file.
package workoutlog

import (
	"strconv"
	"time"
)

// TimeLayout is the second-precision timestamp format of the 时刻 column.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout formats the calendar day of a record.
const DateLayout = "2006-01-02"

// Values of the 是否主训 column.
const (
	Yes = "是"
	No  = "否"
)

// Header is the column row every log file starts with.
var Header = []string{"时刻", "主训部位", "辅训部位", "动作", "每组重量", "每组次数", "是否主训"}

// Record is one training set.
type Record struct {
	Time      time.Time
	Primary   string // 主训部位 declared for the day
	Secondary string // 辅训部位 declared for the day, may be empty
	Exercise  string // label: name｜equipment｜laterality
	Weight    string // weight as written, e.g. "20", "+10", "（左）15"
	Reps      int
	IsPrimary bool // exercise muscle equals Primary
}

// Day returns the calendar day the set belongs to.
func (r Record) Day() string {
	return r.Time.Format(DateLayout)
}

// Row renders the record as CSV fields in Header order.
func (r Record) Row() []string {
	return []string{
		r.Time.Format(TimeLayout),
		r.Primary,
		r.Secondary,
		r.Exercise,
		r.Weight,
		strconv.Itoa(r.Reps),
		yesNo(r.IsPrimary),
	}
}

func yesNo(b bool) string {
	if b {
		return Yes
	}
	return No
}
