package diary

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// LineKind is the shape of a trimmed diary line.
type LineKind int

const (
	KindSkip     LineKind = iota // blank or document title
	KindHeader                   // "1月16日：胸部和三头肌"
	KindExercise                 // "哑铃平板卧推"
	KindSetData                  // "20：8个 10个"
	KindOther                    // anything else, ignored
)

func (k LineKind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindHeader:
		return "header"
	case KindExercise:
		return "exercise"
	case KindSetData:
		return "set_data"
	default:
		return "other"
	}
}

const (
	titlePrefix = "健身记录"
	monthMarker = "月"
	dayMarker   = "日"
	colon       = "："
	conjunction = "和"
	repsUnit    = "个"
)

// ClassifyLine decides what a line is. The first matching rule wins.
func ClassifyLine(line string) LineKind {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, titlePrefix) {
		return KindSkip
	}
	if strings.Contains(line, monthMarker) && strings.Contains(line, dayMarker) && strings.Contains(line, colon) {
		return KindHeader
	}

	first, _ := utf8.DecodeRuneInString(line)
	if !strings.ContainsRune("0123456789+（", first) && !strings.Contains(line, colon) {
		return KindExercise
	}
	if first == '+' || first == '（' || unicode.IsDigit(first) {
		return KindSetData
	}
	return KindOther
}

var headerDate = regexp.MustCompile(`^(\d{1,2})\s*月\s*(\d{1,2})\s*日$`)

// parseMonthDay reads "4月8日" (full-width digits allowed).
func parseMonthDay(s string) (month, day int, ok bool) {
	m := headerDate.FindStringSubmatch(width.Narrow.String(strings.TrimSpace(s)))
	if m == nil {
		return 0, 0, false
	}
	month, _ = strconv.Atoi(m[1])
	day, _ = strconv.Atoi(m[2])
	return month, day, true
}

// splitFocus splits the text after a header colon into primary and
// secondary muscle on the first conjunction.
func splitFocus(s string) (primary, secondary string) {
	if p, q, ok := strings.Cut(s, conjunction); ok {
		return strings.TrimSpace(p), strings.TrimSpace(q)
	}
	return strings.TrimSpace(s), ""
}

// exerciseName drops a trailing "(note)" annotation.
func exerciseName(line string) string {
	name, _, _ := strings.Cut(line, "(")
	return strings.TrimSpace(name)
}

var repsToken = regexp.MustCompile(`(\d+)\s*` + repsUnit)

// ExtractReps returns one value per "<int>个" in s, in order. Full-width
// digits and spaces are accepted.
func ExtractReps(s string) ([]int, error) {
	matches := repsToken.FindAllStringSubmatch(width.Narrow.String(s), -1)
	reps := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, err
		}
		reps = append(reps, n)
	}
	return reps, nil
}
