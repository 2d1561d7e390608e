// Package diary turns a free-form training diary into training-set records.
//
// A diary is a sequence of dated header lines, each followed by exercise
// lines and the set data performed for them:
//
//	1月16日：胸部和三头肌
//	哑铃平板卧推
//	20：8个 10个
//
// Parsing is a single pass over the lines. The cursor state (current date,
// declared muscles, current exercise and the per-day minute counter) lives in
// an explicit Context that Step advances one line at a time.
package diary

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

// DefaultYear is the year attached to "M月D日" headers unless configured.
const DefaultYear = 2025

// SetSpacing separates consecutive records produced by one set-data line.
const SetSpacing = 30 * time.Second

// Phase is the position of the parser in the diary grammar.
type Phase int

const (
	AwaitingHeader Phase = iota
	AwaitingExercise
	AwaitingSetData
)

func (p Phase) String() string {
	switch p {
	case AwaitingHeader:
		return "awaiting_header"
	case AwaitingExercise:
		return "awaiting_exercise"
	default:
		return "awaiting_set_data"
	}
}

// Context is the parser cursor carried from line to line.
type Context struct {
	Phase Phase

	Date    time.Time
	HasDate bool

	Primary   string
	Secondary string

	Exercise    string
	HasExercise bool

	// Minute counts exercises seen since the last header; it offsets the
	// timestamps of that exercise's sets.
	Minute int
}

// UnknownAction reports an exercise name with no taxonomy entry.
type UnknownAction struct {
	Exercise string
	Date     string // YYYY-MM-DD
}

func (u UnknownAction) String() string {
	return u.Exercise + " - " + u.Date
}

// LineResult is the outcome of one line. Err is set, and is recoverable,
// when the line was skipped.
type LineResult struct {
	Number   int
	Text     string
	Kind     LineKind
	Records  []workoutlog.Record
	Unknowns []UnknownAction
	Err      error
}

// Result aggregates a whole pass.
type Result struct {
	Records  []workoutlog.Record
	Unknowns []UnknownAction
	Failures []LineResult
	Lines    int
}

// Parser holds the configuration of a pass; it keeps no state between passes.
type Parser struct {
	index         *taxonomy.Index
	year          int
	dropDayOnFail bool
	logger        *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithYear sets the year headers are read in.
func WithYear(year int) Option {
	return func(p *Parser) { p.year = year }
}

// WithTaxonomy replaces the default exercise index.
func WithTaxonomy(idx *taxonomy.Index) Option {
	return func(p *Parser) { p.index = idx }
}

// WithLogger sets the logger skipped lines are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// DropDayOnBadHeader makes an unparseable header date clear the current day,
// so set data up to the next valid header is rejected instead of being
// attributed to the previous day.
func DropDayOnBadHeader(drop bool) Option {
	return func(p *Parser) { p.dropDayOnFail = drop }
}

// NewParser returns a Parser using the default taxonomy and DefaultYear.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		index:  taxonomy.Default(),
		year:   DefaultYear,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "diary")
	return p
}

// Parse runs the whole diary through Step and collects the results.
// It never fails: bad lines end up in Result.Failures.
func (p *Parser) Parse(content string) Result {
	var (
		c   Context
		res Result
	)

	for i, raw := range strings.Split(content, "\n") {
		lr := p.Step(&c, i+1, raw)
		res.Lines++
		res.Records = append(res.Records, lr.Records...)
		res.Unknowns = append(res.Unknowns, lr.Unknowns...)

		if lr.Err != nil {
			res.Failures = append(res.Failures, lr)
			p.logger.Warn("Skipping line",
				"line", lr.Number,
				"text", lr.Text,
				"code", string(derrors.GetCode(lr.Err)),
				"error", lr.Err,
			)
		} else if lr.Kind == KindOther {
			p.logger.Debug("Ignoring line", "line", lr.Number, "text", lr.Text)
		}
	}

	p.logger.Info("Parsed diary",
		"lines", res.Lines,
		"records", len(res.Records),
		"unknown_actions", len(res.Unknowns),
		"skipped", len(res.Failures),
	)
	return res
}

// Step classifies one line and applies it to c.
func (p *Parser) Step(c *Context, number int, raw string) LineResult {
	line := strings.TrimSpace(raw)
	lr := LineResult{Number: number, Text: line, Kind: ClassifyLine(line)}

	switch lr.Kind {
	case KindHeader:
		lr.Err = p.header(c, line)
	case KindExercise:
		c.Exercise = exerciseName(line)
		c.HasExercise = true
		c.Minute++
		c.Phase = AwaitingSetData
	case KindSetData:
		lr.Records, lr.Unknowns, lr.Err = p.setData(c, line)
	}

	if de, ok := lr.Err.(*derrors.DiaryError); ok {
		lr.Err = de.WithMetadata("line", fmt.Sprint(number)).WithMetadata("text", line)
	}
	return lr
}

func (p *Parser) header(c *Context, line string) error {
	datePart, focus, _ := strings.Cut(line, colon)

	month, day, ok := parseMonthDay(datePart)
	var date time.Time
	if ok {
		date = time.Date(p.year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalises 2月30日 into March; reject instead.
		ok = date.Month() == time.Month(month) && date.Day() == day
	}
	if !ok {
		if p.dropDayOnFail {
			c.HasDate = false
			c.HasExercise = false
			c.Phase = AwaitingHeader
		}
		return derrors.ErrHeaderDateInvalid.WithMessage(fmt.Sprintf("cannot read date %q", datePart))
	}

	c.Date = date
	c.HasDate = true
	c.Primary, c.Secondary = splitFocus(focus)
	c.Minute = 0
	c.Phase = AwaitingExercise
	return nil
}

func (p *Parser) setData(c *Context, line string) ([]workoutlog.Record, []UnknownAction, error) {
	weightPart, repsPart, ok := strings.Cut(line, colon)
	if !ok {
		return nil, nil, derrors.ErrSetDataMalformed.WithMessage("missing ： between weight and reps")
	}
	weight := strings.TrimSpace(weightPart)

	reps, err := ExtractReps(repsPart)
	if err != nil {
		return nil, nil, derrors.ErrLineFailed.WithMessage("rep count out of range").WithCause(err)
	}
	if len(reps) == 0 {
		return nil, nil, derrors.ErrSetDataMalformed.WithMessage(fmt.Sprintf("no reps found for %q", c.Exercise))
	}

	if !c.HasExercise {
		return nil, nil, derrors.ErrLineFailed.WithMessage("set data before any exercise")
	}
	if !c.HasDate {
		return nil, nil, derrors.ErrLineFailed.WithMessage("set data before any dated header")
	}

	var (
		records  []workoutlog.Record
		unknowns []UnknownAction
	)
	ts := c.Date.Add(time.Duration(c.Minute) * time.Minute)

	for _, name := range taxonomy.SplitCombo(c.Exercise) {
		cls := p.index.Classify(name)
		if cls.IsUnknown() {
			unknowns = append(unknowns, UnknownAction{Exercise: name, Date: c.Date.Format(workoutlog.DateLayout)})
		}
		isPrimary := c.Primary != "" && !cls.IsUnknown() && string(cls.Muscle) == c.Primary
		label := cls.Label(name)

		for _, n := range reps {
			records = append(records, workoutlog.Record{
				Time:      ts,
				Primary:   c.Primary,
				Secondary: c.Secondary,
				Exercise:  label,
				Weight:    weight,
				Reps:      n,
				IsPrimary: isPrimary,
			})
			ts = ts.Add(SetSpacing)
		}
	}

	return records, unknowns, nil
}
