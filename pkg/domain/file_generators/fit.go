package file_generators

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

// setDuration is the nominal length of one set; diary sets are 30s apart.
const setDuration = 30 * time.Second

// DayFile is an encoded FIT activity for one training day.
type DayFile struct {
	Day  string // YYYY-MM-DD
	Sets int
	Data []byte
}

// Name is the file name a DayFile is written under.
func (f DayFile) Name() string {
	return f.Day + ".fit"
}

// GenerateDailyFitFiles groups records by calendar day and encodes one
// activity per day, in day order.
func GenerateDailyFitFiles(records []workoutlog.Record, idx *taxonomy.Index) ([]DayFile, error) {
	byDay := make(map[string][]workoutlog.Record)
	for _, r := range records {
		byDay[r.Day()] = append(byDay[r.Day()], r)
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	files := make([]DayFile, 0, len(days))
	for _, d := range days {
		data, err := GenerateFitFile(byDay[d], idx)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", d, err)
		}
		files = append(files, DayFile{Day: d, Sets: len(byDay[d]), Data: data})
	}
	return files, nil
}

// GenerateFitFile creates a strength-training FIT activity from the records
// of one session. Records are written as Set messages in time order.
func GenerateFitFile(records []workoutlog.Record, idx *taxonomy.Index) ([]byte, error) {
	if len(records) == 0 {
		return nil, derrors.ErrValidation.WithMessage("activity must have at least one set")
	}
	if idx == nil {
		idx = taxonomy.Default()
	}

	sets := make([]workoutlog.Record, len(records))
	copy(sets, records)
	sort.SliceStable(sets, func(i, j int) bool { return sets[i].Time.Before(sets[j].Time) })

	startTime := sets[0].Time
	endTime := sets[len(sets)-1].Time.Add(setDuration)
	elapsedMs := uint32(endTime.Sub(startTime).Milliseconds())

	fit := &proto.FIT{
		Messages: []proto.Message{},
	}

	// 1. FileId message
	fileId := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(1).
		SetTimeCreated(startTime)
	fit.Messages = append(fit.Messages, fileId.ToMesg(nil))

	// 2. Set messages, one per diary record
	for i, set := range sets {
		setMsg := mesgdef.NewSet(nil).
			SetTimestamp(set.Time).
			SetStartTime(set.Time).
			SetDuration(uint32(setDuration.Milliseconds())).
			SetCategory([]typedef.ExerciseCategory{MapExerciseToCategory(idx, set.Exercise)}).
			SetSetType(typedef.SetTypeActive).
			SetMessageIndex(typedef.MessageIndex(i))

		if set.Reps > 0 {
			setMsg.SetRepetitions(uint16(set.Reps))
		}
		if kg, ok := workoutlog.ParseWeight(set.Weight); ok && kg > 0 {
			setMsg.SetWeightScaled(kg)
		}

		fit.Messages = append(fit.Messages, setMsg.ToMesg(nil))
	}

	// 3. Lap, Session and Activity summaries
	lapMsg := mesgdef.NewLap(nil).
		SetTimestamp(endTime).
		SetStartTime(startTime).
		SetSport(typedef.SportTraining).
		SetTotalElapsedTime(elapsedMs).
		SetTotalTimerTime(elapsedMs).
		SetMessageIndex(0)
	fit.Messages = append(fit.Messages, lapMsg.ToMesg(nil))

	sessionMsg := mesgdef.NewSession(nil).
		SetTimestamp(endTime).
		SetStartTime(startTime).
		SetSport(typedef.SportTraining).
		SetSubSport(typedef.SubSportStrengthTraining).
		SetTotalElapsedTime(elapsedMs).
		SetTotalTimerTime(elapsedMs)
	fit.Messages = append(fit.Messages, sessionMsg.ToMesg(nil))

	activityMsg := mesgdef.NewActivity(nil).
		SetTimestamp(endTime).
		SetType(typedef.ActivityManual).
		SetNumSessions(1)
	fit.Messages = append(fit.Messages, activityMsg.ToMesg(nil))

	var buf bytes.Buffer
	enc := encoder.New(&buf)

	if err := enc.Encode(fit); err != nil {
		return nil, fmt.Errorf("failed to encode FIT file: %w", err)
	}

	return buf.Bytes(), nil
}
