package workoutlog

import (
	"fmt"
	"strconv"
	"time"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
)

// Side picks the working side of a unilateral exercise.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

var sideSuffix = map[Side]string{
	SideLeft:  "（左）",
	SideRight: "（右）",
}

// SetInput is one set entered by hand.
type SetInput struct {
	Primary   string
	Secondary string
	Exercise  string // bare taxonomy name, no label fields
	Weight    float64
	Reps      int
	Side      Side
}

// NewSet validates in against the taxonomy and builds the record to append.
// Bodyweight exercises always record a weight of 0.
func NewSet(idx *taxonomy.Index, in SetInput, now time.Time) (Record, error) {
	if !taxonomy.IsMuscle(in.Primary) {
		return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("unknown primary muscle %q", in.Primary))
	}
	if in.Secondary != "" && !taxonomy.IsMuscle(in.Secondary) {
		return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("unknown secondary muscle %q", in.Secondary))
	}

	cls, ok := idx.Lookup(in.Exercise)
	if !ok {
		return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("exercise %q is not in the taxonomy", in.Exercise))
	}
	if in.Reps < 1 {
		return Record{}, derrors.ErrValidation.WithMessage("reps must be at least 1")
	}
	if in.Weight < 0 {
		return Record{}, derrors.ErrValidation.WithMessage("weight must not be negative")
	}

	label := cls.Label(in.Exercise)
	switch cls.Laterality {
	case taxonomy.Unilateral:
		suffix, ok := sideSuffix[in.Side]
		if !ok {
			return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("%s is unilateral: side must be left or right", in.Exercise))
		}
		label += suffix
	default:
		if in.Side != SideNone {
			return Record{}, derrors.ErrValidation.WithMessage(fmt.Sprintf("%s is bilateral: side not allowed", in.Exercise))
		}
	}

	weight := in.Weight
	if cls.Equipment == taxonomy.EquipmentBodyweight {
		weight = 0
	}

	return Record{
		Time:      now.Truncate(time.Second),
		Primary:   in.Primary,
		Secondary: in.Secondary,
		Exercise:  label,
		Weight:    strconv.FormatFloat(weight, 'f', -1, 64),
		Reps:      in.Reps,
		IsPrimary: string(cls.Muscle) == in.Primary,
	}, nil
}
