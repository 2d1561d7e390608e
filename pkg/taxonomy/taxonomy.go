// Package taxonomy classifies exercise names by muscle group, equipment and
// laterality.
package taxonomy

import (
	"fmt"
	"strings"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

// Muscle is the body region an exercise primarily trains.
type Muscle string

// Equipment is the implement an exercise is performed with.
type Equipment string

// Laterality says whether both sides work together or one at a time.
type Laterality string

const (
	MuscleChest     Muscle = "胸部"
	MuscleTriceps   Muscle = "三头肌"
	MuscleShoulders Muscle = "肩部"
	MuscleBiceps    Muscle = "二头肌"
	MuscleBack      Muscle = "背部"
	MuscleLegs      Muscle = "腿部"

	EquipmentDumbbell   Equipment = "哑铃"
	EquipmentBarbell    Equipment = "杠铃"
	EquipmentMachine    Equipment = "器械"
	EquipmentBodyweight Equipment = "自重"

	Bilateral  Laterality = "双边"
	Unilateral Laterality = "单边"

	// UnknownValue fills every field of the sentinel classification.
	UnknownValue = "未知"

	// ComboDelimiter joins two exercises performed back to back under one name.
	ComboDelimiter = "➕"

	// LabelSeparator separates the fields of an exercise label.
	LabelSeparator = "｜"
)

// Muscles lists the six body regions in display order.
var Muscles = []Muscle{MuscleChest, MuscleBack, MuscleShoulders, MuscleLegs, MuscleBiceps, MuscleTriceps}

var (
	knownMuscles    = map[Muscle]bool{MuscleChest: true, MuscleTriceps: true, MuscleShoulders: true, MuscleBiceps: true, MuscleBack: true, MuscleLegs: true}
	knownEquipment  = map[Equipment]bool{EquipmentDumbbell: true, EquipmentBarbell: true, EquipmentMachine: true, EquipmentBodyweight: true}
	knownLaterality = map[Laterality]bool{Bilateral: true, Unilateral: true}
)

// IsMuscle reports whether s names one of the six body regions.
func IsMuscle(s string) bool {
	return knownMuscles[Muscle(s)]
}

// Classification places an exercise in the taxonomy.
type Classification struct {
	Muscle     Muscle
	Equipment  Equipment
	Laterality Laterality
}

// Unknown is returned for names that have no taxonomy entry.
var Unknown = Classification{
	Muscle:     Muscle(UnknownValue),
	Equipment:  Equipment(UnknownValue),
	Laterality: Laterality(UnknownValue),
}

// IsUnknown reports whether c is the sentinel classification.
func (c Classification) IsUnknown() bool {
	return c == Unknown
}

// Label renders the row-store exercise label, e.g. "哑铃平板卧推｜哑铃｜双边".
func (c Classification) Label(name string) string {
	return strings.Join([]string{name, string(c.Equipment), string(c.Laterality)}, LabelSeparator)
}

// Group is one leaf of the nested taxonomy: muscle → equipment → laterality → names.
type Group struct {
	Muscle     Muscle
	Equipment  Equipment
	Laterality Laterality
	Names      []string
}

func (g Group) validate() error {
	switch {
	case !knownMuscles[g.Muscle]:
		return derrors.ErrTaxonomyInvalid.WithMessage(fmt.Sprintf("unknown muscle %q", g.Muscle))
	case !knownEquipment[g.Equipment]:
		return derrors.ErrTaxonomyInvalid.WithMessage(fmt.Sprintf("unknown equipment %q", g.Equipment))
	case !knownLaterality[g.Laterality]:
		return derrors.ErrTaxonomyInvalid.WithMessage(fmt.Sprintf("unknown laterality %q", g.Laterality))
	}
	return nil
}

// SplitCombo splits a combined exercise name into its trimmed constituents.
// Names without the delimiter come back as a single element.
func SplitCombo(name string) []string {
	if !strings.Contains(name, ComboDelimiter) {
		return []string{name}
	}
	parts := strings.Split(name, ComboDelimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Option configures index construction.
type Option func(*buildOptions)

type buildOptions struct {
	strict bool
}

// Strict makes Build fail on a name registered twice instead of letting the
// later registration win.
func Strict(strict bool) Option {
	return func(o *buildOptions) {
		o.strict = strict
	}
}

type entry struct {
	name string
	cls  Classification
}

// Index is the flat name → classification lookup built from a nested taxonomy.
type Index struct {
	byName map[string]Classification
	order  []entry
}

// Build flattens groups into an Index. Combined names are split and each
// constituent registered on its own. By default a later registration of the
// same name silently replaces the earlier one.
func Build(groups []Group, opts ...Option) (*Index, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	idx := &Index{
		byName: make(map[string]Classification),
	}

	for _, g := range groups {
		if err := g.validate(); err != nil {
			return nil, err
		}
		cls := Classification{Muscle: g.Muscle, Equipment: g.Equipment, Laterality: g.Laterality}
		for _, raw := range g.Names {
			for _, name := range SplitCombo(raw) {
				if name == "" {
					continue
				}
				if prev, ok := idx.byName[name]; ok {
					if o.strict {
						return nil, derrors.ErrDuplicateExercise.
							WithMessage(fmt.Sprintf("exercise %q registered under %s and %s", name, prev.Muscle, g.Muscle)).
							WithMetadata("exercise", name)
					}
					idx.replace(name, cls)
					continue
				}
				idx.byName[name] = cls
				idx.order = append(idx.order, entry{name: name, cls: cls})
			}
		}
	}

	return idx, nil
}

func (idx *Index) replace(name string, cls Classification) {
	idx.byName[name] = cls
	for i := range idx.order {
		if idx.order[i].name == name {
			idx.order[i].cls = cls
			return
		}
	}
}

// Classify returns the classification for name, or Unknown.
func (idx *Index) Classify(name string) Classification {
	if cls, ok := idx.byName[name]; ok {
		return cls
	}
	return Unknown
}

// Lookup is Classify with an explicit found flag.
func (idx *Index) Lookup(name string) (Classification, bool) {
	cls, ok := idx.byName[name]
	return cls, ok
}

// Len returns the number of distinct registered names.
func (idx *Index) Len() int {
	return len(idx.byName)
}

// Labels lists exercise labels in registration order, restricted to muscle
// when it is non-empty.
func (idx *Index) Labels(muscle Muscle) []string {
	var labels []string
	for _, e := range idx.order {
		if muscle != "" && e.cls.Muscle != muscle {
			continue
		}
		labels = append(labels, e.cls.Label(e.name))
	}
	return labels
}

var defaultIndex *Index

func init() {
	idx, err := Build(DefaultGroups)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: default table is invalid: %v", err))
	}
	defaultIndex = idx
}

// Default returns the index built from DefaultGroups.
func Default() *Index {
	return defaultIndex
}

// Classify looks name up in the default index.
func Classify(name string) Classification {
	return defaultIndex.Classify(name)
}
