package file_generators

import (
	"strings"

	"github.com/muktihari/fit/profile/typedef"

	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
)

// Name fragments that pick a more specific category than the muscle alone.
// Checked in order, so 腿弯举 matches before 弯举.
var keywordCategories = []struct {
	keyword  string
	category typedef.ExerciseCategory
}{
	{"腿弯举", typedef.ExerciseCategoryLegCurl},
	{"硬拉", typedef.ExerciseCategoryDeadlift},
	{"飞鸟", typedef.ExerciseCategoryFlye},
	{"夹胸", typedef.ExerciseCategoryFlye},
	{"开胸", typedef.ExerciseCategoryFlye},
	{"侧平举", typedef.ExerciseCategoryLateralRaise},
	{"引体向上", typedef.ExerciseCategoryPullUp},
	{"下拉", typedef.ExerciseCategoryPullUp},
	{"划船", typedef.ExerciseCategoryRow},
	{"弯举", typedef.ExerciseCategoryCurl},
}

var muscleCategories = map[taxonomy.Muscle]typedef.ExerciseCategory{
	taxonomy.MuscleChest:     typedef.ExerciseCategoryBenchPress,
	taxonomy.MuscleTriceps:   typedef.ExerciseCategoryTricepsExtension,
	taxonomy.MuscleShoulders: typedef.ExerciseCategoryShoulderPress,
	taxonomy.MuscleBiceps:    typedef.ExerciseCategoryCurl,
	taxonomy.MuscleBack:      typedef.ExerciseCategoryRow,
	taxonomy.MuscleLegs:      typedef.ExerciseCategorySquat,
}

// MapExerciseToCategory maps an exercise label ("name｜equipment｜laterality")
// or bare name to a FIT exercise category. Unclassified exercises map to
// ExerciseCategoryUnknown.
func MapExerciseToCategory(idx *taxonomy.Index, label string) typedef.ExerciseCategory {
	name, _, _ := strings.Cut(label, taxonomy.LabelSeparator)
	name = strings.TrimSpace(name)

	cls := idx.Classify(name)
	if cls.IsUnknown() {
		return typedef.ExerciseCategoryUnknown
	}

	for _, kc := range keywordCategories {
		if strings.Contains(name, kc.keyword) {
			return kc.category
		}
	}
	if c, ok := muscleCategories[cls.Muscle]; ok {
		return c
	}
	return typedef.ExerciseCategoryUnknown
}
