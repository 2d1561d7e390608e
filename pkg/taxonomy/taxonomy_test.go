package taxonomy

import (
	"errors"
	"testing"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

func TestClassify_ExactMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Classification
	}{
		{
			name:  "dumbbell bench press",
			input: "哑铃平板卧推",
			want:  Classification{MuscleChest, EquipmentDumbbell, Bilateral},
		},
		{
			name:  "unilateral triceps",
			input: "单臂哑铃过头伸展",
			want:  Classification{MuscleTriceps, EquipmentDumbbell, Unilateral},
		},
		{
			name:  "machine back",
			input: "引体向上",
			want:  Classification{MuscleBack, EquipmentMachine, Bilateral},
		},
		{
			name:  "bodyweight unilateral legs",
			input: "保加利亚深蹲",
			want:  Classification{MuscleLegs, EquipmentBodyweight, Unilateral},
		},
		{
			name:  "latin characters in name",
			input: "EZ杠弯举",
			want:  Classification{MuscleBiceps, EquipmentBarbell, Bilateral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if got.IsUnknown() {
				t.Errorf("expected %q to be known", tt.input)
			}
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	tests := []string{"", "卧推", "哑铃平板卧推 ", "Bench Press"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			got := Classify(input)
			if !got.IsUnknown() {
				t.Errorf("expected unknown for %q, got %+v", input, got)
			}
			if got.Label(input) != input+"｜未知｜未知" {
				t.Errorf("unexpected unknown label %q", got.Label(input))
			}
		})
	}
}

func TestLabel(t *testing.T) {
	cls := Classify("哑铃平板卧推")
	if got := cls.Label("哑铃平板卧推"); got != "哑铃平板卧推｜哑铃｜双边" {
		t.Errorf("unexpected label %q", got)
	}
}

func TestDefaultIndex_EveryNameResolves(t *testing.T) {
	for _, g := range DefaultGroups {
		for _, name := range g.Names {
			cls, ok := Default().Lookup(name)
			if !ok {
				t.Errorf("expected %q in default index", name)
				continue
			}
			if cls.Muscle != g.Muscle {
				t.Errorf("%q: expected muscle %s, got %s", name, g.Muscle, cls.Muscle)
			}
		}
	}
}

func TestDefaultIndex_BuildsStrict(t *testing.T) {
	if _, err := Build(DefaultGroups, Strict(true)); err != nil {
		t.Fatalf("expected default table to have no duplicates, got %v", err)
	}
}

func TestBuild_SplitsCombinedNames(t *testing.T) {
	idx, err := Build([]Group{
		{Muscle: MuscleShoulders, Equipment: EquipmentDumbbell, Laterality: Bilateral, Names: []string{"哑铃侧平举 ➕ 哑铃前平举"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"哑铃侧平举", "哑铃前平举"} {
		if got := idx.Classify(name); got.Muscle != MuscleShoulders {
			t.Errorf("expected %q registered under shoulders, got %+v", name, got)
		}
	}
	if _, ok := idx.Lookup("哑铃侧平举 ➕ 哑铃前平举"); ok {
		t.Error("expected combined name itself not to be registered")
	}
	if idx.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", idx.Len())
	}
}

func TestBuild_LastWriteWins(t *testing.T) {
	groups := []Group{
		{Muscle: MuscleChest, Equipment: EquipmentBodyweight, Laterality: Bilateral, Names: []string{"双杠臂屈伸"}},
		{Muscle: MuscleTriceps, Equipment: EquipmentBodyweight, Laterality: Bilateral, Names: []string{"双杠臂屈伸"}},
	}

	idx, err := Build(groups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := idx.Classify("双杠臂屈伸").Muscle; got != MuscleTriceps {
		t.Errorf("expected later registration to win, got %s", got)
	}
	if labels := idx.Labels(""); len(labels) != 1 || labels[0] != "双杠臂屈伸｜自重｜双边" {
		t.Errorf("unexpected labels %v", labels)
	}
	if labels := idx.Labels(MuscleChest); len(labels) != 0 {
		t.Errorf("expected no chest labels after override, got %v", labels)
	}
}

func TestBuild_StrictRejectsDuplicates(t *testing.T) {
	groups := []Group{
		{Muscle: MuscleChest, Equipment: EquipmentBodyweight, Laterality: Bilateral, Names: []string{"双杠臂屈伸"}},
		{Muscle: MuscleTriceps, Equipment: EquipmentBodyweight, Laterality: Bilateral, Names: []string{"双杠臂屈伸"}},
	}

	_, err := Build(groups, Strict(true))
	if !errors.Is(err, derrors.ErrDuplicateExercise) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestBuild_RejectsUnknownCategories(t *testing.T) {
	_, err := Build([]Group{{Muscle: "腹部", Equipment: EquipmentMachine, Laterality: Bilateral, Names: []string{"卷腹"}}})
	if derrors.GetCode(err) != derrors.CodeTaxonomyInvalid {
		t.Errorf("expected %s, got %v", derrors.CodeTaxonomyInvalid, err)
	}
}

func TestLabels_FollowRegistrationOrder(t *testing.T) {
	labels := Default().Labels(MuscleChest)
	if len(labels) != 13 {
		t.Fatalf("expected 13 chest labels, got %d", len(labels))
	}
	if labels[0] != "哑铃平板卧推｜哑铃｜双边" {
		t.Errorf("unexpected first label %q", labels[0])
	}
	if labels[len(labels)-1] != "俯卧撑｜自重｜双边" {
		t.Errorf("unexpected last label %q", labels[len(labels)-1])
	}
}

func TestSplitCombo(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"哑铃飞鸟", []string{"哑铃飞鸟"}},
		{"哑铃飞鸟➕斯万开胸", []string{"哑铃飞鸟", "斯万开胸"}},
		{" 哑铃飞鸟 ➕ 斯万开胸 ", []string{"哑铃飞鸟", "斯万开胸"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SplitCombo(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("part %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}
