package diary

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

func quietParser(opts ...Option) *Parser {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewParser(opts...)
}

func ts(s string) time.Time {
	t, err := time.Parse(workoutlog.TimeLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func diary(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestParse_SingleSet(t *testing.T) {
	res := quietParser().Parse(diary("1月16日：胸部和三头肌", "哑铃平板卧推", "20：8个"))

	want := []workoutlog.Record{{
		Time:      ts("2025-01-16 00:01:00"),
		Primary:   "胸部",
		Secondary: "三头肌",
		Exercise:  "哑铃平板卧推｜哑铃｜双边",
		Weight:    "20",
		Reps:      8,
		IsPrimary: true,
	}}
	if diff := cmp.Diff(want, res.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.Unknowns)
	assert.Empty(t, res.Failures)
	assert.Equal(t, 3, res.Lines)

	row := res.Records[0].Row()
	assert.Equal(t, []string{"2025-01-16 00:01:00", "胸部", "三头肌", "哑铃平板卧推｜哑铃｜双边", "20", "8", "是"}, row)
}

func TestParse_MultipleRepsOnOneLine(t *testing.T) {
	res := quietParser().Parse(diary("1月16日：胸部和三头肌", "哑铃平板卧推", "15：8个 10个"))

	require.Len(t, res.Records, 2)
	first, second := res.Records[0], res.Records[1]
	assert.Equal(t, ts("2025-01-16 00:01:00"), first.Time)
	assert.Equal(t, ts("2025-01-16 00:01:30"), second.Time)
	assert.Equal(t, 8, first.Reps)
	assert.Equal(t, 10, second.Reps)

	first.Time, first.Reps = second.Time, second.Reps
	assert.Equal(t, first, second, "only time and reps should differ")
}

func TestParse_RecordCountMatchesRepTokens(t *testing.T) {
	tests := []struct {
		reps string
		want int
	}{
		{"8个", 1},
		{"8个 8个 6个", 3},
		{"12 个，10个，力竭8个", 3},
		{"8个（最后一组借力）", 1},
	}
	for _, tt := range tests {
		t.Run(tt.reps, func(t *testing.T) {
			res := quietParser().Parse(diary("2月3日：腿部", "腿举", "100："+tt.reps))
			assert.Len(t, res.Records, tt.want)
			for i := 1; i < len(res.Records); i++ {
				assert.Equal(t, SetSpacing, res.Records[i].Time.Sub(res.Records[i-1].Time))
			}
		})
	}
}

func TestParse_UnknownExercise(t *testing.T) {
	res := quietParser().Parse(diary("1月16日：胸部", "龙门架夹胸", "10：12个 12个"))

	require.Len(t, res.Records, 2)
	for _, r := range res.Records {
		assert.Equal(t, "龙门架夹胸｜未知｜未知", r.Exercise)
		assert.False(t, r.IsPrimary)
	}
	assert.Equal(t, []UnknownAction{{Exercise: "龙门架夹胸", Date: "2025-01-16"}}, res.Unknowns)
	assert.Equal(t, "龙门架夹胸 - 2025-01-16", res.Unknowns[0].String())
}

func TestParse_UnknownRepeatsPerSetLine(t *testing.T) {
	res := quietParser().Parse(diary("1月16日：胸部", "龙门架夹胸", "10：12个", "12：10个"))
	assert.Len(t, res.Unknowns, 2)
}

func TestParse_UnknownNeverPrimary(t *testing.T) {
	res := quietParser().Parse(diary("1月16日：未知", "龙门架夹胸", "10：12个"))
	require.Len(t, res.Records, 1)
	assert.False(t, res.Records[0].IsPrimary)
}

func TestParse_CombinedExercise(t *testing.T) {
	res := quietParser().Parse(diary("3月2日：胸部", "哑铃飞鸟 ➕ 斯万开胸", "10：12个 10个"))

	require.Len(t, res.Records, 4)
	wantLabels := []string{"哑铃飞鸟｜哑铃｜双边", "哑铃飞鸟｜哑铃｜双边", "斯万开胸｜杠铃｜双边", "斯万开胸｜杠铃｜双边"}
	for i, r := range res.Records {
		assert.Equal(t, wantLabels[i], r.Exercise)
		assert.Equal(t, ts("2025-03-02 00:01:00").Add(time.Duration(i)*SetSpacing), r.Time)
		assert.Equal(t, "10", r.Weight)
		assert.True(t, r.IsPrimary)
	}
	assert.Empty(t, res.Unknowns)
}

func TestParse_CombinedWithUnknownConstituent(t *testing.T) {
	res := quietParser().Parse(diary("3月2日：胸部", "哑铃飞鸟➕龙门架夹胸", "10：12个"))

	require.Len(t, res.Records, 2)
	assert.True(t, res.Records[0].IsPrimary)
	assert.False(t, res.Records[1].IsPrimary)
	assert.Equal(t, []UnknownAction{{Exercise: "龙门架夹胸", Date: "2025-03-02"}}, res.Unknowns)
}

func TestParse_FullDiary(t *testing.T) {
	input := diary(
		"健身记录",
		"",
		"1月16日：胸部和三头肌",
		"哑铃平板卧推",
		"20：8个",
		"绳索下压(轻重量)",
		"+15：12个",
		"1月18日：背部",
		"高位下拉",
		"40：10个",
	)
	res := quietParser().Parse(input)

	want := []workoutlog.Record{
		{Time: ts("2025-01-16 00:01:00"), Primary: "胸部", Secondary: "三头肌", Exercise: "哑铃平板卧推｜哑铃｜双边", Weight: "20", Reps: 8, IsPrimary: true},
		{Time: ts("2025-01-16 00:02:00"), Primary: "胸部", Secondary: "三头肌", Exercise: "绳索下压｜器械｜双边", Weight: "+15", Reps: 12},
		{Time: ts("2025-01-18 00:01:00"), Primary: "背部", Exercise: "高位下拉｜器械｜双边", Weight: "40", Reps: 10, IsPrimary: true},
	}
	if diff := cmp.Diff(want, res.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.Failures)
}

func TestParse_HeaderFocusVariants(t *testing.T) {
	tests := []struct {
		header        string
		wantPrimary   string
		wantSecondary string
	}{
		{"4月8日：肩部", "肩部", ""},
		{"4月8日：", "", ""},
		{"4月8日： 背部 和 二头肌 ", "背部", "二头肌"},
		{"4 月 8 日：腿部", "腿部", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			res := quietParser().Parse(diary(tt.header, "杠铃推举", "30：5个"))
			require.Len(t, res.Records, 1)
			r := res.Records[0]
			assert.Equal(t, ts("2025-04-08 00:01:00"), r.Time)
			assert.Equal(t, tt.wantPrimary, r.Primary)
			assert.Equal(t, tt.wantSecondary, r.Secondary)
			assert.Equal(t, tt.wantPrimary == "肩部", r.IsPrimary)
		})
	}
}

func TestParse_ConfiguredYear(t *testing.T) {
	res := quietParser(WithYear(2024)).Parse(diary("2月29日：腿部", "腿举", "100：10个"))
	require.Len(t, res.Records, 1)
	assert.Equal(t, ts("2024-02-29 00:01:00"), res.Records[0].Time)

	res = quietParser(WithYear(2025)).Parse(diary("2月29日：腿部", "腿举", "100：10个"))
	assert.Empty(t, res.Records)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, derrors.CodeHeaderDateInvalid, derrors.GetCode(res.Failures[0].Err))
	assert.Equal(t, derrors.CodeLineFailed, derrors.GetCode(res.Failures[1].Err))
}

func TestParse_BadHeaderKeepsPreviousDay(t *testing.T) {
	input := diary(
		"1月16日：胸部",
		"哑铃平板卧推",
		"20：8个",
		"13月1日：背部",
		"高位下拉",
		"40：10个",
	)
	res := quietParser().Parse(input)

	require.Len(t, res.Failures, 1)
	fail := res.Failures[0]
	assert.Equal(t, 4, fail.Number)
	assert.Equal(t, KindHeader, fail.Kind)
	assert.True(t, derrors.IsRecoverable(fail.Err))
	assert.Equal(t, derrors.CodeHeaderDateInvalid, derrors.GetCode(fail.Err))

	require.Len(t, res.Records, 2)
	stale := res.Records[1]
	assert.Equal(t, ts("2025-01-16 00:02:00"), stale.Time, "set is attributed to the previous day")
	assert.Equal(t, "胸部", stale.Primary)
	assert.False(t, stale.IsPrimary)
}

func TestParse_BadHeaderDropsDay(t *testing.T) {
	input := diary(
		"1月16日：胸部",
		"哑铃平板卧推",
		"20：8个",
		"13月1日：背部",
		"高位下拉",
		"40：10个",
		"1月18日：背部",
		"高位下拉",
		"45：8个",
	)
	res := quietParser(DropDayOnBadHeader(true)).Parse(input)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "2025-01-18", res.Records[1].Day())

	require.Len(t, res.Failures, 2)
	assert.Equal(t, derrors.CodeHeaderDateInvalid, derrors.GetCode(res.Failures[0].Err))
	assert.Equal(t, derrors.CodeLineFailed, derrors.GetCode(res.Failures[1].Err))
	assert.Equal(t, 6, res.Failures[1].Number)
}

func TestParse_MalformedSetData(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCode derrors.ErrorCode
	}{
		{"missing colon", "20 8个", derrors.CodeSetDataMalformed},
		{"ascii colon", "20:8个", derrors.CodeSetDataMalformed},
		{"no reps unit", "20：8 10", derrors.CodeSetDataMalformed},
		{"chinese numerals", "20：八个", derrors.CodeSetDataMalformed},
		{"absurd reps", "20：99999999999999999999个", derrors.CodeLineFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := quietParser().Parse(diary("1月16日：胸部", "哑铃平板卧推", tt.line, "22：6个"))

			require.Len(t, res.Failures, 1)
			assert.Equal(t, tt.wantCode, derrors.GetCode(res.Failures[0].Err))
			assert.Equal(t, 3, res.Failures[0].Number)
			assert.Equal(t, tt.line, res.Failures[0].Text)
			require.Len(t, res.Records, 1, "following lines still parse")
			assert.Equal(t, "22", res.Records[0].Weight)
		})
	}
}

func TestParse_SetDataWithoutContext(t *testing.T) {
	res := quietParser().Parse(diary("20：8个"))
	require.Len(t, res.Failures, 1)
	assert.Equal(t, derrors.CodeLineFailed, derrors.GetCode(res.Failures[0].Err))

	res = quietParser().Parse(diary("哑铃平板卧推", "20：8个"))
	require.Len(t, res.Failures, 1)
	assert.Equal(t, derrors.CodeLineFailed, derrors.GetCode(res.Failures[0].Err))
	assert.Empty(t, res.Records)
}

func TestParse_FullWidthInput(t *testing.T) {
	res := quietParser().Parse(diary("１月１６日：胸部", "哑铃平板卧推", "（左）２０：８个　１０个"))

	require.Len(t, res.Records, 2)
	assert.Equal(t, ts("2025-01-16 00:01:00"), res.Records[0].Time)
	assert.Equal(t, "（左）２０", res.Records[0].Weight, "weight notation is kept verbatim")
	assert.Equal(t, 8, res.Records[0].Reps)
	assert.Equal(t, 10, res.Records[1].Reps)
}

func TestParse_CRLFInput(t *testing.T) {
	res := quietParser().Parse("1月16日：胸部\r\n哑铃平板卧推\r\n20：8个\r\n")
	require.Len(t, res.Records, 1)
	assert.Equal(t, "哑铃平板卧推｜哑铃｜双边", res.Records[0].Exercise)
}

func TestParse_EveryTaxonomyNameIsKnown(t *testing.T) {
	lines := []string{"1月16日：胸部"}
	for _, g := range taxonomy.DefaultGroups {
		for _, name := range g.Names {
			lines = append(lines, name, "10：10个")
		}
	}
	res := quietParser().Parse(diary(lines...))
	assert.Empty(t, res.Unknowns)
	assert.Empty(t, res.Failures)
}

func TestParse_Idempotent(t *testing.T) {
	input := diary("1月16日：胸部和三头肌", "哑铃平板卧推", "20：8个 6个", "龙门架夹胸", "10：12个")

	first, err := workoutlog.Marshal(quietParser().Parse(input).Records)
	require.NoError(t, err)
	second, err := workoutlog.Marshal(quietParser().Parse(input).Records)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestParse_CustomTaxonomy(t *testing.T) {
	idx, err := taxonomy.Load([]byte("胸部:\n  器械:\n    双边: [龙门架夹胸]\n"))
	require.NoError(t, err)

	res := quietParser(WithTaxonomy(idx)).Parse(diary("1月16日：胸部", "龙门架夹胸", "10：12个"))
	require.Len(t, res.Records, 1)
	assert.Equal(t, "龙门架夹胸｜器械｜双边", res.Records[0].Exercise)
	assert.True(t, res.Records[0].IsPrimary)
	assert.Empty(t, res.Unknowns)
}

func TestStep_Transitions(t *testing.T) {
	p := quietParser()
	var c Context
	assert.Equal(t, AwaitingHeader, c.Phase)

	lr := p.Step(&c, 1, "健身记录（2025）")
	assert.Equal(t, KindSkip, lr.Kind)
	assert.Equal(t, AwaitingHeader, c.Phase)

	lr = p.Step(&c, 2, "  1月16日：胸部和三头肌  ")
	require.NoError(t, lr.Err)
	assert.Equal(t, KindHeader, lr.Kind)
	assert.Equal(t, AwaitingExercise, c.Phase)
	assert.True(t, c.HasDate)
	assert.Equal(t, "胸部", c.Primary)
	assert.Equal(t, "三头肌", c.Secondary)
	assert.Equal(t, 0, c.Minute)

	lr = p.Step(&c, 3, "哑铃平板卧推 (最后一组力竭)")
	assert.Equal(t, KindExercise, lr.Kind)
	assert.Equal(t, AwaitingSetData, c.Phase)
	assert.Equal(t, "哑铃平板卧推", c.Exercise)
	assert.Equal(t, 1, c.Minute)

	lr = p.Step(&c, 4, "20：8个")
	require.NoError(t, lr.Err)
	assert.Equal(t, KindSetData, lr.Kind)
	assert.Len(t, lr.Records, 1)
	assert.Equal(t, AwaitingSetData, c.Phase)

	p.Step(&c, 5, "绳索下压")
	assert.Equal(t, 2, c.Minute)
	assert.Equal(t, "绳索下压", c.Exercise)

	lr = p.Step(&c, 6, "1月18日：背部")
	require.NoError(t, lr.Err)
	assert.Equal(t, 0, c.Minute)
	assert.Equal(t, "", c.Secondary)
	assert.Equal(t, AwaitingExercise, c.Phase)
}

func TestStep_FailureMetadata(t *testing.T) {
	p := quietParser()
	var c Context

	lr := p.Step(&c, 7, "20：8个")
	var de *derrors.DiaryError
	require.ErrorAs(t, lr.Err, &de)
	assert.Equal(t, "7", de.Metadata["line"])
	assert.Equal(t, "20：8个", de.Metadata["text"])
	assert.Empty(t, lr.Records)
}
