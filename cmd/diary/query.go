package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

func dayCommand(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day of the training log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format(workoutlog.DateLayout)
			}
			if err := checkDate("date", date); err != nil {
				return err
			}
			records, err := a.loadLog(cmd)
			if err != nil {
				return err
			}
			printDayView(cmd.OutOrStdout(), workoutlog.BuildDayView(records, date))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to show, YYYY-MM-DD (default today)")
	return cmd
}

func printDayView(w io.Writer, v workoutlog.DayView) {
	if v.Empty() {
		fmt.Fprintf(w, "%s 没有训练记录\n", v.Date)
		return
	}
	fmt.Fprintf(w, "%s 训练记录\n", v.Date)
	for _, group := range []struct {
		title    string
		sections []workoutlog.MuscleSection
	}{
		{"主训", v.Primary},
		{"辅训", v.Secondary},
	} {
		for _, sec := range group.sections {
			fmt.Fprintf(w, "\n【%s：%s】\n", group.title, sec.Muscle)
			for _, ex := range sec.Exercises {
				fmt.Fprintf(w, "  %s\n", ex.Label)
				for i, set := range ex.Sets {
					fmt.Fprintf(w, "    第%d组  %s\n", i+1, workoutlog.FormatSet(set))
				}
			}
		}
	}
}

func progressCommand(a *app) *cobra.Command {
	var label, from, to string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Daily max weight for one exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRange(from, to); err != nil {
				return err
			}
			records, err := a.loadLog(cmd)
			if err != nil {
				return err
			}
			label = resolveLabel(records, label)
			points := workoutlog.Progression(workoutlog.Between(records, from, to), label)

			out := cmd.OutOrStdout()
			if len(points) == 0 {
				fmt.Fprintf(out, "%s 没有可统计的重量记录\n", label)
				return nil
			}
			fmt.Fprintln(out, label)
			for _, p := range points {
				fmt.Fprintf(out, "%s  %sKG × %d个\n", p.Date, strconv.FormatFloat(p.MaxWeight, 'f', -1, 64), p.LastReps)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&label, "exercise", "", "Exercise label or bare name")
	flags.StringVar(&from, "from", "", "First day, YYYY-MM-DD")
	flags.StringVar(&to, "to", "", "Last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("exercise")
	return cmd
}

// resolveLabel lets a bare exercise name stand for the first logged label
// that starts with it.
func resolveLabel(records []workoutlog.Record, label string) string {
	if strings.Contains(label, taxonomy.LabelSeparator) {
		return label
	}
	for _, l := range workoutlog.Labels(records) {
		if strings.HasPrefix(l, label+taxonomy.LabelSeparator) {
			return l
		}
	}
	return label
}

func frequencyCommand(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Training days per muscle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRange(from, to); err != nil {
				return err
			}
			records, err := a.loadLog(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range workoutlog.Frequency(workoutlog.Between(records, from, to)) {
				fmt.Fprintf(out, "%s\t%d天\n", f.Muscle, f.Days)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "Last day, YYYY-MM-DD")
	return cmd
}

func exercisesCommand(a *app) *cobra.Command {
	var muscle string
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List exercise labels from the taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.loadTaxonomy(cmd.Context())
			if err != nil {
				return err
			}
			muscles := taxonomy.Muscles
			if muscle != "" {
				if !taxonomy.IsMuscle(muscle) {
					return derrors.ErrValidation.WithMessage(fmt.Sprintf("unknown muscle %q", muscle))
				}
				muscles = []taxonomy.Muscle{taxonomy.Muscle(muscle)}
			}

			out := cmd.OutOrStdout()
			for _, m := range muscles {
				fmt.Fprintf(out, "%s\n", m)
				for _, l := range idx.Labels(m) {
					fmt.Fprintf(out, "  %s\n", l)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&muscle, "muscle", "", "Only list this muscle")
	return cmd
}

func (a *app) loadLog(cmd *cobra.Command) ([]workoutlog.Record, error) {
	store, err := a.openStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	return store.Load(cmd.Context())
}

func checkDate(flag, s string) error {
	if _, err := time.Parse(workoutlog.DateLayout, s); err != nil {
		return derrors.ErrValidation.WithMessage(fmt.Sprintf("--%s must be YYYY-MM-DD, got %q", flag, s))
	}
	return nil
}

func checkRange(from, to string) error {
	if from != "" {
		if err := checkDate("from", from); err != nil {
			return err
		}
	}
	if to != "" {
		if err := checkDate("to", to); err != nil {
			return err
		}
	}
	if from != "" && to != "" && from > to {
		return derrors.ErrValidation.WithMessage("--from is after --to")
	}
	return nil
}
