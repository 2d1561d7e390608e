package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

func logCommand(a *app) *cobra.Command {
	var (
		in   workoutlog.SetInput
		side string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append one set to the training log",
		Example: `  diary log --primary 胸部 --secondary 三头肌 --exercise 哑铃平板卧推 --weight 20 --reps 8
  diary log --primary 背部 --exercise 单臂哑铃划船 --weight 18 --reps 10 --side left`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Side = workoutlog.Side(side)
			return a.runLog(cmd, in, time.Now())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Primary, "primary", "", "Primary muscle of the session")
	flags.StringVar(&in.Secondary, "secondary", "", "Secondary muscle of the session")
	flags.StringVar(&in.Exercise, "exercise", "", "Exercise name from the taxonomy")
	flags.Float64Var(&in.Weight, "weight", 0, "Weight in KG (ignored for bodyweight exercises)")
	flags.IntVar(&in.Reps, "reps", 0, "Repetitions")
	flags.StringVar(&side, "side", "", "left or right, required for unilateral exercises")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("exercise")
	_ = cmd.MarkFlagRequired("reps")
	return cmd
}

func (a *app) runLog(cmd *cobra.Command, in workoutlog.SetInput, now time.Time) error {
	ctx := cmd.Context()

	idx, err := a.loadTaxonomy(ctx)
	if err != nil {
		return err
	}
	rec, err := workoutlog.NewSet(idx, in, now)
	if err != nil {
		return err
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	existing, err := store.Load(ctx)
	if err != nil {
		return err
	}
	previous := workoutlog.LatestWeight(existing, rec.Exercise)

	if err := store.Save(ctx, append(existing, rec)); err != nil {
		return err
	}
	a.logger.Info("Logged set", "component", "log", "exercise", rec.Exercise, "weight", rec.Weight, "reps", rec.Reps)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "已记录：%s %s\n", rec.Exercise, workoutlog.FormatSet(rec))
	if previous > 0 {
		fmt.Fprintf(out, "上次重量：%sKG\n", strconv.FormatFloat(previous, 'f', -1, 64))
	}
	return nil
}
