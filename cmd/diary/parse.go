package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ripixel/fitglue-diary/pkg/diary"
	"github.com/ripixel/fitglue-diary/pkg/domain/file_generators"
	"github.com/ripixel/fitglue-diary/pkg/infrastructure/storage"
	"github.com/ripixel/fitglue-diary/pkg/taxonomy"
	"github.com/ripixel/fitglue-diary/pkg/workoutlog"
)

const defaultDiaryFile = "训练记录整理.txt"

func parseCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [diary file]",
		Short: "Convert a diary text file into the training CSV",
		Long: `Read a workout diary, write one CSV row per performed set, and list
exercise names the taxonomy does not know.

The diary file and the outputs may be local paths or gs://bucket/object URLs.
When an output FIT directory is configured, one FIT activity per diary day
is written there as YYYY-MM-DD.fit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := defaultDiaryFile
			if len(args) == 1 {
				input = args[0]
			}
			return a.runParse(cmd, input)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "fitness_data.csv", "CSV file to write")
	flags.String("fit-dir", "", "Directory for per-day FIT files (disabled when empty)")
	flags.String("encoding", "utf-8", "Diary text encoding: utf-8, gbk or gb18030")
	flags.Bool("drop-day-on-bad-header", false, "Reject sets after an unreadable header date instead of keeping the previous day")

	for key, flag := range map[string]string{
		"output.csv":                    "output",
		"output.fit_dir":                "fit-dir",
		"input.encoding":                "encoding",
		"parser.drop_day_on_bad_header": "drop-day-on-bad-header",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()
	logger := a.logger.With("component", "parse")

	idx, err := a.loadTaxonomy(ctx)
	if err != nil {
		return err
	}

	inLoc, err := storage.ParseLocation(input)
	if err != nil {
		return err
	}
	raw, err := a.blobs.Read(ctx, inLoc)
	if err != nil {
		return fmt.Errorf("read diary %s: %w", inLoc, err)
	}
	text, err := diary.DecodeText(raw, a.cfg.InputEncoding)
	if err != nil {
		return err
	}

	parser := diary.NewParser(
		diary.WithTaxonomy(idx),
		diary.WithYear(a.cfg.Year),
		diary.WithLogger(a.logger),
		diary.DropDayOnBadHeader(a.cfg.DropDayOnBadHeader),
	)
	res := parser.Parse(text)

	data, err := workoutlog.Marshal(res.Records)
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	outLoc, err := storage.ParseLocation(a.cfg.OutputCSV)
	if err != nil {
		return err
	}
	if err := a.blobs.Write(ctx, outLoc, data); err != nil {
		return fmt.Errorf("write %s: %w", outLoc, err)
	}
	logger.Info("Wrote CSV", "path", outLoc.String(), "records", len(res.Records))

	if a.cfg.OutputFitDir != "" {
		if err := a.writeFitFiles(cmd, res.Records, idx); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(res.Unknowns) > 0 {
		fmt.Fprintln(out, "以下是未识别的动作及其日期：")
		for _, u := range res.Unknowns {
			fmt.Fprintln(out, u.String())
		}
	} else {
		fmt.Fprintln(out, "所有动作均已正确识别，没有未知动作。")
	}
	fmt.Fprintf(out, "已写入 %d 条记录到 %s，跳过 %d 行\n", len(res.Records), outLoc, len(res.Failures))
	return nil
}

func (a *app) writeFitFiles(cmd *cobra.Command, records []workoutlog.Record, idx *taxonomy.Index) error {
	ctx := cmd.Context()
	logger := a.logger.With("component", "fit")

	dir, err := storage.ParseLocation(a.cfg.OutputFitDir)
	if err != nil {
		return err
	}
	files, err := file_generators.GenerateDailyFitFiles(records, idx)
	if err != nil {
		return err
	}

	for _, f := range files {
		loc := dir.Child(f.Name())
		if err := a.blobs.Write(ctx, loc, f.Data); err != nil {
			return fmt.Errorf("write %s: %w", loc, err)
		}
		logger.Info("Wrote FIT file", "path", loc.String(), "sets", f.Sets, "bytes", len(f.Data))
	}
	return nil
}
