package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
)

type FieldStats struct {
	Name  string
	Count int
	Min   float64
	Max   float64
	Sum   float64
}

func NewFieldStats(name string) *FieldStats {
	return &FieldStats{
		Name: name,
		Min:  math.MaxFloat64,
		Max:  -math.MaxFloat64,
	}
}

func (fs *FieldStats) Update(v float64) {
	if math.IsNaN(v) {
		return
	}
	fs.Count++
	fs.Sum += v
	if v < fs.Min {
		fs.Min = v
	}
	if v > fs.Max {
		fs.Max = v
	}
}

func (fs *FieldStats) Avg() float64 {
	if fs.Count == 0 {
		return 0
	}
	return fs.Sum / float64(fs.Count)
}

// CategoryStats summarises the sets of one exercise category.
type CategoryStats struct {
	Category typedef.ExerciseCategory
	Sets     int
	Reps     *FieldStats
	Weight   *FieldStats
}

// Summary is what inspect found in a FIT file.
type Summary struct {
	Sets       int
	Sessions   int
	Categories []*CategoryStats
}

func inspect(data []byte, verbose io.Writer) (*Summary, error) {
	fitData, err := decoder.New(bytes.NewReader(data)).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	byCategory := map[typedef.ExerciseCategory]*CategoryStats{}
	sum := &Summary{}

	for i := range fitData.Messages {
		msg := &fitData.Messages[i]
		switch msg.Num {
		case typedef.MesgNumSession:
			sum.Sessions++
		case typedef.MesgNumSet:
			set := mesgdef.NewSet(msg)
			sum.Sets++

			category := typedef.ExerciseCategoryUnknown
			if len(set.Category) > 0 {
				category = set.Category[0]
			}
			if verbose != nil {
				fmt.Fprintf(verbose, "Set %d: %s category=%s reps=%d weight=%.2f\n",
					sum.Sets, set.Timestamp.UTC().Format("2006-01-02 15:04:05"), category, set.Repetitions, set.WeightScaled())
			}

			cs, ok := byCategory[category]
			if !ok {
				cs = &CategoryStats{Category: category, Reps: NewFieldStats("Reps"), Weight: NewFieldStats("Weight")}
				byCategory[category] = cs
			}
			cs.Sets++
			if set.Repetitions != math.MaxUint16 {
				cs.Reps.Update(float64(set.Repetitions))
			}
			cs.Weight.Update(set.WeightScaled())
		}
	}

	for _, cs := range byCategory {
		sum.Categories = append(sum.Categories, cs)
	}
	sort.Slice(sum.Categories, func(i, j int) bool {
		return sum.Categories[i].Category < sum.Categories[j].Category
	})
	return sum, nil
}

func printSummary(w io.Writer, sum *Summary) {
	fmt.Fprintf(w, "\nSessions: %d\nTotal Sets: %d\n", sum.Sessions, sum.Sets)
	fmt.Fprintln(w, "\nCategory Statistics:")

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Category\tSets\tReps(min/max/avg)\tWeight(min/max/avg)")
	fmt.Fprintln(tw, "--------\t----\t-----------------\t-------------------")
	for _, cs := range sum.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", cs.Category, cs.Sets, minMaxAvg(cs.Reps), minMaxAvg(cs.Weight))
	}
	tw.Flush()
}

func minMaxAvg(fs *FieldStats) string {
	if fs.Count == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f/%.1f/%.1f", fs.Min, fs.Max, fs.Avg())
}

func main() {
	inputPath := flag.String("input", "", "Path to FIT file")
	detailed := flag.Bool("detailed-dump", false, "Print every set")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Please provide input file with -input")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	var verbose io.Writer
	if *detailed {
		verbose = os.Stdout
	}

	fmt.Println("Analyzing FIT file...")
	sum, err := inspect(data, verbose)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	printSummary(os.Stdout, sum)
}
