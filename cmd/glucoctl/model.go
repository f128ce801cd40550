package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/localnerve/glucodb/data"
	"github.com/localnerve/glucodb/internal/classifier"
	"github.com/spf13/cobra"
)

func init() {
	opts := classifier.DefaultOptions()
	var csvPath string

	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "Train the diabetes risk model and report its accuracy",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := classifier.NewService(opts)
			model, err := svc.Bootstrap(csvPath, data.TrainingIndicators)
			if err != nil {
				return err
			}
			printModel(model, cmd.OutOrStdout())
			return nil
		},
	}
	trainCmd.Flags().StringVarP(&csvPath, "data", "d", "", "training CSV (defaults to the bundled sample)")
	trainCmd.Flags().Float64Var(&opts.TestFraction, "test-fraction", opts.TestFraction, "share of rows held out for scoring")
	trainCmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "shuffle seed")
	trainCmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "gradient descent iterations")
	rootCmd.AddCommand(trainCmd)
}

func printModel(m *classifier.Model, w io.Writer) {
	_, _ = fmt.Fprintf(w, "accuracy:   %.4f\n", m.Accuracy)
	_, _ = fmt.Fprintf(w, "train rows: %d\n", m.TrainSize)
	_, _ = fmt.Fprintf(w, "test rows:  %d\n", m.TestSize)
	_, _ = fmt.Fprintf(w, "iterations: %d\n", m.Iterations)

	importance := m.FeatureImportance()
	names := make([]string, 0, len(importance))
	for name := range importance {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return importance[names[i]] > importance[names[j]] })

	_, _ = fmt.Fprintln(w, "feature importance:")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-20s %.4f\n", name, importance[name])
	}
}
