package cmd

import (
	"errors"
	"fmt"

	"github.com/edp1096/toy-engineer/pkg/calc"
	"github.com/edp1096/toy-engineer/pkg/quantity"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series <E-series> closest|range <value...>",
	Short: "Look up standard E-series values",
	Long: `Looks up preferred numbers of an IEC 60063 series.

Examples:
  engineer series E12 closest 4.8k
  engineer series E24 range 1k 10k
  engineer series E24 range 1k 10k --inclusive`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSeries,
}

var seriesInclusive bool

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesCmd.Flags().BoolVar(&seriesInclusive, "inclusive", false, "include the maximum of a range")
}

func runSeries(cmd *cobra.Command, args []string) error {
	series, err := calc.ParseSeries(args[0])
	if err != nil {
		return err
	}
	values := make([]quantity.Value, 0, len(args)-2)
	for _, a := range args[2:] {
		v, err := quantity.Parse(a)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	digits := cfg.Output.SignificantDigits
	out := cmd.OutOrStdout()

	switch args[1] {
	case "closest":
		for _, v := range values {
			m, err := series.SmallerLarger(v.Rat())
			if err != nil {
				return err
			}
			best, err := series.Closest(v.Rat())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: smaller %s (%s), larger %s (%s), closest %s\n",
				v.FormatDigits(digits),
				quantity.Format(m.Smaller.Float(), digits), quantity.FormatPercent(m.Smaller.ErrorFloat()),
				quantity.Format(m.Larger.Float(), digits), quantity.FormatPercent(m.Larger.ErrorFloat()),
				quantity.Format(best.Float(), digits))
		}
	case "range":
		if len(values) != 2 {
			return errors.New("range needs a minimum and a maximum")
		}
		seq, err := series.FromTo(values[0].Rat(), values[1].Rat(), seriesInclusive)
		if err != nil {
			return err
		}
		n := 0
		for r := range seq {
			fmt.Fprintln(out, quantity.FromRat(r).FormatDigits(digits))
			n++
		}
		logf("%d values of %s", n, series.Name())
	default:
		return fmt.Errorf("unknown lookup %q, want closest or range", args[1])
	}
	return nil
}
