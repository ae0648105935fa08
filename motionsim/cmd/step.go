package cmd

import (
	"fmt"

	"github.com/sarchlab/motionsim/motion"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Evaluate a single controller step.",
	Long: "`step --s 0.5 --v 0.1` prints the velocity the controller " +
		"commands for the given remaining displacement and current velocity.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		s, _ := flags.GetFloat64("s")
		v, _ := flags.GetFloat64("v")
		now, _ := flags.GetFloat64("now")
		dest, _ := flags.GetFloat64("dest")
		dt, _ := flags.GetFloat64("dt")
		vMax, _ := flags.GetFloat64("v-max")
		aMax, _ := flags.GetFloat64("a-max")
		aNom, _ := flags.GetFloat64("a-nom")
		dxMin, _ := flags.GetFloat64("dx-min")

		params, err := motion.NewParams(vMax, aMax, aNom, dxMin)
		if err != nil {
			return err
		}

		out, err := motion.Compute(s, v, now, dest, params, dt)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(),
			"velocity=%g regime=%s braking_distance=%g\n",
			out.Velocity, out.Regime,
			params.BrakingDistance(out.Velocity, dest))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)

	d := motion.DefaultParams()
	f := stepCmd.Flags()
	f.Float64("s", 0, "Signed displacement from the current position to the goal.")
	f.Float64("v", 0, "Signed current velocity.")
	f.Float64("now", d.VMax(), "Cruise speed.")
	f.Float64("dest", 0, "Speed to hold at the goal.")
	f.Float64("dt", 0.01, "Time since the previous step.")
	f.Float64("v-max", d.VMax(), "Maximum speed.")
	f.Float64("a-max", d.AMax(), "Hard acceleration limit.")
	f.Float64("a-nom", d.ANom(), "Preferred acceleration.")
	f.Float64("dx-min", d.DxMin(), "Stopping deadband.")
}
