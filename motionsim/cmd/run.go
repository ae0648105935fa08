package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/sarchlab/motionsim/actuator"
	"github.com/sarchlab/motionsim/cancmd"
	"github.com/sarchlab/motionsim/monitoring"
	"github.com/sarchlab/motionsim/recording"
	"github.com/sarchlab/motionsim/scenario"
	"github.com/sarchlab/motionsim/sim"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a scenario and print the result messages as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		switch cfg.IDGenerator {
		case scenario.ParallelIDs:
			sim.UseParallelIDGenerator()
		default:
			sim.UseSequentialIDGenerator()
		}

		results := &scenario.ResultLog{}
		builder := scenario.MakeBuilder().WithResultSink(results)

		builder, recorder, err := withRecording(cmd, builder)
		if err != nil {
			return err
		}

		builder, closeCANLog, err := withCANLog(cmd, builder)
		if err != nil {
			return err
		}
		defer closeCANLog()

		if logSteps, _ := cmd.Flags().GetBool("log-steps"); logSteps {
			builder = builder.WithActuatorHook(
				actuator.NewStepLogger(log.New(cmd.ErrOrStderr(), "", 0)))
		}

		s, err := builder.Build(cfg)
		if err != nil {
			return err
		}

		if logEvents, _ := cmd.Flags().GetBool("log-events"); logEvents {
			s.GetEngine().AcceptHook(
				sim.NewEventLogger(log.New(cmd.ErrOrStderr(), "", 0)))
		}

		if err := startMonitor(cmd, s); err != nil {
			return err
		}

		end := cfg.EndTime
		if cmd.Flags().Changed("until") {
			end, _ = cmd.Flags().GetFloat64("until")
		}

		if err := scenario.Run(s, end); err != nil {
			return err
		}

		if recorder != nil {
			if err := recorder.Close(); err != nil {
				return err
			}
		}

		return printResults(cmd.OutOrStdout(), results)
	},
}

func withRecording(
	cmd *cobra.Command,
	builder scenario.Builder,
) (scenario.Builder, recording.DataRecorder, error) {
	path, _ := cmd.Flags().GetString("record")
	if !cmd.Flags().Changed("record") {
		path = os.Getenv(envRecord)
	}

	if path == "" {
		return builder, nil, nil
	}

	recorder := recording.New(path)
	builder = builder.
		WithResultSink(recording.NewResultTracer(recorder)).
		WithActuatorHook(recording.NewStepTracer(recorder)).
		WithSimulationEndHandler(recording.FlushAtEnd(recorder))

	return builder, recorder, nil
}

func withCANLog(
	cmd *cobra.Command,
	builder scenario.Builder,
) (scenario.Builder, func(), error) {
	path, _ := cmd.Flags().GetString("can-log")
	iface, _ := cmd.Flags().GetString("can-interface")

	switch path {
	case "":
		return builder, func() {}, nil
	case "-":
		logger := log.New(cmd.OutOrStdout(), "", 0)
		return builder.WithActuatorHook(cancmd.NewFrameLogger(logger, iface)),
			func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return builder, nil, err
	}

	logger := log.New(f, "", 0)
	closeFile := func() {
		if err := f.Close(); err != nil {
			log.Printf("cannot close %s: %v", path, err)
		}
	}

	return builder.WithActuatorHook(cancmd.NewFrameLogger(logger, iface)),
		closeFile, nil
}

func startMonitor(cmd *cobra.Command, s *sim.Simulation) error {
	enabled, _ := cmd.Flags().GetBool("monitor")
	if !enabled {
		return nil
	}

	port, _ := cmd.Flags().GetInt("monitor-port")
	if !cmd.Flags().Changed("monitor-port") {
		if env := os.Getenv(envMonitorPort); env != "" {
			p, err := strconv.Atoi(env)
			if err != nil {
				return fmt.Errorf("%s: %w", envMonitorPort, err)
			}

			port = p
		}
	}

	openBrowser, _ := cmd.Flags().GetBool("open-browser")

	m := monitoring.NewMonitor().
		WithPortNumber(port).
		WithBrowser(openBrowser)
	m.RegisterSimulation(s)
	m.StartServer()

	return nil
}

func printResults(w io.Writer, results *scenario.ResultLog) error {
	data, err := json.MarshalIndent(results.Results(), "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("record", "",
		"Record steps and results into the given SQLite database "+
			"(without the .sqlite3 suffix). Defaults to $"+envRecord+".")
	runCmd.Flags().String("can-log", "",
		"Write the command frame of every step in candump format to the "+
			"given file, or - for stdout.")
	runCmd.Flags().String("can-interface", "vcan0",
		"Interface name written in the CAN log.")
	runCmd.Flags().Float64("until", 0,
		"Stop the simulation at this time and fail the unfinished goals. "+
			"Overrides end_time of the scenario; 0 runs until all goals end.")
	runCmd.Flags().Bool("log-events", false, "Log every simulation event.")
	runCmd.Flags().Bool("log-steps", false, "Log every controller step.")
	runCmd.Flags().Bool("monitor", false, "Serve the monitoring API.")
	runCmd.Flags().Int("monitor-port", 0,
		"Port of the monitoring API. Defaults to $"+envMonitorPort+
			" or a random port.")
	runCmd.Flags().Bool("open-browser", false,
		"Open the monitoring API in a browser.")
}
