// Package cmd wires the experiments package to a Cobra CLI, the idiomatic
// Go replacement for original_source/src/runner.cpp's hand-parsed argv
// switch.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/JeremiahGelb/A-PLUS-Q/experiments"
	"github.com/JeremiahGelb/A-PLUS-Q/sim"
	"github.com/JeremiahGelb/A-PLUS-Q/sim/trace"
)

var (
	debug bool
	quiet bool
	seed  int64
)

var rootCmd = &cobra.Command{
	Use:   "a-plus-q",
	Short: "Discrete-event queueing-network simulator",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug-level logging and event tracing")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress the stats summary block")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "replicate seed offset")

	rootCmd.AddCommand(testCmd, proj1Cmd, proj2Cmd, proj3Cmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setUpLogging() {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// newTracer returns a SimulationTrace when --debug is set, recording every
// customer event log entry for later summarization; otherwise nil, which
// every experiments.RunProjN config treats as "tracing disabled".
func newTracer() *trace.SimulationTrace {
	if !debug {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
}

func printTraceSummary(label string, st *trace.SimulationTrace) {
	if st == nil {
		return
	}
	summary := trace.Summarize(st)
	logrus.Debugf("%s: trace: %d events across %d places (entered=%d exited=%d dropped=%d)",
		label, summary.TotalEvents, summary.UniquePlaces, summary.EnteredCount, summary.ExitedCount, summary.DroppedCount)
	for place, count := range summary.PlaceCounts {
		logrus.Debugf("%s: trace: %s: %d events", label, place, count)
	}
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Print how to run the package unit test suite (does not run it)",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Info("use `go test ./...` to run the unit test suite")
	},
}

var proj1Cmd = &cobra.Command{
	Use:   "proj1 <lambda> <K> <C> <L>",
	Short: "M/M/1/K single-queue study",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		lambda := mustFloat(args[0])
		k := mustInt(args[1])
		c := mustInt(args[2])
		l := mustInt(args[3])

		logrus.Infof("proj1 lambda=%g K=%d C=%d L=%d", lambda, k, c, l)

		cfg := experiments.Proj1Config{
			Lambda:           lambda,
			QueueCapacity:    k,
			CustomersToServe: c,
			SnapshotBase:     uint32(l),
			Tracer:           newTracer(),
		}
		result := experiments.RunProj1(cfg, seed)

		if !quiet {
			printResult("proj1", result)
		}
		printTraceSummary("proj1", result.Trace)
	},
}

var proj2Cmd = &cobra.Command{
	Use:   "proj2 <lambda> <Kcpu> <Kio> <C> <L> <M>",
	Short: "CPU+3xIO web server study",
	Args:  cobra.ExactArgs(6),
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		lambda := mustFloat(args[0])
		kcpu := mustInt(args[1])
		kio := mustInt(args[2])
		c := mustInt(args[3])
		l := mustInt(args[4])
		m := mustInt(args[5])

		mode := experiments.Proj2MM1
		if l == 1 {
			mode = experiments.Proj2CPU
		}

		discipline, err := proj2DisciplineFromIndex(m)
		if err != nil {
			logrus.Fatal(err)
		}

		logrus.Infof("proj2 lambda=%g Kcpu=%d Kio=%d C=%d L=%d M=%d", lambda, kcpu, kio, c, l, m)

		cfg := experiments.Proj2Config{
			Lambda:           lambda,
			CpuQueueCapacity: kcpu,
			IoQueueCapacity:  kio,
			CustomersToServe: c,
			Mode:             mode,
			Discipline:       discipline,
			Tracer:           newTracer(),
		}
		result := experiments.RunProj2(cfg, seed)

		if !quiet {
			printResult("proj2", result)
		}
		printTraceSummary("proj2", result.Trace)
	},
}

var proj3Cmd = &cobra.Command{
	Use:   "proj3 <lambda> <C> <L> <M>",
	Short: "M/G/k study",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		lambda := mustFloat(args[0])
		c := mustInt(args[1])
		l := mustInt(args[2])
		m := mustInt(args[3])

		var discipline sim.Discipline
		switch l {
		case 1:
			discipline = sim.FCFS
		case 2:
			discipline = sim.SJFNP
		default:
			logrus.Fatalf("proj3: unknown discipline index %d (want 1=FCFS, 2=SJF_NP)", l)
		}

		var mode experiments.Proj3Mode
		switch m {
		case 0:
			mode = experiments.Proj3MM3
		case 1:
			mode = experiments.Proj3MG3
		case 2:
			mode = experiments.Proj3MG1
		default:
			logrus.Fatalf("proj3: unknown mode index %d (want 0=MM3, 1=MG3, 2=MG1)", m)
		}

		logrus.Infof("proj3 lambda=%g C=%d L=%d M=%d", lambda, c, l, m)

		cfg := experiments.Proj3Config{
			Lambda:           lambda,
			CustomersToServe: c,
			Discipline:       discipline,
			Mode:             mode,
			Tracer:           newTracer(),
		}
		result := experiments.RunProj3(cfg, seed)

		if !quiet {
			printResult("proj3", result)
		}
		printTraceSummary("proj3", result.Trace)
	},
}

func proj2DisciplineFromIndex(m int) (sim.Discipline, error) {
	switch m {
	case 1:
		return sim.FCFS, nil
	case 2:
		return sim.LCFSNP, nil
	case 3:
		return sim.SJFNP, nil
	case 4:
		return sim.PrioNP, nil
	case 5:
		return sim.PrioP, nil
	default:
		return 0, fmt.Errorf("proj2: unknown discipline index %d (want 1..5)", m)
	}
}

func printResult(label string, result experiments.RunResult) {
	fmt.Printf("%s: Master Clock Value: %g\n", label, result.EndTime)
	fmt.Printf("%s: Average Service Time: %g\n", label, result.ServiceTime)
	fmt.Printf("%s: Average System Time: %g\n", label, result.SystemTime)
	for name, rates := range result.LossRates {
		for priority, rate := range rates {
			fmt.Printf("%s: %s Priority_%s Loss Rate: %g\n", label, name, priorityLabel(priority), rate)
		}
	}
}

func priorityLabel(priority uint32) string {
	if priority == sim.AllPriorities {
		return "AVERAGE"
	}
	return strconv.FormatUint(uint64(priority), 10)
}

func mustFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logrus.Fatalf("expected a number, got %q", s)
	}
	return v
}

func mustInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		logrus.Fatalf("expected an integer, got %q", s)
	}
	return v
}
