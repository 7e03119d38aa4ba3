package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chipwizard-sim/chipwizard-sim/savefile"
	"github.com/chipwizard-sim/chipwizard-sim/sim"
)

var (
	// CLI flags
	logLevel        string // Log verbosity level
	levelsFile      string // YAML file attaching signal schedules to levels
	jsonOutput      bool   // Use JSON output mode (validate-all)
	includeSolution bool   // Include the raw save string in JSON output
	maxParallelism  int    // Number of workers for validate-all
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "chipwizard-sim",
	Short: "Simulate ChipWizard (Last Call BBS) solutions",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// simulateCmd runs one save slot against one level and dumps the outcome.
var simulateCmd = &cobra.Command{
	Use:   "simulate <level-name> <slot> <save-file>",
	Short: "Simulate one saved solution",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		level, err := sim.LevelByName(args[0])
		if err != nil {
			logrus.Fatalf("Could not resolve level: %v", err)
		}
		slot, err := strconv.Atoi(args[1])
		if err != nil {
			logrus.Fatalf("Slot must be a number, got %q", args[1])
		}

		schedules := loadSchedules()
		full, ok := schedules[level.ID]
		if !ok {
			logrus.Fatalf("No signal schedule for level %q; provide one with --levels", level.Name)
		}

		solutions := readSaveFile(args[2])
		save, ok := solutions[level.ID][slot]
		if !ok {
			logrus.Fatalf("No solution in slot %d for level %s (slots are 0-indexed, unlike in the game)", slot, level.Name)
		}

		solution, err := savefile.ParseSolution(save)
		if err != nil {
			logrus.Fatalf("Could not parse solution: %v", err)
		}
		result, err := sim.Simulate(full, solution)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		fmt.Printf("%s (Slot %d)\n", level.Name, slot)
		result.Metrics.Print()
		fmt.Println()
		fmt.Println("Solution:")
		fmt.Print(solution.Visualize())
		if n := len(result.States); n > 0 {
			fmt.Println("Final state:")
			fmt.Print(result.States[n-1].Visualize())
		}
		fmt.Println()
		fmt.Println("Signals:")
		for _, sig := range sortedSignals(result) {
			verdict := "Incorrect"
			if sig.Matches() {
				verdict = "Correct"
			}
			fmt.Printf("%s: %s\n", sig.Name, verdict)
			fmt.Printf("    Have: %s\n", bitString(sig.Values))
			fmt.Printf("    Want: %s\n", bitString(sig.Target))
		}
	},
}

// validationRow is one validate-all outcome, shaped for both output modes.
type validationRow struct {
	LevelName string      `json:"level_name"`
	LevelID   int         `json:"level_id"`
	Slot      int         `json:"slot"`
	Solution  string      `json:"solution,omitempty"`
	Ticks     int         `json:"ticks"`
	Correct   bool        `json:"correct"`
	Error     string      `json:"error,omitempty"`
	Metrics   sim.Metrics `json:"metrics"`
}

// validateAllCmd simulates every solution in a save file. Runs are
// independent, so they fan out across maxParallelism workers.
var validateAllCmd = &cobra.Command{
	Use:   "validate-all <save-file>",
	Short: "Validate all solutions in a save file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		solutions := readSaveFile(args[0])
		schedules := loadSchedules()

		type task struct {
			level *sim.Level
			slot  int
			save  string
		}
		var tasks []task
		for _, level := range sim.Levels {
			run := level
			if full, ok := schedules[level.ID]; ok {
				run = full
			}
			slots := make([]int, 0, len(solutions[level.ID]))
			for slot := range solutions[level.ID] {
				slots = append(slots, slot)
			}
			sort.Ints(slots)
			for _, slot := range slots {
				tasks = append(tasks, task{run, slot, solutions[level.ID][slot]})
			}
		}

		workers := maxParallelism
		if workers < 1 {
			workers = 1
		}
		rows := make([]validationRow, len(tasks))
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					t := tasks[i]
					rows[i] = runOne(t.level, t.slot, t.save)
				}
			}()
		}
		for i := range tasks {
			jobs <- i
		}
		close(jobs)
		wg.Wait()

		if jsonOutput {
			out, err := json.Marshal(rows)
			if err != nil {
				logrus.Fatalf("Could not marshal results: %v", err)
			}
			fmt.Println(string(out))
			return
		}
		for _, row := range rows {
			fmt.Printf("%s (Slot %d)\n", row.LevelName, row.Slot)
			if row.Error != "" {
				fmt.Printf("ERROR: %s\n", row.Error)
				continue
			}
			row.Metrics.Print()
			if row.Ticks > 0 {
				fmt.Printf("Correct              : %v\n", row.Correct)
			}
		}
	},
}

func runOne(level *sim.Level, slot int, save string) validationRow {
	row := validationRow{LevelName: level.Name, LevelID: level.ID, Slot: slot}
	if includeSolution {
		row.Solution = save
	}
	solution, err := savefile.ParseSolution(save)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	result, err := sim.Simulate(level, solution)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Ticks = len(result.States)
	row.Correct = result.Correct()
	row.Metrics = result.Metrics
	return row
}

// readSaveFile opens path ("-" for stdin) and extracts its save strings.
func readSaveFile(path string) map[int]map[int]string {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			logrus.Fatalf("Could not open save file: %v", err)
		}
		defer f.Close()
		r = f
	}
	solutions, err := savefile.ParseSaveFile(r)
	if err != nil {
		logrus.Fatalf("Could not parse save file: %v", err)
	}
	return solutions
}

// loadSchedules loads the --levels YAML file, if one was given.
func loadSchedules() map[int]*sim.Level {
	if levelsFile == "" {
		return map[int]*sim.Level{}
	}
	schedules, err := sim.LoadLevelFile(levelsFile)
	if err != nil {
		logrus.Fatalf("Could not load level file: %v", err)
	}
	return schedules
}

func sortedSignals(result *sim.SimulationResult) []*sim.SignalResult {
	signals := make([]*sim.SignalResult, 0, len(result.Signals))
	for _, sig := range result.Signals {
		signals = append(signals, sig)
	}
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Loc.X != signals[j].Loc.X {
			return signals[i].Loc.X < signals[j].Loc.X
		}
		return signals[i].Loc.Y < signals[j].Loc.Y
	})
	return signals
}

func bitString(values []bool) string {
	out := make([]byte, len(values))
	for i, v := range values {
		if v {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&levelsFile, "levels", "", "YAML file attaching signal schedules to levels")

	validateAllCmd.Flags().BoolVar(&jsonOutput, "json", false, "Use JSON output mode")
	validateAllCmd.Flags().BoolVar(&includeSolution, "include-solution", false, "Include the solution save string")
	validateAllCmd.Flags().IntVar(&maxParallelism, "max-parallelism", 8, "Maximum number of workers to use")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateAllCmd)
}
