package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"coursetable/internal/model"
	"coursetable/internal/solver"
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	followUpPathPtr := flag.String("followup", "", "Path to a second input file sharing the teacher roster; it is solved after the first one, avoiding the teaching days the first solution already uses")
	outFilePathPtr := flag.String("out", "", "Path to the file where the report will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to an optional config file overriding the annealing parameters")
	seedPtr := flag.Int64("seed", 0, "Random seed; 0 picks a time-based seed")
	verbosePtr := flag.Bool("verbose", false, "Log search progress to the Standard Error")
	flag.Parse()

	filePath := *filePathPtr
	followUpPath := *followUpPathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	parameters, err := loadParameters(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load config file: %v", err)
	}

	logger := zap.NewNop().Sugar()
	if *verbosePtr {
		development, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("cannot initialize logger: %v", err)
		}
		defer development.Sync()
		logger = development.Sugar()
	}

	var rng *rand.Rand
	if *seedPtr != 0 {
		rng = rand.New(rand.NewSource(*seedPtr))
	}

	// Solve the primary instance
	instance, result := solveFile(filePath, nil, parameters, logger, rng)
	report := renderReport(instance, result)
	failed := result.Penalty == solver.PenaltyUnsolved || result.Violations.Hard() > 0

	// Solve the follow-up instance, avoiding the primary's teaching days
	if followUpPath != "" {
		var hint solver.TeacherDayHint
		if result.Penalty != solver.PenaltyUnsolved {
			hint = solver.TeacherDays(result.Grid, instance)
		}

		followUp, followUpResult := solveFile(followUpPath, hint, parameters, logger, rng)
		report += "\n" + renderReport(followUp, followUpResult)
		failed = failed || followUpResult.Penalty == solver.PenaltyUnsolved || followUpResult.Violations.Hard() > 0
	}

	// Verify outfile is empty, if so then write the report to the Standard Output
	if outFile == "" {
		fmt.Print(report)
	} else {
		if err := os.WriteFile(outFile, []byte(report), 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	if failed {
		os.Exit(1)
	}
}

// solveFile loads and solves one instance. A load failure yields the
// PenaltyUnsolved sentinel instead of a grid, so a failing follow-up file
// never discards the primary's solution.
func solveFile(file string, hint solver.TeacherDayHint, parameters solver.Parameters, logger *zap.SugaredLogger, rng *rand.Rand) (model.Instance, solver.Result) {
	instance, err := loadInstance(file)
	if err != nil {
		log.Printf("cannot parse input file %v: %v", file, err)
		return model.Instance{}, solver.Result{Penalty: solver.PenaltyUnsolved}
	}

	context := solver.NewSearchContext(instance, hint, rng)
	if err := solver.CheckAssignable(context); err != nil {
		log.Printf("warning: %v: %v", file, err)
	}

	return instance, solver.NewAnnealer(context, parameters, logger).Solve()
}

func loadInstance(file string) (model.Instance, error) {
	input, err := model.InputFromJson(file)
	if err != nil {
		return model.Instance{}, err
	}
	return input.Instance()
}

// loadParameters returns the default annealing parameters, overridden by the
// config file when one is given. Any format viper understands works.
func loadParameters(file string) (solver.Parameters, error) {
	parameters := solver.DefaultParameters()
	if file == "" {
		return parameters, nil
	}

	settings := viper.New()
	settings.SetConfigFile(file)
	settings.SetDefault("initialTemperature", parameters.InitialTemperature)
	settings.SetDefault("finalTemperature", parameters.FinalTemperature)
	settings.SetDefault("reheatThreshold", parameters.ReheatThreshold)
	settings.SetDefault("stagnationLimit", parameters.StagnationLimit)

	if err := settings.ReadInConfig(); err != nil {
		return parameters, err
	}

	parameters.InitialTemperature = settings.GetFloat64("initialTemperature")
	parameters.FinalTemperature = settings.GetFloat64("finalTemperature")
	parameters.ReheatThreshold = settings.GetFloat64("reheatThreshold")
	parameters.StagnationLimit = settings.GetInt("stagnationLimit")
	return parameters, nil
}
