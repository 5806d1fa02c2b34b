package solver

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Parameters tunes the annealing schedule.
type Parameters struct {
	InitialTemperature float64
	FinalTemperature   float64
	// Temperature below which the single reheat fires.
	ReheatThreshold float64
	// Rounds without a new best before the run gives up.
	StagnationLimit int
}

func DefaultParameters() Parameters {
	return Parameters{
		InitialTemperature: 1_000_000,
		FinalTemperature:   0.00001,
		ReheatThreshold:    0.0001,
		StagnationLimit:    8000,
	}
}

// PenaltyUnsolved marks a Result produced without running any search, used
// by orchestrating callers when an instance cannot be loaded. Every real
// search yields a penalty >= 0.
const PenaltyUnsolved = -1

// Sample is one history entry, recorded whenever a new best is found.
type Sample struct {
	Penalty int
	Elapsed time.Duration
}

// Result is the outcome of one annealing run.
type Result struct {
	Grid       Grid
	Penalty    int
	Violations *Violations
	// History holds the most recent best-improvement samples, oldest first.
	History []Sample
}

// Annealer runs the full search: construction followed by simulated
// annealing over the neighborhood operators.
type Annealer interface {
	Solve() Result
}

// NewAnnealer wires a run over the given context. A nil logger silences
// progress reporting.
func NewAnnealer(context *SearchContext, parameters Parameters, logger *zap.SugaredLogger) Annealer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &simulatedAnnealer{
		context:     context,
		parameters:  parameters,
		logger:      logger,
		constructor: NewConstructor(context),
		evaluator:   NewEvaluator(context),
		generator:   NewGenerator(context),
	}
}

// Number of best-improvement samples kept in the history ring.
const historySize = 10

// Acceptance spreads the raw penalty difference before the Metropolis test,
// sharpening the distinction between uphill moves at a given temperature.
const deltaScale = 4

type simulatedAnnealer struct {
	context     *SearchContext
	parameters  Parameters
	logger      *zap.SugaredLogger
	constructor Constructor
	evaluator   Evaluator
	generator   Generator
}

func (annealer *simulatedAnnealer) Solve() Result {
	parameters := annealer.parameters
	start := time.Now()

	current := annealer.constructor.Construct()
	annealer.evaluator.Evaluate(&current)

	best := current.Clone()
	candidate := current.Clone()
	history := make([]Sample, 0, historySize)

	annealer.logger.Infow("initial solution constructed",
		"penalty", current.Penalty,
	)

	temperature := parameters.InitialTemperature
	reheated := false
	stagnation := 0

	for temperature > parameters.FinalTemperature && best.Penalty > 0 && stagnation < parameters.StagnationLimit {
		iterations, cooling := coolingStage(temperature)

		for iteration := 0; iteration < iterations && best.Penalty > 0; iteration++ {
			candidate.CopyFrom(current)

			// At low temperatures the hints left by the previous candidate's
			// evaluation no longer describe the current solution well; refresh
			// them before perturbing so directed repairs stay on target.
			_, violations := annealer.lowTemperatureState(&candidate, temperature)
			annealer.generator.Perturb(&candidate, violations, temperature)
			penalty, _ := annealer.evaluator.Evaluate(&candidate)

			if annealer.accept(current.Penalty, penalty, temperature) {
				current.CopyFrom(candidate)

				if current.Penalty < best.Penalty {
					best.CopyFrom(current)
					stagnation = 0

					if len(history) == historySize {
						copy(history, history[1:])
						history = history[:historySize-1]
					}
					history = append(history, Sample{Penalty: best.Penalty, Elapsed: time.Since(start)})

					annealer.logger.Infow("new best solution",
						"penalty", best.Penalty,
						"temperature", temperature,
						"elapsed", time.Since(start),
					)
				}
			}
		}

		stagnation++
		if !reheated && temperature < parameters.ReheatThreshold {
			temperature = 0.1 * parameters.InitialTemperature
			reheated = true
			annealer.logger.Infow("reheating", "temperature", temperature)
		} else {
			temperature *= cooling
		}
	}

	// The run's violation state describes the last evaluated candidate;
	// re-evaluate so the returned state matches the best grid.
	penalty, violations := annealer.evaluator.Evaluate(&best)

	annealer.logger.Infow("annealing finished",
		"penalty", penalty,
		"hardViolations", violations.Hard(),
		"elapsed", time.Since(start),
	)

	return Result{
		Grid:       best,
		Penalty:    penalty,
		Violations: violations,
		History:    history,
	}
}

// lowTemperatureState returns fresh violation state for the grid when the
// temperature is low enough for stale hints to matter, and the last
// evaluation's state otherwise.
func (annealer *simulatedAnnealer) lowTemperatureState(grid *Grid, temperature float64) (int, *Violations) {
	if temperature < 100 {
		return annealer.evaluator.Evaluate(grid)
	}
	return grid.Penalty, annealer.context.violations
}

func (annealer *simulatedAnnealer) accept(currentPenalty, candidatePenalty int, temperature float64) bool {
	delta := deltaScale * (candidatePenalty - currentPenalty)
	return metropolis(delta, temperature, annealer.context.Rand)
}

// metropolis accepts every improvement and an uphill move with probability
// exp(-delta/T). A zero delta is always accepted.
func metropolis(delta int, temperature float64, rng *rand.Rand) bool {
	if delta < 0 {
		return true
	}
	return rng.Float64() < math.Exp(-float64(delta)/temperature)
}

// coolingStage maps a temperature to its stage: how many moves to try before
// cooling, and the cooling factor. Stages lengthen and cool more gently as
// the temperature drops, spending most of the run in fine-grained search.
func coolingStage(temperature float64) (iterations int, cooling float64) {
	switch {
	case temperature > 1000:
		return 600, 0.98
	case temperature > 100:
		return 800, 0.97
	case temperature > 10:
		return 1000, 0.98
	case temperature > 1:
		return 1200, 0.99
	case temperature > 0.1:
		return 1500, 0.993
	default:
		return 1200, 0.995
	}
}
