// Package config holds every tunable of the solver: decay rates, the
// branching heuristic and restart policy to run, learnt-clause tier
// thresholds, the probing budget, and the handful of mutually exclusive
// feature flags the search driver must respect.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BranchHeuristic selects which of the two interchangeable branching
// heuristics drives decisions.
type BranchHeuristic string

const (
	VSIDS BranchHeuristic = "vsids"
	Maple BranchHeuristic = "maple"
)

// PolarityMode selects how a freshly-decided literal's sign is chosen.
type PolarityMode string

const (
	PolarityCache       PolarityMode = "cache"
	PolarityAlwaysFalse PolarityMode = "always-false"
	PolarityAlwaysTrue  PolarityMode = "always-true"
	PolarityRandom      PolarityMode = "random"
)

// RestartType selects the phase-budget policy used between restarts.
type RestartType string

const (
	RestartGeom     RestartType = "geom"
	RestartLuby     RestartType = "luby"
	RestartGlue     RestartType = "glue"
	RestartGlueGeom RestartType = "glue-geom"
)

// Config is the solver's full set of tunables. A zero Config is not ready
// to use; call New to get sane defaults, then override individual fields.
type Config struct {
	Logger  *logrus.Logger
	Models  uint
	Verbose bool
	Seed    int64

	// Branching heuristics (module G).
	BranchHeuristic BranchHeuristic
	PolarityMode    PolarityMode
	RandomVarFreq   float64

	VarDecay      float64 // teacher's activity-decay constant, kept.
	ClaDecay      float64 // teacher's clause-activity decay constant, kept.
	VarDecayStart float64
	VarDecayCap   float64

	StepSizeStart      float64
	StepSizeFloor      float64
	StepSizeDecrement  float64

	// Restart controller (module H).
	RestartType           RestartType
	RestartFirst          int
	RestartInc            float64
	GlueRestartMultiplier float64 // a glue restart fires when the short glue average exceeds the long one times this; blocking uses a fixed 1.4.
	GlueHistoryLen        int
	TrailHistoryLen       int

	// Learnt-clause database (module F).
	Tier0Glue        int
	Tier1Glue        int
	Tier2SoftCap     int
	Tier2CapGrowth   float64
	ReduceTier1Every int
	ReduceTier2Every int
	ReduceTier3Every int

	// Conflict analysis (module E).
	RecursiveMinimization bool
	BinaryMinimization    bool
	CacheMinimization     bool
	OTFS                  bool // on-the-fly subsumption.
	Predictor             bool // tier-3 predictor hook; mutually exclusive with OTFS.

	// Probing engine (module J).
	ProbeEnabled         bool
	ProbeBudgetBase      uint64
	ProbeBudgetMultCap   float64
	ProbeEvery           int // run probing every N restarts.
	HyperBinResolution   bool
	TransitiveReduction  bool
}

// New returns a Config with the defaults this solver has shipped with.
func New() *Config {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	return &Config{
		Logger: logger,

		BranchHeuristic: VSIDS,
		PolarityMode:    PolarityCache,
		RandomVarFreq:   0.0,

		VarDecay:      0.95,
		ClaDecay:      0.999,
		VarDecayStart: 0.80,
		VarDecayCap:   0.95,

		StepSizeStart:     0.40,
		StepSizeFloor:     0.06,
		StepSizeDecrement: 0.000001,

		RestartType:           RestartGlueGeom,
		RestartFirst:          100,
		RestartInc:            2.0,
		GlueRestartMultiplier: 1.4,
		GlueHistoryLen:        50,
		TrailHistoryLen:       5000,

		Tier0Glue:        3,
		Tier1Glue:        6,
		Tier2SoftCap:     1000,
		Tier2CapGrowth:   1.1,
		ReduceTier1Every: 10000,
		ReduceTier2Every: 2000,
		ReduceTier3Every: 2000,

		RecursiveMinimization: true,
		BinaryMinimization:    true,
		CacheMinimization:     false,
		OTFS:                  true,
		Predictor:             false,

		ProbeEnabled:        true,
		ProbeBudgetBase:     1_000_000,
		ProbeBudgetMultCap:  4.0,
		ProbeEvery:          1,
		HyperBinResolution:  true,
		TransitiveReduction: true,
	}
}

// Validate checks the feature-flag combinations spec.md forbids. It is
// called once by Solver.Solve before search starts.
func (c *Config) Validate() error {
	if c.OTFS && c.Predictor {
		return errors.New("config: OTFS and Predictor are mutually exclusive, per the on-the-fly-subsumption/statistics exclusion; enable only one")
	}
	if c.BranchHeuristic != VSIDS && c.BranchHeuristic != Maple {
		return errors.Errorf("config: unknown branch heuristic %q", c.BranchHeuristic)
	}
	switch c.RestartType {
	case RestartGeom, RestartLuby, RestartGlue, RestartGlueGeom:
	default:
		return errors.Errorf("config: unknown restart type %q", c.RestartType)
	}
	return nil
}
