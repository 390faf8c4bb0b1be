package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ericr/saturday/config"
)

// branchHeuristicFlag adapts config.BranchHeuristic to pflag.Value so it
// can be set directly from the --heuristic flag.
type branchHeuristicFlag struct {
	target *config.BranchHeuristic
}

func newBranchHeuristicFlag(target *config.BranchHeuristic) *branchHeuristicFlag {
	return &branchHeuristicFlag{target: target}
}

func (f *branchHeuristicFlag) String() string {
	if f.target == nil {
		return string(config.VSIDS)
	}
	return string(*f.target)
}

func (f *branchHeuristicFlag) Set(s string) error {
	*f.target = config.BranchHeuristic(s)
	return nil
}

func (f *branchHeuristicFlag) Type() string {
	return "heuristic"
}

// restartTypeFlag adapts config.RestartType to pflag.Value so it can be
// set directly from the --restart flag.
type restartTypeFlag struct {
	target *config.RestartType
}

func newRestartTypeFlag(target *config.RestartType) *restartTypeFlag {
	return &restartTypeFlag{target: target}
}

func (f *restartTypeFlag) String() string {
	if f.target == nil {
		return string(config.RestartGlueGeom)
	}
	return string(*f.target)
}

func (f *restartTypeFlag) Set(s string) error {
	*f.target = config.RestartType(s)
	return nil
}

func (f *restartTypeFlag) Type() string {
	return "restart"
}

func loggerDebugLevel() logrus.Level {
	return logrus.DebugLevel
}
