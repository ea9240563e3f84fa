package main

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"
)

func TestFatalExitAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), Analyzer, "collector", "cli")
}
