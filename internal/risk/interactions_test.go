package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_FewerThanTwoDrugs(t *testing.T) {
	e := NewEngine()

	for _, drugs := range [][]string{nil, {}, {"CODEINE"}, {"CODEINE", "codeine"}} {
		report := e.Analyze(drugs)
		assert.False(t, report.InteractionsFound)
		assert.Zero(t, report.TotalInteractions)
		assert.Equal(t, SeverityNone, report.OverallSeverity)
	}
}

func TestAnalyze_CuratedPair(t *testing.T) {
	e := NewEngine()

	report := e.Analyze([]string{"WARFARIN", "FLUOROURACIL"})
	require.Equal(t, 1, report.TotalInteractions)
	f := report.Findings[0]
	assert.Equal(t, InteractionAdditiveToxicity, f.Type)
	assert.Equal(t, SeverityCritical, f.Severity)
	assert.Equal(t, []string{"FLUOROURACIL", "WARFARIN"}, f.Drugs)
	assert.Equal(t, SeverityCritical, report.OverallSeverity)
}

func TestAnalyze_ActivationDependency(t *testing.T) {
	e := NewEngine()

	// Fluoxetine inhibits CYP2D6, which codeine needs for activation.
	report := e.Analyze([]string{"CODEINE", "FLUOXETINE"})
	require.Equal(t, 1, report.TotalInteractions)
	f := report.Findings[0]
	assert.Equal(t, InteractionActivationDependency, f.Type)
	assert.Equal(t, SeverityHigh, f.Severity)
	assert.Equal(t, []string{"CODEINE", "FLUOXETINE"}, f.Drugs)

	// Same for clopidogrel and omeprazole via CYP2C19.
	report = e.Analyze([]string{"OMEPRAZOLE", "CLOPIDOGREL"})
	require.Equal(t, 1, report.TotalInteractions)
	assert.Equal(t, InteractionActivationDependency, report.Findings[0].Type)
}

func TestAnalyze_MetabolicInhibition(t *testing.T) {
	e := NewEngine()

	// Amiodarone inhibits CYP2C9 on warfarin's clearance pathway.
	report := e.Analyze([]string{"WARFARIN", "AMIODARONE"})
	require.Equal(t, 1, report.TotalInteractions)
	f := report.Findings[0]
	assert.Equal(t, InteractionMetabolicInhibition, f.Type)
	assert.Equal(t, SeverityModerate, f.Severity)
}

func TestAnalyze_SharedPathwaySeverity(t *testing.T) {
	e := NewEngine()

	// Codeine and simvastatin overlap only on CYP3A4: low severity.
	report := e.Analyze([]string{"CODEINE", "SIMVASTATIN"})
	require.Equal(t, 1, report.TotalInteractions)
	f := report.Findings[0]
	assert.Equal(t, InteractionSharedPathway, f.Type)
	assert.Equal(t, SeverityLow, f.Severity)
}

func TestAnalyze_OrderIndependent(t *testing.T) {
	e := NewEngine()

	forward := e.Analyze([]string{"CODEINE", "FLUOXETINE", "WARFARIN", "FLUOROURACIL"})
	reverse := e.Analyze([]string{"FLUOROURACIL", "WARFARIN", "FLUOXETINE", "CODEINE"})

	assert.Equal(t, forward, reverse)
	require.NotEmpty(t, forward.Findings)
	// Findings sort by severity, highest first.
	for i := 1; i < len(forward.Findings); i++ {
		assert.GreaterOrEqual(t,
			forward.Findings[i-1].Severity.Rank(),
			forward.Findings[i].Severity.Rank())
	}
	for _, f := range forward.Findings {
		assert.True(t, f.Drugs[0] < f.Drugs[1], "pair not canonicalized: %v", f.Drugs)
	}
}

func TestAnalyze_AtMostOneFindingPerPair(t *testing.T) {
	e := NewEngine()

	// Fluorouracil inhibits CYP2C9 and shares warfarin's pathway, but the
	// curated rule takes precedence and only one finding is emitted.
	report := e.Analyze([]string{"FLUOROURACIL", "WARFARIN"})
	assert.Equal(t, 1, report.TotalInteractions)
}

func TestAnalyze_UnrecognizedDrugsOmitted(t *testing.T) {
	e := NewEngine()

	report := e.Analyze([]string{"IBUPROFEN", "ACETAMINOPHEN"})
	assert.False(t, report.InteractionsFound)
	assert.Empty(t, report.Findings)
}

func TestAnalyze_DuplicatesCollapse(t *testing.T) {
	e := NewEngine()

	once := e.Analyze([]string{"CODEINE", "FLUOXETINE"})
	twice := e.Analyze([]string{"CODEINE", "codeine ", "FLUOXETINE", "FLUOXETINE"})
	assert.Equal(t, once, twice)
}
