package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaguard/pharmaguard/internal/schema"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndQueryAssessments(t *testing.T) {
	s := openInMemory(t)

	rows := []Assessment{
		{
			PatientID: "PT-001", Drug: "CODEINE", RunAt: "2026-08-28T12:00:00Z",
			RiskLabel: "Ineffective", Severity: "high", Confidence: 0.90,
			PrimaryGene: "CYP2D6", Diplotype: "*4/*4", Phenotype: "Poor Metabolizer",
			Recommendation: "Avoid codeine.", TotalVariants: 2,
		},
		{
			PatientID: "PT-001", Drug: "WARFARIN", RunAt: "2026-08-28T12:00:00Z",
			RiskLabel: "Safe", Severity: "none", Confidence: 0.85,
			PrimaryGene: "CYP2C9", Diplotype: "*1/*1", Phenotype: "Normal Metabolizer",
			Recommendation: "Standard dosing.", TotalVariants: 2,
		},
		{
			PatientID: "PT-002", Drug: "CODEINE", RunAt: "2026-08-29T08:00:00Z",
			RiskLabel: "Safe", Severity: "none", Confidence: 0.85,
			PrimaryGene: "CYP2D6", Diplotype: "*1/*1", Phenotype: "Normal Metabolizer",
			Recommendation: "Standard dosing.",
		},
	}
	require.NoError(t, s.WriteAssessments(rows))

	byPatient, err := s.ByPatient("PT-001")
	require.NoError(t, err)
	require.Len(t, byPatient, 2)
	assert.Equal(t, "PT-001", byPatient[0].PatientID)

	byDrug, err := s.ByDrug("CODEINE")
	require.NoError(t, err)
	require.Len(t, byDrug, 2)
	// Newest first.
	assert.Equal(t, "2026-08-29T08:00:00Z", byDrug[0].RunAt)
	assert.Equal(t, "*4/*4", byDrug[1].Diplotype)

	require.NoError(t, s.Clear())
	cleared, err := s.ByPatient("PT-001")
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestWriteAssessments_Empty(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.WriteAssessments(nil))
}

func TestFromOutput(t *testing.T) {
	out := schema.Output{
		PatientID: "PT-003",
		Drug:      "AZATHIOPRINE",
		Timestamp: "2026-08-28T12:00:00Z",
		RiskAssessment: schema.RiskAssessment{
			RiskLabel: "Toxic", Severity: "critical", ConfidenceScore: 0.92,
		},
		PharmacogenomicProfile: schema.PharmacogenomicProfile{
			PrimaryGene: "TPMT", Diplotype: "*3C/*3C", Phenotype: "Poor Metabolizer",
		},
		ClinicalRecommendation: schema.ClinicalRecommendation{
			DosingRecommendation: "Avoid azathioprine.",
		},
		QualityMetrics: schema.QualityMetrics{TotalVariants: 6, ParseErrors: 1},
	}

	a := FromOutput(out)
	assert.Equal(t, "PT-003", a.PatientID)
	assert.Equal(t, "Toxic", a.RiskLabel)
	assert.Equal(t, "*3C/*3C", a.Diplotype)
	assert.Equal(t, int64(6), a.TotalVariants)
	assert.Equal(t, int64(1), a.ParseErrors)
}
