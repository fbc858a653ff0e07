package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaguard/pharmaguard/internal/explain"
	"github.com/pharmaguard/pharmaguard/internal/genotype"
	"github.com/pharmaguard/pharmaguard/internal/panel"
	"github.com/pharmaguard/pharmaguard/internal/risk"
	"github.com/pharmaguard/pharmaguard/internal/vcf"
)

func TestBuild(t *testing.T) {
	parsed := &vcf.PanelResult{
		TotalVariants: 3,
		DetectedGenes: []panel.Gene{panel.CYP2D6, panel.TPMT},
		ParseErrors:   []string{"line 7: bad row"},
	}
	result := risk.Result{
		Drug:        "CODEINE",
		PrimaryGene: panel.CYP2D6,
		Diplotype:   genotype.Diplotype{Allele1: "*1", Allele2: "*4"},
		Phenotype:   panel.PhenotypeIntermediate,
		Label:       risk.LabelAdjustDosage,
		Severity:    risk.SeverityModerate,
		Confidence:  0.85,
		Recommendation: "Monitor analgesic response.",
		DetectedVariants: []genotype.DetectedVariant{
			{RSID: "rs3892097", Gene: panel.CYP2D6, StarAllele: "*4", Ref: "G", Alt: "A", FunctionalStatus: panel.FunctionNone},
		},
	}
	exp := explain.Explanation{Summary: "Reduced activation.", Success: true}
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	out := Build("PT-001", result, parsed, exp, now)

	assert.Equal(t, "PT-001", out.PatientID)
	assert.Equal(t, "CODEINE", out.Drug)
	assert.Equal(t, "2026-08-28T12:00:00Z", out.Timestamp)
	assert.Equal(t, "Adjust Dosage", out.RiskAssessment.RiskLabel)
	assert.Equal(t, "moderate", out.RiskAssessment.Severity)
	assert.Equal(t, "*1/*4", out.PharmacogenomicProfile.Diplotype)
	require.Len(t, out.PharmacogenomicProfile.DetectedVariants, 1)
	assert.Equal(t, "*4", out.PharmacogenomicProfile.DetectedVariants[0].StarAllele)
	assert.Equal(t, 3, out.QualityMetrics.TotalVariants)
	assert.Equal(t, 1, out.QualityMetrics.ParseErrors)
	assert.Equal(t, 2, out.QualityMetrics.GenesAnalyzed)
}

func TestBuild_PlaceholdersForMissingFields(t *testing.T) {
	parsed := &vcf.PanelResult{}
	// Unknown drug: no diplotype, no primary gene.
	result := risk.Result{
		Drug:      "ASPIRIN",
		Phenotype: panel.PhenotypeUnknown,
		Label:     risk.LabelUnknown,
		Severity:  risk.SeverityNone,
		DetectedVariants: []genotype.DetectedVariant{
			{Gene: panel.CYP2D6, Ref: "G", Alt: "C", FunctionalStatus: panel.FunctionUnknown},
		},
	}

	out := Build("PT-002", result, parsed, explain.Explanation{}, time.Now())

	assert.Equal(t, "N/A", out.PharmacogenomicProfile.Diplotype)
	assert.Equal(t, "N/A", out.PharmacogenomicProfile.PrimaryGene)
	// Unmatched variant renders rsid and star allele as N/A.
	require.Len(t, out.PharmacogenomicProfile.DetectedVariants, 1)
	assert.Equal(t, "N/A", out.PharmacogenomicProfile.DetectedVariants[0].RSID)
	assert.Equal(t, "N/A", out.PharmacogenomicProfile.DetectedVariants[0].StarAllele)
}

func TestOutput_JSONShape(t *testing.T) {
	out := Build("PT-003", risk.Result{Drug: "CODEINE", Label: risk.LabelSafe, Severity: risk.SeverityNone},
		&vcf.PanelResult{}, explain.Explanation{}, time.Unix(0, 0))

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"patient_id", "drug", "timestamp",
		"risk_assessment", "pharmacogenomic_profile",
		"clinical_recommendation", "llm_generated_explanation", "quality_metrics",
	} {
		assert.Contains(t, decoded, key)
	}

	ra, ok := decoded["risk_assessment"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, ra, "risk_label")
	assert.Contains(t, ra, "confidence_score")
}
