// Package schema assembles the per-drug clinical output document consumed by
// the report renderer, the explanation service and external exporters. It
// contains no domain logic; it reshapes pipeline results into the stable
// external JSON structure.
package schema

import (
	"time"

	"github.com/pharmaguard/pharmaguard/internal/explain"
	"github.com/pharmaguard/pharmaguard/internal/risk"
	"github.com/pharmaguard/pharmaguard/internal/vcf"
)

// Output is the complete document for one drug assessment.
type Output struct {
	PatientID               string                  `json:"patient_id"`
	Drug                    string                  `json:"drug"`
	Timestamp               string                  `json:"timestamp"`
	RiskAssessment          RiskAssessment          `json:"risk_assessment"`
	PharmacogenomicProfile  PharmacogenomicProfile  `json:"pharmacogenomic_profile"`
	ClinicalRecommendation  ClinicalRecommendation  `json:"clinical_recommendation"`
	LLMGeneratedExplanation explain.Explanation     `json:"llm_generated_explanation"`
	QualityMetrics          QualityMetrics          `json:"quality_metrics"`
}

// RiskAssessment summarizes the classification.
type RiskAssessment struct {
	RiskLabel       string  `json:"risk_label"`
	Severity        string  `json:"severity"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// PharmacogenomicProfile carries the genomic evidence behind the call.
type PharmacogenomicProfile struct {
	PrimaryGene      string          `json:"primary_gene"`
	Diplotype        string          `json:"diplotype"`
	Phenotype        string          `json:"phenotype"`
	DetectedVariants []VariantRecord `json:"detected_variants"`
}

// VariantRecord is one detected variant in the external shape.
type VariantRecord struct {
	RSID             string `json:"rsid"`
	Gene             string `json:"gene"`
	StarAllele       string `json:"star_allele"`
	Ref              string `json:"ref"`
	Alt              string `json:"alt"`
	FunctionalStatus string `json:"functional_status"`
}

// ClinicalRecommendation carries the guideline dosing guidance.
type ClinicalRecommendation struct {
	DosingRecommendation string   `json:"dosing_recommendation"`
	AlternativeDrugs     []string `json:"alternative_drugs"`
	MonitoringRequired   string   `json:"monitoring_required"`
}

// QualityMetrics summarizes intake quality for the run.
type QualityMetrics struct {
	TotalVariants int `json:"total_variants"`
	ParseErrors   int `json:"parse_errors"`
	GenesAnalyzed int `json:"genes_analyzed"`
}

// Build assembles the output document for one risk result.
func Build(patientID string, result risk.Result, parsed *vcf.PanelResult, exp explain.Explanation, now time.Time) Output {
	variants := make([]VariantRecord, 0, len(result.DetectedVariants))
	for _, v := range result.DetectedVariants {
		rec := VariantRecord{
			RSID:             orNA(v.RSID),
			Gene:             v.Gene.String(),
			StarAllele:       orNA(v.StarAllele),
			Ref:              v.Ref,
			Alt:              v.Alt,
			FunctionalStatus: string(v.FunctionalStatus),
		}
		variants = append(variants, rec)
	}

	diplotype := result.Diplotype.String()
	if result.Diplotype.Allele1 == "" {
		diplotype = "N/A"
	}

	return Output{
		PatientID: patientID,
		Drug:      result.Drug,
		Timestamp: now.UTC().Format(time.RFC3339),
		RiskAssessment: RiskAssessment{
			RiskLabel:       result.Label.String(),
			Severity:        result.Severity.String(),
			ConfidenceScore: result.Confidence,
		},
		PharmacogenomicProfile: PharmacogenomicProfile{
			PrimaryGene:      orNA(result.PrimaryGene.String()),
			Diplotype:        diplotype,
			Phenotype:        result.Phenotype.String(),
			DetectedVariants: variants,
		},
		ClinicalRecommendation: ClinicalRecommendation{
			DosingRecommendation: result.Recommendation,
			AlternativeDrugs:     result.Alternatives,
			MonitoringRequired:   result.Monitoring,
		},
		LLMGeneratedExplanation: exp,
		QualityMetrics: QualityMetrics{
			TotalVariants: parsed.TotalVariants,
			ParseErrors:   len(parsed.ParseErrors),
			GenesAnalyzed: len(parsed.DetectedGenes),
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
