package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/pharmaguard/pharmaguard/internal/schema"
)

// Assessment is one audit row, flattened from an output document.
type Assessment struct {
	PatientID      string
	Drug           string
	RunAt          string
	RiskLabel      string
	Severity       string
	Confidence     float64
	PrimaryGene    string
	Diplotype      string
	Phenotype      string
	Recommendation string
	TotalVariants  int64
	ParseErrors    int64
}

// FromOutput flattens an output document into an audit row.
func FromOutput(out schema.Output) Assessment {
	return Assessment{
		PatientID:      out.PatientID,
		Drug:           out.Drug,
		RunAt:          out.Timestamp,
		RiskLabel:      out.RiskAssessment.RiskLabel,
		Severity:       out.RiskAssessment.Severity,
		Confidence:     out.RiskAssessment.ConfidenceScore,
		PrimaryGene:    out.PharmacogenomicProfile.PrimaryGene,
		Diplotype:      out.PharmacogenomicProfile.Diplotype,
		Phenotype:      out.PharmacogenomicProfile.Phenotype,
		Recommendation: out.ClinicalRecommendation.DosingRecommendation,
		TotalVariants:  int64(out.QualityMetrics.TotalVariants),
		ParseErrors:    int64(out.QualityMetrics.ParseErrors),
	}
}

// WriteAssessments batch-inserts audit rows using the Appender API.
func (s *Store) WriteAssessments(rows []Assessment) error {
	if len(rows) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "assessments")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range rows {
		if err := appender.AppendRow(
			r.PatientID, r.Drug, r.RunAt,
			r.RiskLabel, r.Severity, r.Confidence,
			r.PrimaryGene, r.Diplotype, r.Phenotype,
			r.Recommendation, r.TotalVariants, r.ParseErrors,
		); err != nil {
			return fmt.Errorf("append assessment: %w", err)
		}
	}

	return appender.Flush()
}

// ByPatient returns all audit rows for a patient, newest first.
func (s *Store) ByPatient(patientID string) ([]Assessment, error) {
	rows, err := s.db.Query(`SELECT
		patient_id, drug, run_at, risk_label, severity, confidence,
		primary_gene, diplotype, phenotype, recommendation,
		total_variants, parse_errors
		FROM assessments
		WHERE patient_id=?
		ORDER BY run_at DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("query by patient: %w", err)
	}
	defer rows.Close()

	return scanAssessments(rows)
}

// ByDrug returns all audit rows for a drug, newest first.
func (s *Store) ByDrug(drug string) ([]Assessment, error) {
	rows, err := s.db.Query(`SELECT
		patient_id, drug, run_at, risk_label, severity, confidence,
		primary_gene, diplotype, phenotype, recommendation,
		total_variants, parse_errors
		FROM assessments
		WHERE drug=?
		ORDER BY run_at DESC`, drug)
	if err != nil {
		return nil, fmt.Errorf("query by drug: %w", err)
	}
	defer rows.Close()

	return scanAssessments(rows)
}

// Clear removes all audit rows.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM assessments")
	return err
}

func scanAssessments(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]Assessment, error) {
	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(
			&a.PatientID, &a.Drug, &a.RunAt, &a.RiskLabel, &a.Severity, &a.Confidence,
			&a.PrimaryGene, &a.Diplotype, &a.Phenotype, &a.Recommendation,
			&a.TotalVariants, &a.ParseErrors,
		); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}
	return out, nil
}
