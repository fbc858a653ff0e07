// Package output provides assessment output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pharmaguard/pharmaguard/internal/schema"
)

// Writer is the common interface for assessment output formats.
type Writer interface {
	WriteHeader() error
	Write(out schema.Output) error
	Flush() error
}

// TabWriter writes one summary row per drug assessment in tab-delimited
// format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Patient",
			"Drug",
			"Risk_Label",
			"Severity",
			"Confidence",
			"Gene",
			"Diplotype",
			"Phenotype",
			"Variants",
			"Recommendation",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single assessment row.
func (tw *TabWriter) Write(out schema.Output) error {
	variants := "-"
	if n := len(out.PharmacogenomicProfile.DetectedVariants); n > 0 {
		names := make([]string, 0, n)
		for _, v := range out.PharmacogenomicProfile.DetectedVariants {
			names = append(names, v.RSID)
		}
		variants = strings.Join(names, ",")
	}

	recommendation := out.ClinicalRecommendation.DosingRecommendation
	if recommendation == "" {
		recommendation = "-"
	}

	values := []string{
		out.PatientID,
		out.Drug,
		out.RiskAssessment.RiskLabel,
		out.RiskAssessment.Severity,
		fmt.Sprintf("%.2f", out.RiskAssessment.ConfidenceScore),
		out.PharmacogenomicProfile.PrimaryGene,
		out.PharmacogenomicProfile.Diplotype,
		out.PharmacogenomicProfile.Phenotype,
		variants,
		recommendation,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
