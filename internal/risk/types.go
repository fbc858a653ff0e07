// Package risk classifies phenotype-drug combinations against the CPIC-style
// rule tables and detects cross-drug interactions.
package risk

import (
	"github.com/pharmaguard/pharmaguard/internal/genotype"
	"github.com/pharmaguard/pharmaguard/internal/panel"
)

// Label is the clinical risk category for one drug.
type Label string

const (
	LabelSafe         Label = "Safe"
	LabelAdjustDosage Label = "Adjust Dosage"
	LabelToxic        Label = "Toxic"
	LabelIneffective  Label = "Ineffective"
	LabelUnknown      Label = "Unknown"
)

// IsValid reports whether l is a member of the closed label set.
func (l Label) IsValid() bool {
	switch l {
	case LabelSafe, LabelAdjustDosage, LabelToxic, LabelIneffective, LabelUnknown:
		return true
	}
	return false
}

func (l Label) String() string { return string(l) }

// Severity is the ordered severity scale shared by risk results and
// interaction findings.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityLow:      1,
	SeverityModerate: 2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordinal position of s on the severity scale.
func (s Severity) Rank() int { return severityRank[s] }

// IsValid reports whether s is a member of the closed severity set.
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

func (s Severity) String() string { return string(s) }

// MaxSeverity returns the higher of two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// allowedSeverities fixes the label-severity consistency contract: a Toxic
// or Ineffective call can never carry a trivial severity, and Safe/Unknown
// always carry none.
var allowedSeverities = map[Label][]Severity{
	LabelSafe:         {SeverityNone},
	LabelUnknown:      {SeverityNone},
	LabelAdjustDosage: {SeverityLow, SeverityModerate, SeverityHigh},
	LabelIneffective:  {SeverityModerate, SeverityHigh},
	LabelToxic:        {SeverityHigh, SeverityCritical},
}

// ConsistentWith reports whether sev is an allowed severity for the label.
func (l Label) ConsistentWith(sev Severity) bool {
	for _, s := range allowedSeverities[l] {
		if s == sev {
			return true
		}
	}
	return false
}

// Result is the risk assessment for a single requested drug. Created fresh
// per pipeline run and never mutated after construction.
type Result struct {
	Drug             string
	PrimaryGene      panel.Gene
	Diplotype        genotype.Diplotype
	Phenotype        panel.Phenotype
	Label            Label
	Severity         Severity
	Confidence       float64
	Recommendation   string
	Alternatives     []string
	Monitoring       string
	DetectedVariants []genotype.DetectedVariant
}
