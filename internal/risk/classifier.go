package risk

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pharmaguard/pharmaguard/internal/genotype"
	"github.com/pharmaguard/pharmaguard/internal/panel"
)

const (
	// DefaultConfidenceFloor is the lowest confidence a recognized
	// classification can be scaled down to.
	DefaultConfidenceFloor = 0.50
	// maxConfidence caps upward evidence scaling; the table is never
	// reported as certain.
	maxConfidence = 0.99
)

// Classifier looks up phenotype-drug combinations in the risk table.
type Classifier struct {
	floor  float64
	logger *zap.Logger
}

// NewClassifier creates a classifier with the default confidence floor.
func NewClassifier() *Classifier {
	return &Classifier{floor: DefaultConfidenceFloor, logger: zap.NewNop()}
}

// SetConfidenceFloor overrides the lower confidence bound.
func (c *Classifier) SetConfidenceFloor(floor float64) {
	if floor >= 0 && floor <= 1 {
		c.floor = floor
	}
}

// SetLogger sets the logger for diagnostic messages.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// NormalizeDrugs uppercases, trims and deduplicates a requested drug list,
// preserving first-seen order so results stay request-stable.
func NormalizeDrugs(drugs []string) []string {
	seen := make(map[string]bool, len(drugs))
	out := make([]string, 0, len(drugs))
	for _, d := range drugs {
		name := strings.ToUpper(strings.TrimSpace(d))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Classify produces one Result per requested drug. A drug missing from the
// risk table, or whose primary gene resolved to phenotype Unknown, yields an
// explicit Unknown result; it never aborts the batch and never defaults to
// Safe.
func (c *Classifier) Classify(genotypes *genotype.Result, drugs []string) []Result {
	results := make([]Result, 0, len(drugs))
	for _, drug := range NormalizeDrugs(drugs) {
		results = append(results, c.classifyOne(genotypes, drug))
	}
	return results
}

func (c *Classifier) classifyOne(genotypes *genotype.Result, drug string) Result {
	info, known := drugCatalog[drug]
	rows := riskTable[drug]
	if !known || len(rows) == 0 {
		c.logger.Debug("drug not in risk table", zap.String("drug", drug))
		return Result{
			Drug:           drug,
			PrimaryGene:    info.PrimaryGene,
			Phenotype:      panel.PhenotypeUnknown,
			Label:          LabelUnknown,
			Severity:       SeverityNone,
			Recommendation: "No pharmacogenomic guidance available for this drug.",
		}
	}

	call, _ := genotypes.Call(info.PrimaryGene)
	base := Result{
		Drug:             drug,
		PrimaryGene:      info.PrimaryGene,
		Diplotype:        call.Diplotype,
		Phenotype:        call.Phenotype,
		DetectedVariants: call.Variants,
	}

	// Never guess: an unresolved phenotype propagates as Unknown regardless
	// of table contents.
	if call.Phenotype == panel.PhenotypeUnknown {
		base.Label = LabelUnknown
		base.Severity = SeverityNone
		base.Recommendation = "Detected variants did not match known allele signatures; phenotype cannot be assessed."
		return base
	}

	entry, ok := rows[call.Phenotype]
	if !ok {
		c.logger.Warn("no risk table row for phenotype",
			zap.String("drug", drug),
			zap.String("phenotype", call.Phenotype.String()))
		base.Label = LabelUnknown
		base.Severity = SeverityNone
		base.Recommendation = "No guideline entry for this phenotype."
		return base
	}

	base.Label = entry.Label
	base.Severity = entry.Severity
	base.Confidence = c.scaleConfidence(entry.BaseConfidence, call.Supporting)
	base.Recommendation = entry.Recommendation
	base.Alternatives = entry.Alternatives
	base.Monitoring = entry.Monitoring
	return base
}

// scaleConfidence adjusts the table's base confidence by the number of
// corroborating variants: sparse evidence scales it down (never below the
// floor), additional corroboration scales it up, saturating at
// maxConfidence. The function is monotone non-decreasing in supporting.
func (c *Classifier) scaleConfidence(base float64, supporting int) float64 {
	n := supporting
	if n > 4 {
		n = 4
	}
	conf := base - 0.10 + 0.05*float64(n)
	if conf > maxConfidence {
		conf = maxConfidence
	}
	if conf < c.floor {
		conf = c.floor
	}
	return conf
}
