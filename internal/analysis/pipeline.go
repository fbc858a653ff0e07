// Package analysis wires the intake, genotype and risk stages into a single
// pipeline and runs the bundled verification scenarios.
package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pharmaguard/pharmaguard/internal/explain"
	"github.com/pharmaguard/pharmaguard/internal/genotype"
	"github.com/pharmaguard/pharmaguard/internal/panel"
	"github.com/pharmaguard/pharmaguard/internal/risk"
	"github.com/pharmaguard/pharmaguard/internal/schema"
	"github.com/pharmaguard/pharmaguard/internal/vcf"
)

// Report is the complete result of one pipeline run.
type Report struct {
	PatientID    string
	Panel        *vcf.PanelResult
	Genotypes    *genotype.Result
	Risks        []risk.Result
	Interactions *risk.InteractionReport
	Outputs      []schema.Output
}

// Pipeline runs intake, genotype resolution, risk classification and
// interaction analysis as one unit.
type Pipeline struct {
	def        *panel.Definition
	resolver   *genotype.Resolver
	classifier *risk.Classifier
	engine     *risk.Engine
	explainer  explain.Explainer
	now        func() time.Time
	logger     *zap.Logger
}

// New creates a pipeline over the default panel definition.
func New() *Pipeline {
	def := panel.Default()
	return &Pipeline{
		def:        def,
		resolver:   genotype.NewResolver(def),
		classifier: risk.NewClassifier(),
		engine:     risk.NewEngine(),
		explainer:  explain.Nop{},
		now:        time.Now,
		logger:     zap.NewNop(),
	}
}

// SetLogger installs a logger on the pipeline and its stages.
func (p *Pipeline) SetLogger(logger *zap.Logger) {
	p.logger = logger
	p.resolver.SetLogger(logger)
	p.classifier.SetLogger(logger)
	p.engine.SetLogger(logger)
}

// SetExplainer replaces the no-op explainer, typically with a Groq client.
func (p *Pipeline) SetExplainer(e explain.Explainer) {
	if e != nil {
		p.explainer = e
	}
}

// SetConfidenceFloor forwards the floor to the classifier.
func (p *Pipeline) SetConfidenceFloor(floor float64) {
	p.classifier.SetConfidenceFloor(floor)
}

// Run executes the full pipeline over raw VCF content. Parse errors that are
// row-local are tolerated and reported in the panel result; only structural
// failures return an error.
func (p *Pipeline) Run(ctx context.Context, patientID, vcfContent string, drugs []string) (*Report, error) {
	parsed, err := vcf.Parse(vcfContent, p.def)
	if err != nil {
		return nil, err
	}
	p.logger.Info("parsed panel",
		zap.Int("variants", parsed.TotalVariants),
		zap.Int("genes", len(parsed.DetectedGenes)),
		zap.Int("parse_errors", len(parsed.ParseErrors)))

	genotypes := p.resolver.Resolve(parsed)
	normalized := risk.NormalizeDrugs(drugs)
	risks := p.classifier.Classify(genotypes, normalized)

	report := &Report{
		PatientID: patientID,
		Panel:     parsed,
		Genotypes: genotypes,
		Risks:     risks,
	}
	if len(normalized) >= 2 {
		report.Interactions = p.engine.Analyze(normalized)
	} else {
		report.Interactions = &risk.InteractionReport{Findings: []risk.Finding{}, OverallSeverity: risk.SeverityNone}
	}

	now := p.now()
	report.Outputs = make([]schema.Output, 0, len(risks))
	for _, r := range risks {
		exp, expErr := p.explainer.Explain(ctx, explain.Request{
			Drug:           r.Drug,
			Gene:           r.PrimaryGene.String(),
			Diplotype:      r.Diplotype.String(),
			Phenotype:      r.Phenotype.String(),
			RiskLabel:      r.Label.String(),
			Severity:       r.Severity.String(),
			Recommendation: r.Recommendation,
		})
		if expErr != nil {
			p.logger.Warn("explanation failed", zap.String("drug", r.Drug), zap.Error(expErr))
			exp = explain.Explanation{Summary: "Explanation unavailable.", Success: false}
		}
		report.Outputs = append(report.Outputs, schema.Build(patientID, r, parsed, exp, now))
	}
	return report, nil
}
