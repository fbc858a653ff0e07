package risk

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// InteractionType classifies the mechanism of a drug-drug interaction.
type InteractionType string

const (
	InteractionSharedPathway        InteractionType = "shared_pathway_competition"
	InteractionAdditiveToxicity     InteractionType = "additive_toxicity"
	InteractionActivationDependency InteractionType = "activation_dependency"
	InteractionMetabolicInhibition  InteractionType = "metabolic_inhibition"
)

// Finding describes one detected interaction between requested drugs. The
// finding's severity reflects the combined mechanism and is independent of
// the involved drugs' individual risk results.
type Finding struct {
	Type           InteractionType
	Drugs          []string // sorted alphabetically
	Severity       Severity
	Mechanism      string
	Recommendation string
}

// InteractionReport aggregates all findings for one run.
type InteractionReport struct {
	InteractionsFound bool
	TotalInteractions int
	OverallSeverity   Severity
	Findings          []Finding
}

// pairRule is a curated interaction for a specific drug pair. Keys are the
// two drug names in sorted order.
type pairRule struct {
	Type           InteractionType
	Severity       Severity
	Mechanism      string
	Recommendation string
}

var pairRules = map[[2]string]pairRule{
	{"FLUOROURACIL", "WARFARIN"}: {
		Type:           InteractionAdditiveToxicity,
		Severity:       SeverityCritical,
		Mechanism:      "Fluorouracil inhibits CYP2C9-mediated warfarin clearance; INR can rise sharply during and for weeks after chemotherapy cycles.",
		Recommendation: "Monitor INR at least twice weekly during fluorouracil therapy and for four weeks after each cycle.",
	},
	{"AZATHIOPRINE", "FLUOROURACIL"}: {
		Type:           InteractionAdditiveToxicity,
		Severity:       SeverityHigh,
		Mechanism:      "Both agents suppress bone marrow; combined use compounds neutropenia and thrombocytopenia risk.",
		Recommendation: "Obtain CBC before each cycle and reduce doses per hematologic toxicity grading.",
	},
	{"SIMVASTATIN", "WARFARIN"}: {
		Type:           InteractionAdditiveToxicity,
		Severity:       SeverityModerate,
		Mechanism:      "Simvastatin can potentiate warfarin anticoagulation, modestly raising bleeding risk.",
		Recommendation: "Check INR within one week of starting or adjusting simvastatin.",
	},
}

// Engine performs pairwise interaction analysis across a requested drug set.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an interaction engine.
func NewEngine() *Engine {
	return &Engine{logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostic messages.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Analyze evaluates every unordered pair of the requested drugs and returns
// the aggregated report. The result is independent of request order: pairs
// are canonicalized by sorted drug name, and findings only ever reference
// drugs present in the request. Pairs with no applicable rule are simply
// omitted.
func (e *Engine) Analyze(drugs []string) *InteractionReport {
	report := &InteractionReport{OverallSeverity: SeverityNone}

	unique := NormalizeDrugs(drugs)
	sort.Strings(unique)
	if len(unique) < 2 {
		return report
	}

	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			if f, ok := e.evaluatePair(unique[i], unique[j]); ok {
				report.Findings = append(report.Findings, f)
			}
		}
	}

	sort.Slice(report.Findings, func(i, j int) bool {
		fi, fj := report.Findings[i], report.Findings[j]
		if fi.Severity.Rank() != fj.Severity.Rank() {
			return fi.Severity.Rank() > fj.Severity.Rank()
		}
		return strings.Join(fi.Drugs, "+") < strings.Join(fj.Drugs, "+")
	})

	report.TotalInteractions = len(report.Findings)
	report.InteractionsFound = report.TotalInteractions > 0
	for _, f := range report.Findings {
		report.OverallSeverity = MaxSeverity(report.OverallSeverity, f.Severity)
	}
	return report
}

// evaluatePair applies interaction rules to one sorted pair, most specific
// first: curated pair rules, then prodrug activation dependency, then
// metabolic inhibition, then shared-pathway competition. At most one finding
// is emitted per pair.
func (e *Engine) evaluatePair(a, b string) (Finding, bool) {
	if rule, ok := pairRules[[2]string{a, b}]; ok {
		return Finding{
			Type:           rule.Type,
			Drugs:          []string{a, b},
			Severity:       rule.Severity,
			Mechanism:      rule.Mechanism,
			Recommendation: rule.Recommendation,
		}, true
	}

	infoA, okA := drugCatalog[a]
	infoB, okB := drugCatalog[b]
	if !okA || !okB {
		// Unrecognized pair: omitted, never fatal.
		return Finding{}, false
	}

	if f, ok := activationDependency(a, infoA, b, infoB); ok {
		return f, true
	}
	if f, ok := activationDependency(b, infoB, a, infoA); ok {
		return f, true
	}
	if f, ok := metabolicInhibition(a, infoA, b, infoB); ok {
		return f, true
	}
	if f, ok := metabolicInhibition(b, infoB, a, infoA); ok {
		return f, true
	}
	return sharedPathway(a, infoA, b, infoB)
}

// activationDependency fires when prodrug's activating enzyme is inhibited
// by the other drug, blunting therapeutic effect.
func activationDependency(prodrug string, prodrugInfo drugInfo, inhibitor string, inhibitorInfo drugInfo) (Finding, bool) {
	if prodrugInfo.ActivatedBy == "" || !contains(inhibitorInfo.Inhibits, prodrugInfo.ActivatedBy) {
		return Finding{}, false
	}
	drugs := sortedPair(prodrug, inhibitor)
	return Finding{
		Type:     InteractionActivationDependency,
		Drugs:    drugs,
		Severity: SeverityHigh,
		Mechanism: fmt.Sprintf("%s requires %s for activation, and %s inhibits %s; the prodrug may fail to reach therapeutic effect.",
			title(prodrug), prodrugInfo.ActivatedBy, title(inhibitor), prodrugInfo.ActivatedBy),
		Recommendation: fmt.Sprintf("Avoid co-administration or substitute %s with an agent that does not inhibit %s.",
			title(inhibitor), prodrugInfo.ActivatedBy),
	}, true
}

// metabolicInhibition fires when one drug inhibits an enzyme on the other's
// clearance pathway (activation dependencies are handled separately).
func metabolicInhibition(victim string, victimInfo drugInfo, inhibitor string, inhibitorInfo drugInfo) (Finding, bool) {
	for _, enzyme := range inhibitorInfo.Inhibits {
		if enzyme == victimInfo.ActivatedBy {
			continue
		}
		if contains(victimInfo.Pathways, enzyme) {
			drugs := sortedPair(victim, inhibitor)
			return Finding{
				Type:     InteractionMetabolicInhibition,
				Drugs:    drugs,
				Severity: SeverityModerate,
				Mechanism: fmt.Sprintf("%s inhibits %s, reducing clearance of %s and raising its exposure.",
					title(inhibitor), enzyme, title(victim)),
				Recommendation: fmt.Sprintf("Monitor for %s toxicity and consider dose reduction while co-administered.", title(victim)),
			}, true
		}
	}
	return Finding{}, false
}

// sharedPathway fires when two drugs compete for the same metabolic pathway.
// Overlap limited to the broad CYP3A4 pathway is reported at low severity.
func sharedPathway(a string, infoA drugInfo, b string, infoB drugInfo) (Finding, bool) {
	var shared []string
	for _, p := range infoA.Pathways {
		if contains(infoB.Pathways, p) {
			shared = append(shared, p)
		}
	}
	if len(shared) == 0 {
		return Finding{}, false
	}

	severity := SeverityLow
	for _, p := range shared {
		if p != "CYP3A4" {
			severity = SeverityModerate
			break
		}
	}
	return Finding{
		Type:     InteractionSharedPathway,
		Drugs:    sortedPair(a, b),
		Severity: severity,
		Mechanism: fmt.Sprintf("%s and %s compete for metabolism via %s; either drug's exposure may shift when co-administered.",
			title(a), title(b), strings.Join(shared, ", ")),
		Recommendation: "Review doses of both agents and monitor for reduced efficacy or accumulation.",
	}, true
}

func sortedPair(a, b string) []string {
	if a > b {
		a, b = b, a
	}
	return []string{a, b}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// title renders a drug name for prose ("CODEINE" -> "Codeine").
func title(drug string) string {
	if drug == "" {
		return drug
	}
	return strings.ToUpper(drug[:1]) + strings.ToLower(drug[1:])
}
