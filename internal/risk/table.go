package risk

import "github.com/pharmaguard/pharmaguard/internal/panel"

// tableEntry is one row of the drug-risk table: the assessment for a
// (drug, phenotype) combination, with the base confidence before evidence
// scaling.
type tableEntry struct {
	Label          Label
	Severity       Severity
	BaseConfidence float64
	Recommendation string
	Alternatives   []string
	Monitoring     string
}

// drugInfo carries the pharmacokinetic metadata for a drug: the panel gene
// driving its assessment, the enzymes and transporters on its pathway, the
// activating enzyme for prodrugs, and the enzymes it inhibits. Pathway genes
// include non-panel enzymes (e.g. CYP3A4) used only by the interaction
// engine.
type drugInfo struct {
	PrimaryGene panel.Gene
	Pathways    []string
	ActivatedBy string
	Inhibits    []string
}

// drugCatalog covers the six risk-table drugs plus inhibitor comedications
// that only the interaction engine knows about.
var drugCatalog = map[string]drugInfo{
	"CODEINE": {
		PrimaryGene: panel.CYP2D6,
		Pathways:    []string{"CYP2D6", "CYP3A4"},
		ActivatedBy: "CYP2D6",
	},
	"CLOPIDOGREL": {
		PrimaryGene: panel.CYP2C19,
		Pathways:    []string{"CYP2C19", "CYP3A4"},
		ActivatedBy: "CYP2C19",
	},
	"WARFARIN": {
		PrimaryGene: panel.CYP2C9,
		Pathways:    []string{"CYP2C9"},
	},
	"SIMVASTATIN": {
		PrimaryGene: panel.SLCO1B1,
		Pathways:    []string{"SLCO1B1", "CYP3A4"},
	},
	"AZATHIOPRINE": {
		PrimaryGene: panel.TPMT,
		Pathways:    []string{"TPMT"},
	},
	"FLUOROURACIL": {
		PrimaryGene: panel.DPYD,
		Pathways:    []string{"DPYD"},
		Inhibits:    []string{"CYP2C9"},
	},

	// Interaction-only comedications: no risk-table rows, so they classify
	// as Unknown, but they still participate in interaction findings.
	"OMEPRAZOLE": {
		Pathways: []string{"CYP2C19", "CYP3A4"},
		Inhibits: []string{"CYP2C19"},
	},
	"FLUOXETINE": {
		Pathways: []string{"CYP2D6"},
		Inhibits: []string{"CYP2D6"},
	},
	"PAROXETINE": {
		Pathways: []string{"CYP2D6"},
		Inhibits: []string{"CYP2D6"},
	},
	"AMIODARONE": {
		Pathways: []string{"CYP3A4"},
		Inhibits: []string{"CYP2C9", "CYP2D6"},
	},
}

// riskTable holds the CPIC guideline assessments per drug and phenotype.
// Phenotypes a gene cannot reach are simply absent.
var riskTable = map[string]map[panel.Phenotype]tableEntry{
	"CODEINE": {
		panel.PhenotypeUltrarapid: {
			Label: LabelToxic, Severity: SeverityCritical, BaseConfidence: 0.97,
			Recommendation: "Avoid codeine. Ultrarapid CYP2D6 metabolism causes excessive morphine formation with risk of life-threatening respiratory depression.",
			Alternatives:   []string{"morphine", "hydromorphone"},
			Monitoring:     "If opioids are unavoidable, monitor for sedation and respiratory depression.",
		},
		panel.PhenotypeNormal: {
			Label: LabelSafe, Severity: SeverityNone, BaseConfidence: 0.95,
			Recommendation: "Use codeine at standard label-recommended dosing.",
		},
		panel.PhenotypeIntermediate: {
			Label: LabelAdjustDosage, Severity: SeverityModerate, BaseConfidence: 0.90,
			Recommendation: "Reduced morphine formation expected. Use standard dosing but monitor analgesic response; consider a non-tramadol alternative if pain control is inadequate.",
			Alternatives:   []string{"morphine"},
			Monitoring:     "Assess pain control within 48 hours of initiation.",
		},
		panel.PhenotypePoor: {
			Label: LabelIneffective, Severity: SeverityHigh, BaseConfidence: 0.95,
			Recommendation: "Avoid codeine. Poor CYP2D6 metabolizers form insufficient morphine for analgesia.",
			Alternatives:   []string{"morphine", "hydromorphone"},
		},
	},
	"CLOPIDOGREL": {
		panel.PhenotypeUltrarapid: {
			Label: LabelAdjustDosage, Severity: SeverityModerate, BaseConfidence: 0.85,
			Recommendation: "Increased active metabolite exposure. Standard dosing is effective; weigh bleeding risk in context.",
			Monitoring:     "Monitor for bleeding events.",
		},
		panel.PhenotypeRapid: {
			Label: LabelAdjustDosage, Severity: SeverityLow, BaseConfidence: 0.85,
			Recommendation: "Standard dosing; slightly increased active metabolite exposure.",
		},
		panel.PhenotypeNormal: {
			Label: LabelSafe, Severity: SeverityNone, BaseConfidence: 0.95,
			Recommendation: "Use clopidogrel at standard dosing.",
		},
		panel.PhenotypeIntermediate: {
			Label: LabelIneffective, Severity: SeverityModerate, BaseConfidence: 0.90,
			Recommendation: "Reduced platelet inhibition expected. Consider an alternative antiplatelet agent per CPIC guidance.",
			Alternatives:   []string{"prasugrel", "ticagrelor"},
		},
		panel.PhenotypePoor: {
			Label: LabelIneffective, Severity: SeverityHigh, BaseConfidence: 0.95,
			Recommendation: "Avoid clopidogrel. Poor CYP2C19 metabolizers cannot form the active metabolite; high risk of treatment failure after stenting.",
			Alternatives:   []string{"prasugrel", "ticagrelor"},
		},
	},
	"WARFARIN": {
		panel.PhenotypeNormal: {
			Label: LabelSafe, Severity: SeverityNone, BaseConfidence: 0.93,
			Recommendation: "Initiate warfarin per standard nomogram.",
		},
		panel.PhenotypeIntermediate: {
			Label: LabelAdjustDosage, Severity: SeverityModerate, BaseConfidence: 0.90,
			Recommendation: "Reduce starting dose by 25-50%. Decreased CYP2C9 clearance raises bleeding risk at standard doses.",
			Monitoring:     "INR twice weekly until stable.",
		},
		panel.PhenotypePoor: {
			Label: LabelAdjustDosage, Severity: SeverityHigh, BaseConfidence: 0.93,
			Recommendation: "Substantially reduce starting dose (consider 0.5-2 mg/day) or use an alternative anticoagulant. Markedly reduced warfarin clearance.",
			Alternatives:   []string{"apixaban", "rivaroxaban"},
			Monitoring:     "INR every 2-3 days during initiation.",
		},
	},
	"SIMVASTATIN": {
		panel.PhenotypeNormal: {
			Label: LabelSafe, Severity: SeverityNone, BaseConfidence: 0.93,
			Recommendation: "Use simvastatin at standard dosing.",
		},
		panel.PhenotypeIntermediate: {
			Label: LabelAdjustDosage, Severity: SeverityModerate, BaseConfidence: 0.90,
			Recommendation: "Limit to 20 mg/day or switch statin. Decreased SLCO1B1 transport raises plasma exposure and myopathy risk.",
			Alternatives:   []string{"rosuvastatin", "pravastatin"},
			Monitoring:     "Creatine kinase if muscle symptoms develop.",
		},
		panel.PhenotypePoor: {
			Label: LabelAdjustDosage, Severity: SeverityHigh, BaseConfidence: 0.93,
			Recommendation: "Avoid simvastatin doses above 20 mg/day; prefer an alternative statin. High myopathy and rhabdomyolysis risk.",
			Alternatives:   []string{"rosuvastatin", "pravastatin"},
			Monitoring:     "Baseline and follow-up creatine kinase.",
		},
	},
	"AZATHIOPRINE": {
		panel.PhenotypeNormal: {
			Label: LabelSafe, Severity: SeverityNone, BaseConfidence: 0.93,
			Recommendation: "Use azathioprine at standard dosing.",
		},
		panel.PhenotypeIntermediate: {
			Label: LabelAdjustDosage, Severity: SeverityModerate, BaseConfidence: 0.90,
			Recommendation: "Start at 30-70% of target dose. Intermediate TPMT activity accumulates thiopurine metabolites.",
			Monitoring:     "CBC weekly for the first month, then monthly.",
		},
		panel.PhenotypePoor: {
			Label: LabelToxic, Severity: SeverityCritical, BaseConfidence: 0.97,
			Recommendation: "Avoid azathioprine or reduce to 10% of standard dose given thrice weekly. TPMT deficiency causes severe, potentially fatal myelosuppression.",
			Alternatives:   []string{"mycophenolate"},
			Monitoring:     "CBC twice weekly if thiopurine therapy is unavoidable.",
		},
	},
	"FLUOROURACIL": {
		panel.PhenotypeNormal: {
			Label: LabelSafe, Severity: SeverityNone, BaseConfidence: 0.93,
			Recommendation: "Use fluorouracil at standard dosing.",
		},
		panel.PhenotypeIntermediate: {
			Label: LabelAdjustDosage, Severity: SeverityHigh, BaseConfidence: 0.90,
			Recommendation: "Reduce starting dose by 50%; titrate by toxicity. Partial DPD deficiency delays fluoropyrimidine clearance.",
			Monitoring:     "CBC and mucositis assessment each cycle.",
		},
		panel.PhenotypePoor: {
			Label: LabelToxic, Severity: SeverityCritical, BaseConfidence: 0.97,
			Recommendation: "Avoid fluorouracil and capecitabine. Complete DPD deficiency causes life-threatening toxicity at standard doses.",
			Alternatives:   []string{"raltitrexed"},
		},
	},
}

// Drugs returns the risk-table drug names in deterministic (table-definition)
// order.
func Drugs() []string {
	return []string{"CODEINE", "CLOPIDOGREL", "WARFARIN", "SIMVASTATIN", "AZATHIOPRINE", "FLUOROURACIL"}
}
