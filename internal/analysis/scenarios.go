package analysis

import (
	"context"
	"embed"
	"fmt"

	"github.com/pharmaguard/pharmaguard/internal/risk"
)

//go:embed sampledata/*.vcf
var sampleFS embed.FS

// Scenario is a bundled verification case: a sample VCF, the drugs to
// assess, and the risk labels the pipeline must produce.
type Scenario struct {
	Name      string
	PatientID string
	File      string
	Drugs     []string
	Expected  map[string]risk.Label
}

// Scenarios returns the bundled verification suite in a fixed order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:      "wild-type",
			PatientID: "PATIENT_WT",
			File:      "sampledata/wild_type.vcf",
			Drugs:     []string{"CODEINE", "CLOPIDOGREL", "WARFARIN", "SIMVASTATIN", "AZATHIOPRINE", "FLUOROURACIL"},
			Expected: map[string]risk.Label{
				"CODEINE":      risk.LabelSafe,
				"CLOPIDOGREL":  risk.LabelSafe,
				"WARFARIN":     risk.LabelSafe,
				"SIMVASTATIN":  risk.LabelSafe,
				"AZATHIOPRINE": risk.LabelSafe,
				"FLUOROURACIL": risk.LabelSafe,
			},
		},
		{
			Name:      "mixed-risk",
			PatientID: "PATIENT_MIXED",
			File:      "sampledata/mixed_risk.vcf",
			Drugs:     []string{"CODEINE", "CLOPIDOGREL", "AZATHIOPRINE"},
			Expected: map[string]risk.Label{
				"CODEINE":      risk.LabelAdjustDosage,
				"CLOPIDOGREL":  risk.LabelIneffective,
				"AZATHIOPRINE": risk.LabelAdjustDosage,
			},
		},
		{
			Name:      "ultrarapid-metabolizer",
			PatientID: "PATIENT_UM",
			File:      "sampledata/ultrarapid.vcf",
			Drugs:     []string{"CODEINE", "CLOPIDOGREL"},
			Expected: map[string]risk.Label{
				"CODEINE":     risk.LabelToxic,
				"CLOPIDOGREL": risk.LabelSafe,
			},
		},
		{
			Name:      "worst-case",
			PatientID: "PATIENT_WC",
			File:      "sampledata/worst_case.vcf",
			Drugs:     []string{"CODEINE", "CLOPIDOGREL", "WARFARIN", "SIMVASTATIN", "AZATHIOPRINE", "FLUOROURACIL"},
			Expected: map[string]risk.Label{
				"CODEINE":      risk.LabelIneffective,
				"CLOPIDOGREL":  risk.LabelIneffective,
				"WARFARIN":     risk.LabelAdjustDosage,
				"SIMVASTATIN":  risk.LabelAdjustDosage,
				"AZATHIOPRINE": risk.LabelToxic,
				"FLUOROURACIL": risk.LabelToxic,
			},
		},
	}
}

// ScenarioResult pairs a scenario with its pipeline report and the list of
// label mismatches, if any.
type ScenarioResult struct {
	Scenario   Scenario
	Report     *Report
	Err        error
	Mismatches []string
}

// Passed reports whether the scenario ran cleanly and every expected label
// matched.
func (r ScenarioResult) Passed() bool {
	return r.Err == nil && len(r.Mismatches) == 0
}

// RunScenarios executes the bundled suite through the worker pool and
// returns results in suite order.
func (p *Pipeline) RunScenarios(ctx context.Context, workers int) ([]ScenarioResult, error) {
	scenarios := Scenarios()

	items := make(chan WorkItem, len(scenarios))
	for i, sc := range scenarios {
		content, err := sampleFS.ReadFile(sc.File)
		if err != nil {
			return nil, fmt.Errorf("read sample %s: %w", sc.File, err)
		}
		items <- WorkItem{Seq: i, PatientID: sc.PatientID, VCF: string(content), Drugs: sc.Drugs}
	}
	close(items)

	out := make([]ScenarioResult, 0, len(scenarios))
	err := OrderedCollect(p.ParallelRun(ctx, items, workers), func(wr WorkResult) error {
		sc := scenarios[wr.Seq]
		res := ScenarioResult{Scenario: sc, Report: wr.Report, Err: wr.Err}
		if wr.Err == nil {
			res.Mismatches = checkLabels(sc, wr.Report)
		}
		out = append(out, res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func checkLabels(sc Scenario, report *Report) []string {
	var mismatches []string
	got := make(map[string]risk.Label, len(report.Risks))
	for _, r := range report.Risks {
		got[r.Drug] = r.Label
	}
	for _, drug := range sc.Drugs {
		want := sc.Expected[drug]
		if have, ok := got[drug]; !ok {
			mismatches = append(mismatches, fmt.Sprintf("%s: no result", drug))
		} else if have != want {
			mismatches = append(mismatches, fmt.Sprintf("%s: got %s, want %s", drug, have, want))
		}
	}
	return mismatches
}
