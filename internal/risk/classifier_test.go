package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaguard/pharmaguard/internal/genotype"
	"github.com/pharmaguard/pharmaguard/internal/panel"
	"github.com/pharmaguard/pharmaguard/internal/vcf"
)

func resolveFixture(t *testing.T, rows ...string) *genotype.Result {
	t.Helper()
	content := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tSAMPLE\n"
	for _, r := range rows {
		content += r + "\n"
	}
	parsed, err := vcf.Parse(content, panel.Default())
	require.NoError(t, err)
	return genotype.NewResolver(panel.Default()).Resolve(parsed)
}

func fixtureRow(chrom, pos, rsid, ref, alt, gt string) string {
	return strings.Join([]string{chrom, pos, rsid, ref, alt, "99", "PASS", ".", "GT", gt}, "\t")
}

// Every row of the risk table must satisfy the label-severity contract; a
// drifting table edit should fail here, not in production.
func TestRiskTable_LabelSeverityConsistency(t *testing.T) {
	for drug, rows := range riskTable {
		for phenotype, entry := range rows {
			assert.True(t, entry.Label.IsValid(), "%s/%s: invalid label %q", drug, phenotype, entry.Label)
			assert.True(t, entry.Severity.IsValid(), "%s/%s: invalid severity %q", drug, phenotype, entry.Severity)
			assert.True(t, entry.Label.ConsistentWith(entry.Severity),
				"%s/%s: label %s cannot carry severity %s", drug, phenotype, entry.Label, entry.Severity)
			assert.Greater(t, entry.BaseConfidence, 0.0, "%s/%s: base confidence unset", drug, phenotype)
			assert.LessOrEqual(t, entry.BaseConfidence, 1.0, "%s/%s", drug, phenotype)
			assert.NotEmpty(t, entry.Recommendation, "%s/%s: recommendation unset", drug, phenotype)
		}
	}

	// Each table drug has catalog metadata with a primary panel gene.
	for _, drug := range Drugs() {
		info, ok := drugCatalog[drug]
		require.True(t, ok, "%s missing from catalog", drug)
		assert.True(t, info.PrimaryGene.IsValid(), "%s: invalid primary gene", drug)
	}
}

func TestClassify_WildTypeAllSafe(t *testing.T) {
	c := NewClassifier()
	genotypes := resolveFixture(t)

	results := c.Classify(genotypes, Drugs())
	require.Len(t, results, 6)
	for _, r := range results {
		assert.Equal(t, LabelSafe, r.Label, "%s", r.Drug)
		assert.Equal(t, SeverityNone, r.Severity, "%s", r.Drug)
		assert.Equal(t, "*1/*1", r.Diplotype.String(), "%s", r.Drug)
	}
}

func TestClassify_PoorMetabolizerCodeine(t *testing.T) {
	c := NewClassifier()
	genotypes := resolveFixture(t,
		fixtureRow("22", "42128945", "rs3892097", "G", "A", "1/1"))

	results := c.Classify(genotypes, []string{"CODEINE"})
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, LabelIneffective, r.Label)
	assert.Equal(t, SeverityHigh, r.Severity)
	assert.Equal(t, "*4/*4", r.Diplotype.String())
	assert.Equal(t, panel.PhenotypePoor, r.Phenotype)
	assert.NotEmpty(t, r.Alternatives)
	assert.Len(t, r.DetectedVariants, 1)
}

func TestClassify_UnknownDrug(t *testing.T) {
	c := NewClassifier()
	genotypes := resolveFixture(t)

	results := c.Classify(genotypes, []string{"ASPIRIN"})
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, LabelUnknown, r.Label)
	assert.Equal(t, SeverityNone, r.Severity)
	assert.Equal(t, panel.PhenotypeUnknown, r.Phenotype)
	assert.Zero(t, r.Confidence)
}

func TestClassify_UnknownPhenotypeNeverGuesses(t *testing.T) {
	c := NewClassifier()
	// Locus hit with the wrong base change leaves CYP2D6 unresolved.
	genotypes := resolveFixture(t,
		fixtureRow("22", "42128945", "rs3892097", "G", "C", "0/1"))

	results := c.Classify(genotypes, []string{"CODEINE"})
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, LabelUnknown, r.Label)
	assert.Equal(t, "*?/*?", r.Diplotype.String())
	// The unmatched variant is still reported for transparency.
	require.Len(t, r.DetectedVariants, 1)
	assert.Equal(t, panel.FunctionUnknown, r.DetectedVariants[0].FunctionalStatus)
}

func TestClassify_InteractionOnlyDrugIsUnknown(t *testing.T) {
	c := NewClassifier()
	genotypes := resolveFixture(t)

	results := c.Classify(genotypes, []string{"OMEPRAZOLE"})
	require.Len(t, results, 1)
	assert.Equal(t, LabelUnknown, results[0].Label)
}

func TestScaleConfidence(t *testing.T) {
	c := NewClassifier()

	// Monotone non-decreasing in the number of supporting variants.
	prev := 0.0
	for n := 0; n <= 6; n++ {
		conf := c.scaleConfidence(0.90, n)
		assert.GreaterOrEqual(t, conf, prev, "supporting=%d", n)
		assert.GreaterOrEqual(t, conf, DefaultConfidenceFloor)
		assert.LessOrEqual(t, conf, maxConfidence)
		prev = conf
	}

	assert.InDelta(t, 0.80, c.scaleConfidence(0.90, 0), 1e-9)
	assert.InDelta(t, 0.90, c.scaleConfidence(0.90, 2), 1e-9)
	// Saturates at four supporting variants.
	assert.Equal(t, c.scaleConfidence(0.90, 4), c.scaleConfidence(0.90, 10))
	// Caps below certainty even for maximal evidence.
	assert.InDelta(t, maxConfidence, c.scaleConfidence(0.97, 4), 1e-9)

	// A raised floor clamps sparse-evidence results.
	c.SetConfidenceFloor(0.88)
	assert.InDelta(t, 0.88, c.scaleConfidence(0.90, 0), 1e-9)
}

func TestNormalizeDrugs(t *testing.T) {
	got := NormalizeDrugs([]string{" codeine ", "WARFARIN", "Codeine", "", "warfarin", "ASPIRIN"})
	assert.Equal(t, []string{"CODEINE", "WARFARIN", "ASPIRIN"}, got)
}
