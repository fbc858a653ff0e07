package genotype

import (
	"strings"
	"testing"

	"github.com/pharmaguard/pharmaguard/internal/panel"
	"github.com/pharmaguard/pharmaguard/internal/vcf"
)

func parsePanel(t *testing.T, rows ...string) *vcf.PanelResult {
	t.Helper()
	content := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tSAMPLE\n" +
		strings.Join(rows, "\n") + "\n"
	result, err := vcf.Parse(content, panel.Default())
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return result
}

func vcfRow(chrom, pos, rsid, ref, alt, gt string) string {
	return strings.Join([]string{chrom, pos, rsid, ref, alt, "99", "PASS", ".", "GT", gt}, "\t")
}

func TestResolve_WildTypeDefault(t *testing.T) {
	r := NewResolver(panel.Default())
	result := r.Resolve(parsePanel(t,
		vcfRow("22", "42128945", "rs3892097", "G", "A", "0/0")))

	for _, g := range panel.Genes {
		call, ok := result.Call(g)
		if !ok {
			t.Fatalf("missing call for %s", g)
		}
		if call.Diplotype != WildType {
			t.Errorf("%s: expected *1/*1, got %s", g, call.Diplotype)
		}
		if call.Phenotype != panel.PhenotypeNormal {
			t.Errorf("%s: expected Normal Metabolizer, got %s", g, call.Phenotype)
		}
		if call.ActivityScore != 2.0 {
			t.Errorf("%s: expected score 2.0, got %.2f", g, call.ActivityScore)
		}
		if !call.WildType {
			t.Errorf("%s: expected wild-type marker", g)
		}
	}
}

func TestResolve_HeterozygousPairsWithReference(t *testing.T) {
	r := NewResolver(panel.Default())
	result := r.Resolve(parsePanel(t,
		vcfRow("22", "42128945", "rs3892097", "G", "A", "0/1")))

	call, _ := result.Call(panel.CYP2D6)
	if call.Diplotype.String() != "*1/*4" {
		t.Errorf("Expected *1/*4, got %s", call.Diplotype)
	}
	if call.ActivityScore != 1.0 {
		t.Errorf("Expected score 1.0, got %.2f", call.ActivityScore)
	}
	if call.Phenotype != panel.PhenotypeIntermediate {
		t.Errorf("Expected Intermediate Metabolizer, got %s", call.Phenotype)
	}
	if call.Supporting != 1 {
		t.Errorf("Expected 1 supporting variant, got %d", call.Supporting)
	}
}

func TestResolve_HomozygousClaimsBothCopies(t *testing.T) {
	r := NewResolver(panel.Default())
	result := r.Resolve(parsePanel(t,
		vcfRow("22", "42128945", "rs3892097", "G", "A", "1/1")))

	call, _ := result.Call(panel.CYP2D6)
	if call.Diplotype.String() != "*4/*4" {
		t.Errorf("Expected *4/*4, got %s", call.Diplotype)
	}
	if call.ActivityScore != 0 {
		t.Errorf("Expected score 0, got %.2f", call.ActivityScore)
	}
	if call.Phenotype != panel.PhenotypePoor {
		t.Errorf("Expected Poor Metabolizer, got %s", call.Phenotype)
	}
}

func TestResolve_CompoundHeterozygote(t *testing.T) {
	r := NewResolver(panel.Default())
	result := r.Resolve(parsePanel(t,
		vcfRow("10", "94942290", "rs1799853", "C", "T", "0/1"),
		vcfRow("10", "94981296", "rs1057910", "A", "C", "0/1")))

	call, _ := result.Call(panel.CYP2C9)
	if call.Diplotype.String() != "*2/*3" {
		t.Errorf("Expected *2/*3, got %s", call.Diplotype)
	}
	if call.ActivityScore != 0.5 {
		t.Errorf("Expected score 0.5, got %.2f", call.ActivityScore)
	}
	if call.Phenotype != panel.PhenotypePoor {
		t.Errorf("Expected Poor Metabolizer, got %s", call.Phenotype)
	}
	if call.Supporting != 2 {
		t.Errorf("Expected 2 supporting variants, got %d", call.Supporting)
	}
}

func TestResolve_DuplicationUltrarapid(t *testing.T) {
	r := NewResolver(panel.Default())
	result := r.Resolve(parsePanel(t,
		vcfRow("22", "42126611", "rs1135840", "C", "G", "1/1")))

	call, _ := result.Call(panel.CYP2D6)
	if call.Diplotype.String() != "*1xN/*1xN" {
		t.Errorf("Expected *1xN/*1xN, got %s", call.Diplotype)
	}
	if call.ActivityScore != 4.0 {
		t.Errorf("Expected score 4.0 with copy-number multiplier, got %.2f", call.ActivityScore)
	}
	if call.Phenotype != panel.PhenotypeUltrarapid {
		t.Errorf("Expected Ultrarapid Metabolizer, got %s", call.Phenotype)
	}
}

func TestResolve_UnmatchedVariantsUnresolved(t *testing.T) {
	r := NewResolver(panel.Default())
	// Panel locus, but the wrong base change: surfaced yet unmatched.
	result := r.Resolve(parsePanel(t,
		vcfRow("22", "42128945", "rs3892097", "G", "C", "0/1")))

	call, _ := result.Call(panel.CYP2D6)
	if call.Diplotype != Unresolved {
		t.Errorf("Expected *?/*?, got %s", call.Diplotype)
	}
	if call.Phenotype != panel.PhenotypeUnknown {
		t.Errorf("Expected Unknown phenotype, got %s", call.Phenotype)
	}
	if len(call.Variants) != 1 {
		t.Fatalf("Unmatched variant must still be surfaced, got %d", len(call.Variants))
	}
	v := call.Variants[0]
	if v.StarAllele != "" || v.FunctionalStatus != panel.FunctionUnknown {
		t.Errorf("Expected unknown-function variant record, got %+v", v)
	}
}

func TestResolve_DuplicateSignaturesDeduplicated(t *testing.T) {
	r := NewResolver(panel.Default())
	// Same allele signature twice: het first, then hom. The hom observation
	// outranks and the diplotype stays *4/*4, not *4 three times.
	result := r.Resolve(parsePanel(t,
		vcfRow("22", "42128945", "rs3892097", "G", "A", "0/1"),
		vcfRow("22", "42128945", "rs3892097", "G", "A", "1/1")))

	call, _ := result.Call(panel.CYP2D6)
	if call.Diplotype.String() != "*4/*4" {
		t.Errorf("Expected *4/*4 after dedup, got %s", call.Diplotype)
	}
	if call.Supporting != 2 {
		t.Errorf("Both observations count as support, got %d", call.Supporting)
	}
}

func TestResolve_CallsInPanelOrder(t *testing.T) {
	r := NewResolver(panel.Default())
	result := r.Resolve(parsePanel(t,
		vcfRow("1", "97450058", "rs3918290", "C", "T", "0/1"),
		vcfRow("22", "42128945", "rs3892097", "G", "A", "0/1")))

	calls := result.Calls()
	if len(calls) != len(panel.Genes) {
		t.Fatalf("Expected %d calls, got %d", len(panel.Genes), len(calls))
	}
	for i, g := range panel.Genes {
		if calls[i].Gene != g {
			t.Errorf("Call %d: expected %s, got %s", i, g, calls[i].Gene)
		}
	}
}
