package panel

import "strings"

// GeneDefinition holds the allele catalog and phenotype thresholds for one
// panel gene.
type GeneDefinition struct {
	Gene    Gene
	Chrom   string
	Alleles []StarAllele
	// Tiers maps an activity score to a phenotype via ordered upper bounds;
	// see PhenotypeFor. Genes without an ultrarapid tier simply omit it,
	// capping their highest reachable phenotype.
	Tiers []Tier
}

// Tier is one ordered range of the score-to-phenotype table: a score s
// selects the first tier with s <= Max. The final tier of every gene is a
// catch-all with Max = +Inf.
type Tier struct {
	Max       float64
	Phenotype Phenotype
}

// Definition is the full six-gene panel. Build it once with Default and share
// it read-only; nothing in the pipeline mutates it.
type Definition struct {
	genes  map[Gene]*GeneDefinition
	byRSID map[string]alleleRef
	byPos  map[posKey]alleleRef
}

type alleleRef struct {
	gene   Gene
	allele StarAllele
}

type posKey struct {
	chrom string
	pos   int64
}

// Default builds the process-wide panel definition.
func Default() *Definition {
	d := &Definition{
		genes:  make(map[Gene]*GeneDefinition, len(Genes)),
		byRSID: make(map[string]alleleRef),
		byPos:  make(map[posKey]alleleRef),
	}
	for i := range geneDefinitions {
		gd := &geneDefinitions[i]
		d.genes[gd.Gene] = gd
		for _, a := range gd.Alleles {
			ref := alleleRef{gene: gd.Gene, allele: a}
			if a.Signature.RSID != "" {
				d.byRSID[a.Signature.RSID] = ref
			}
			d.byPos[posKey{normChrom(a.Signature.Chrom), a.Signature.Pos}] = ref
		}
	}
	return d
}

// Gene returns the definition for g, or nil if g is not a panel gene.
func (d *Definition) Gene(g Gene) *GeneDefinition {
	return d.genes[g]
}

// AttributeGene maps a variant locus to its panel gene. A variant belongs to
// the panel if its rsID or its chrom+pos matches a known allele signature.
// The boolean is false for variants outside the panel.
func (d *Definition) AttributeGene(rsid, chrom string, pos int64) (Gene, bool) {
	if ref, ok := d.byRSID[rsid]; ok && rsid != "" && rsid != "." {
		return ref.gene, true
	}
	if ref, ok := d.byPos[posKey{normChrom(chrom), pos}]; ok {
		return ref.gene, true
	}
	return "", false
}

// MatchAllele resolves a detected variant to a star allele of gene. Matching
// requires the signature locus (rsID or chrom+pos) and the exact ref/alt
// change; a locus hit with a different base change is not a match.
func (d *Definition) MatchAllele(gene Gene, rsid, chrom string, pos int64, ref, alt string) (StarAllele, bool) {
	candidate, ok := d.byRSID[rsid]
	if !ok || rsid == "" || rsid == "." {
		candidate, ok = d.byPos[posKey{normChrom(chrom), pos}]
	}
	if !ok || candidate.gene != gene {
		return StarAllele{}, false
	}
	sig := candidate.allele.Signature
	if !strings.EqualFold(sig.Ref, ref) || !strings.EqualFold(sig.Alt, alt) {
		return StarAllele{}, false
	}
	return candidate.allele, true
}

// PhenotypeFor maps an activity score to the gene's phenotype tier.
func (d *Definition) PhenotypeFor(gene Gene, score float64) Phenotype {
	gd := d.genes[gene]
	if gd == nil {
		return PhenotypeUnknown
	}
	for _, t := range gd.Tiers {
		if score <= t.Max {
			return t.Phenotype
		}
	}
	// Unreachable: every gene ends with a catch-all tier.
	return PhenotypeUnknown
}

func normChrom(chrom string) string {
	return strings.TrimPrefix(strings.ToLower(chrom), "chr")
}
