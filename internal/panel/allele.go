package panel

// FunctionalStatus describes the enzymatic consequence of a star allele.
type FunctionalStatus string

const (
	FunctionNormal    FunctionalStatus = "Normal Function"
	FunctionDecreased FunctionalStatus = "Decreased Function"
	FunctionNone      FunctionalStatus = "No Function"
	FunctionIncreased FunctionalStatus = "Increased Function"
	FunctionUnknown   FunctionalStatus = "Unknown"
)

// Signature is the defining variant of a star allele: a dbSNP identifier
// plus the reference-to-alternate base change, with the genomic locus as a
// fallback attribution key for VCF rows that carry no rsID.
type Signature struct {
	RSID  string
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
}

// StarAllele is a named variant form of a pharmacogene with an established
// functional status and a numeric activity value for the additive model.
type StarAllele struct {
	Name     string // e.g. "*4", "*1xN"
	Function FunctionalStatus
	Activity float64
	// Copies is the gene copy number this allele represents. It is 1 for
	// ordinary alleles and >=2 for duplication alleles, whose effective
	// activity is Activity multiplied by Copies.
	Copies    int
	Signature Signature
}

// EffectiveActivity returns the activity contribution of one chromosome copy
// carrying this allele. Duplication alleles multiply their base activity by
// the carried copy number, which is what lifts a score into the ultrarapid
// tier on duplication-capable genes.
func (a StarAllele) EffectiveActivity() float64 {
	copies := a.Copies
	if copies < 1 {
		copies = 1
	}
	return a.Activity * float64(copies)
}

// IsDuplication reports whether the allele represents a gene duplication.
func (a StarAllele) IsDuplication() bool {
	return a.Copies > 1
}

// ReferenceAllele is the wild-type *1 allele assumed for any chromosome copy
// with no matched variant.
var ReferenceAllele = StarAllele{
	Name:     "*1",
	Function: FunctionNormal,
	Activity: 1.0,
	Copies:   1,
}
