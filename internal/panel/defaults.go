package panel

import "math"

// geneDefinitions is the static allele and threshold catalog, following the
// CPIC allele-function tables for the six panel genes. Activity scores use
// the additive model: 1.0 per normal-function copy, fractions for decreased
// function, 0 for no function. Threshold tiers are gene-specific; only
// CYP2D6 and CYP2C19 can reach tiers above Normal.
var geneDefinitions = []GeneDefinition{
	{
		Gene:  CYP2D6,
		Chrom: "22",
		Alleles: []StarAllele{
			{
				Name: "*4", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs3892097", Chrom: "22", Pos: 42128945, Ref: "G", Alt: "A"},
			},
			{
				Name: "*10", Function: FunctionDecreased, Activity: 0.25, Copies: 1,
				Signature: Signature{RSID: "rs1065852", Chrom: "22", Pos: 42130692, Ref: "C", Alt: "T"},
			},
			{
				Name: "*17", Function: FunctionDecreased, Activity: 0.5, Copies: 1,
				Signature: Signature{RSID: "rs28371706", Chrom: "22", Pos: 42129770, Ref: "C", Alt: "T"},
			},
			{
				// Gene duplication marker: each chromosome copy carrying it
				// contributes two functional gene copies.
				Name: "*1xN", Function: FunctionIncreased, Activity: 1.0, Copies: 2,
				Signature: Signature{RSID: "rs1135840", Chrom: "22", Pos: 42126611, Ref: "C", Alt: "G"},
			},
		},
		Tiers: []Tier{
			{Max: 0, Phenotype: PhenotypePoor},
			{Max: 1.0, Phenotype: PhenotypeIntermediate},
			{Max: 2.25, Phenotype: PhenotypeNormal},
			{Max: math.Inf(1), Phenotype: PhenotypeUltrarapid},
		},
	},
	{
		Gene:  CYP2C19,
		Chrom: "10",
		Alleles: []StarAllele{
			{
				Name: "*2", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs4244585", Chrom: "10", Pos: 94781859, Ref: "G", Alt: "A"},
			},
			{
				Name: "*3", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs4986893", Chrom: "10", Pos: 94780653, Ref: "G", Alt: "A"},
			},
			{
				Name: "*17", Function: FunctionIncreased, Activity: 1.5, Copies: 1,
				Signature: Signature{RSID: "rs12248560", Chrom: "10", Pos: 94761900, Ref: "C", Alt: "T"},
			},
		},
		Tiers: []Tier{
			{Max: 0, Phenotype: PhenotypePoor},
			{Max: 1.0, Phenotype: PhenotypeIntermediate},
			{Max: 2.0, Phenotype: PhenotypeNormal},
			{Max: 2.5, Phenotype: PhenotypeRapid},
			{Max: math.Inf(1), Phenotype: PhenotypeUltrarapid},
		},
	},
	{
		Gene:  CYP2C9,
		Chrom: "10",
		Alleles: []StarAllele{
			{
				Name: "*2", Function: FunctionDecreased, Activity: 0.5, Copies: 1,
				Signature: Signature{RSID: "rs1799853", Chrom: "10", Pos: 94942290, Ref: "C", Alt: "T"},
			},
			{
				Name: "*3", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs1057910", Chrom: "10", Pos: 94981296, Ref: "A", Alt: "C"},
			},
		},
		Tiers: []Tier{
			{Max: 0.5, Phenotype: PhenotypePoor},
			{Max: 1.5, Phenotype: PhenotypeIntermediate},
			{Max: math.Inf(1), Phenotype: PhenotypeNormal},
		},
	},
	{
		Gene:  SLCO1B1,
		Chrom: "12",
		Alleles: []StarAllele{
			{
				Name: "*5", Function: FunctionDecreased, Activity: 0.5, Copies: 1,
				Signature: Signature{RSID: "rs4149056", Chrom: "12", Pos: 21178615, Ref: "T", Alt: "C"},
			},
			{
				Name: "*1b", Function: FunctionNormal, Activity: 1.0, Copies: 1,
				Signature: Signature{RSID: "rs2306283", Chrom: "12", Pos: 21176804, Ref: "A", Alt: "G"},
			},
		},
		Tiers: []Tier{
			{Max: 0.5, Phenotype: PhenotypePoor},
			{Max: 1.5, Phenotype: PhenotypeIntermediate},
			{Max: math.Inf(1), Phenotype: PhenotypeNormal},
		},
	},
	{
		Gene:  TPMT,
		Chrom: "6",
		Alleles: []StarAllele{
			{
				Name: "*2", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs1800462", Chrom: "6", Pos: 18143955, Ref: "G", Alt: "C"},
			},
			{
				Name: "*3B", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs1800460", Chrom: "6", Pos: 18139228, Ref: "C", Alt: "T"},
			},
			{
				Name: "*3C", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs1142345", Chrom: "6", Pos: 18130918, Ref: "T", Alt: "C"},
			},
		},
		Tiers: []Tier{
			{Max: 0, Phenotype: PhenotypePoor},
			{Max: 1.0, Phenotype: PhenotypeIntermediate},
			{Max: math.Inf(1), Phenotype: PhenotypeNormal},
		},
	},
	{
		Gene:  DPYD,
		Chrom: "1",
		Alleles: []StarAllele{
			{
				Name: "*2A", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs3918290", Chrom: "1", Pos: 97450058, Ref: "C", Alt: "T"},
			},
			{
				Name: "*13", Function: FunctionNone, Activity: 0, Copies: 1,
				Signature: Signature{RSID: "rs55886062", Chrom: "1", Pos: 97515865, Ref: "A", Alt: "C"},
			},
			{
				Name: "c.2846A>T", Function: FunctionDecreased, Activity: 0.5, Copies: 1,
				Signature: Signature{RSID: "rs67376798", Chrom: "1", Pos: 97305364, Ref: "A", Alt: "T"},
			},
		},
		Tiers: []Tier{
			{Max: 0.5, Phenotype: PhenotypePoor},
			{Max: 1.5, Phenotype: PhenotypeIntermediate},
			{Max: math.Inf(1), Phenotype: PhenotypeNormal},
		},
	},
}
