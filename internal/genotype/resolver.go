package genotype

import (
	"sort"

	"go.uber.org/zap"

	"github.com/pharmaguard/pharmaguard/internal/panel"
	"github.com/pharmaguard/pharmaguard/internal/vcf"
)

// Resolver maps parsed panel results to diplotypes and phenotypes using the
// shared read-only panel definition.
type Resolver struct {
	def    *panel.Definition
	logger *zap.Logger
}

// NewResolver creates a resolver over the given panel definition.
func NewResolver(def *panel.Definition) *Resolver {
	return &Resolver{def: def, logger: zap.NewNop()}
}

// SetLogger sets the logger for diagnostic messages.
func (r *Resolver) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Resolve produces a gene call for every panel gene. Genes absent from the
// parsed result resolve to the wild-type *1/*1 Normal call, never Unknown;
// Unknown is reserved for genes whose variants matched no known signature.
func (r *Resolver) Resolve(parsed *vcf.PanelResult) *Result {
	result := &Result{calls: make(map[panel.Gene]GeneCall, len(panel.Genes))}
	for _, g := range panel.Genes {
		result.calls[g] = r.resolveGene(g, parsed.Variants[g])
	}
	return result
}

// matchedAllele tracks one distinct matched star allele and the strongest
// zygosity observed for it.
type matchedAllele struct {
	allele     panel.StarAllele
	homozygous bool
}

func (r *Resolver) resolveGene(g panel.Gene, variants []vcf.Variant) GeneCall {
	if len(variants) == 0 {
		score := 2 * panel.ReferenceAllele.EffectiveActivity()
		return GeneCall{
			Gene:          g,
			Diplotype:     WildType,
			Phenotype:     r.def.PhenotypeFor(g, score),
			ActivityScore: score,
			WildType:      true,
		}
	}

	matched := make(map[string]*matchedAllele)
	var detected []DetectedVariant
	supporting := 0

	for _, v := range variants {
		allele, ok := r.def.MatchAllele(g, v.RSID, v.Chrom, v.Pos, v.Ref, v.Alt)
		if !ok {
			// Unmatched signature: ignored for the diplotype, surfaced for
			// transparency.
			detected = append(detected, DetectedVariant{
				RSID:             v.RSID,
				Gene:             g,
				Ref:              v.Ref,
				Alt:              v.Alt,
				FunctionalStatus: panel.FunctionUnknown,
			})
			r.logger.Debug("variant matched no known allele signature",
				zap.String("gene", g.String()),
				zap.String("locus", v.Locus()),
				zap.String("rsid", v.RSID))
			continue
		}

		supporting++
		detected = append(detected, DetectedVariant{
			RSID:             v.RSID,
			Gene:             g,
			StarAllele:       allele.Name,
			Ref:              v.Ref,
			Alt:              v.Alt,
			FunctionalStatus: allele.Function,
		})

		// Variants matching the same allele signature are deduplicated;
		// a homozygous observation outranks a heterozygous one.
		m, seen := matched[allele.Name]
		if !seen {
			matched[allele.Name] = &matchedAllele{
				allele:     allele,
				homozygous: v.Zygosity == vcf.Homozygous,
			}
		} else if v.Zygosity == vcf.Homozygous {
			m.homozygous = true
		}
	}

	if len(matched) == 0 {
		return GeneCall{
			Gene:      g,
			Diplotype: Unresolved,
			Phenotype: panel.PhenotypeUnknown,
			Variants:  detected,
		}
	}

	a1, a2 := r.buildDiplotype(g, matched)
	score := a1.EffectiveActivity() + a2.EffectiveActivity()

	return GeneCall{
		Gene:          g,
		Diplotype:     Diplotype{Allele1: a1.Name, Allele2: a2.Name},
		Phenotype:     r.def.PhenotypeFor(g, score),
		ActivityScore: score,
		Variants:      detected,
		Supporting:    supporting,
	}
}

// buildDiplotype assigns the two chromosome copies. A homozygous allele
// claims both copies; one heterozygous allele pairs with the reference; two
// distinct heterozygous alleles form a compound heterozygote. Any alleles
// beyond the first two are ignored and logged.
func (r *Resolver) buildDiplotype(g panel.Gene, matched map[string]*matchedAllele) (panel.StarAllele, panel.StarAllele) {
	ordered := make([]*matchedAllele, 0, len(matched))
	for _, m := range matched {
		ordered = append(ordered, m)
	}
	// Homozygous calls first, then by allele name for determinism.
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].homozygous != ordered[j].homozygous {
			return ordered[i].homozygous
		}
		return ordered[i].allele.Name < ordered[j].allele.Name
	})

	if len(ordered) > 2 || (ordered[0].homozygous && len(ordered) > 1) {
		r.logger.Warn("more allele signatures than chromosome copies; extra alleles ignored",
			zap.String("gene", g.String()),
			zap.Int("matched", len(ordered)))
	}

	first := ordered[0]
	if first.homozygous {
		return first.allele, first.allele
	}
	if len(ordered) > 1 {
		return first.allele, ordered[1].allele
	}
	return panel.ReferenceAllele, first.allele
}
