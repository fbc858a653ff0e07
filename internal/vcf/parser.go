package vcf

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pharmaguard/pharmaguard/internal/panel"
)

// Fatal input errors. Row-level problems never surface here; they are
// accumulated into PanelResult.ParseErrors instead.
var (
	ErrEmptyInput = errors.New("vcf: empty input")
	ErrNotText    = errors.New("vcf: input is not text")
)

// ParseError represents a fatal structural error with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

// Parse reads VCF text and produces the panel result for def. It fails only
// on structurally invalid input (empty text, binary content, missing #CHROM
// column header); individual bad rows are skipped and recorded.
func Parse(content string, def *panel.Definition) (*PanelResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyInput
	}
	if strings.ContainsRune(content, '\x00') {
		return nil, ErrNotText
	}

	result := &PanelResult{
		Variants: make(map[panel.Gene][]Variant),
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	headerSeen := false
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "##") {
			continue
		}
		if strings.HasPrefix(line, "#CHROM") {
			headerSeen = true
			continue
		}
		if !headerSeen {
			return nil, &ParseError{Line: lineNumber, Message: "expected #CHROM header line before data rows"}
		}

		v, reason := parseRow(line, def)
		if reason != "" {
			result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("line %d: %s [%s]", lineNumber, reason, truncate(line, 80)))
			continue
		}
		if v == nil {
			// Homozygous-reference row: not a variant.
			continue
		}

		result.TotalVariants++
		if v.Gene != "" {
			result.Variants[v.Gene] = append(result.Variants[v.Gene], *v)
		} else {
			result.Unattributed = append(result.Unattributed, *v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if !headerSeen {
		return nil, &ParseError{Line: lineNumber, Message: "no #CHROM header line found"}
	}

	// Panel-definition order keeps downstream rendering deterministic.
	for _, g := range panel.Genes {
		if result.HasGene(g) {
			result.DetectedGenes = append(result.DetectedGenes, g)
		}
	}

	return result, nil
}

// parseRow parses one data row. It returns (nil, reason) for malformed rows,
// (nil, "") for homozygous-reference rows, and the variant otherwise.
func parseRow(line string, def *panel.Definition) (*Variant, string) {
	fields := strings.Split(line, "\t")
	if len(fields) < 10 {
		return nil, fmt.Sprintf("expected at least 10 columns, found %d", len(fields))
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || pos <= 0 {
		return nil, fmt.Sprintf("invalid position %q", fields[1])
	}

	ref := strings.ToUpper(fields[3])
	altField := strings.ToUpper(fields[4])
	if ref == "" || altField == "" || altField == "." {
		return nil, "missing ref/alt alleles"
	}
	alts := strings.Split(altField, ",")

	gt, ok := genotypeValue(fields[8], fields[9])
	if !ok {
		return nil, "missing GT in genotype field"
	}

	altIndex, zygosity, reason := parseGenotype(gt, len(alts))
	if reason != "" {
		return nil, reason
	}
	if altIndex == 0 {
		return nil, "" // homozygous reference, not reported as a variant
	}

	rsid := fields[2]
	if rsid == "." {
		rsid = ""
	}

	v := &Variant{
		Chrom:    fields[0],
		Pos:      pos,
		RSID:     rsid,
		Ref:      ref,
		Alt:      alts[altIndex-1],
		Zygosity: zygosity,
	}
	if gene, ok := def.AttributeGene(v.RSID, v.Chrom, v.Pos); ok {
		v.Gene = gene
	}
	return v, ""
}

// genotypeValue extracts the GT value from the FORMAT and sample columns.
func genotypeValue(format, sample string) (string, bool) {
	keys := strings.Split(format, ":")
	values := strings.Split(sample, ":")
	for i, k := range keys {
		if k == "GT" && i < len(values) {
			return values[i], true
		}
	}
	return "", false
}

// parseGenotype interprets a diploid GT string. It returns the 1-based alt
// allele index (0 for homozygous reference) and the zygosity. Haploid calls,
// missing calls, out-of-range allele indices and two distinct alt alleles
// with no reference copy are all reported as malformed.
func parseGenotype(gt string, altCount int) (int, Zygosity, string) {
	sep := "/"
	if strings.Contains(gt, "|") {
		sep = "|"
	}
	tokens := strings.Split(gt, sep)
	if len(tokens) != 2 {
		return 0, "", fmt.Sprintf("unrecognized genotype encoding %q", gt)
	}

	indices := make([]int, 2)
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 || n > altCount {
			return 0, "", fmt.Sprintf("unrecognized genotype encoding %q", gt)
		}
		indices[i] = n
	}

	a, b := indices[0], indices[1]
	switch {
	case a == 0 && b == 0:
		return 0, "", ""
	case a == b:
		return a, Homozygous, ""
	case a == 0 || b == 0:
		return max(a, b), Heterozygous, ""
	default:
		// Two different alt alleles on one row: contradictory zygosity for
		// the single-alt model, excluded from diplotype resolution.
		return 0, "", fmt.Sprintf("ambiguous genotype %q", gt)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
