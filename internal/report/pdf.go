// Package report renders assessment results as a clinical PDF report.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pharmaguard/pharmaguard/internal/panel"
	"github.com/pharmaguard/pharmaguard/internal/schema"
)

type rgb struct{ r, g, b int }

var riskColors = map[string]rgb{
	"Safe":          {6, 95, 70},
	"Adjust Dosage": {120, 53, 15},
	"Toxic":         {127, 29, 29},
	"Ineffective":   {49, 46, 129},
	"Unknown":       {31, 41, 55},
}

var alertColors = map[string]struct{ bg, border rgb }{
	"critical": {rgb{69, 10, 10}, rgb{239, 68, 68}},
	"high":     {rgb{69, 10, 10}, rgb{239, 68, 68}},
	"moderate": {rgb{69, 26, 3}, rgb{249, 115, 22}},
	"low":      {rgb{120, 53, 15}, rgb{251, 191, 36}},
}

// Generator renders PDF reports. The zero value is usable; Now is only
// overridden in tests.
type Generator struct {
	Now func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate renders the complete clinical report for one patient run.
func (g *Generator) Generate(patientID string, outputs []schema.Output, detectedGenes []panel.Gene, totalVariants int) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)

	generated := g.now().UTC()
	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(15, 23, 42)
		pdf.Rect(0, 0, 210, 22, "F")
		pdf.SetTextColor(224, 242, 254)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetXY(10, 5)
		pdf.CellFormat(0, 12, "PharmaGuard | Pharmacogenomic Risk Report", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(148, 163, 184)
		pdf.SetXY(10, 14)
		pdf.CellFormat(0, 6, "Generated: "+generated.Format("2006-01-02 15:04 UTC"), "", 1, "L", false, 0, "")
		pdf.Ln(8)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFillColor(15, 23, 42)
		pdf.Rect(0, 282, 210, 15, "F")
		pdf.SetTextColor(100, 116, 139)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetXY(10, 284)
		pdf.CellFormat(0, 6, "DISCLAIMER: PharmaGuard is a research tool. Not for clinical use without validation. Consult CPIC guidelines at cpicpgx.org", "", 0, "L", false, 0, "")
		pdf.SetXY(-30, 284)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	g.patientSummary(pdf, patientID, len(outputs), len(detectedGenes), totalVariants, generated)
	g.geneOverview(pdf, detectedGenes)

	for _, out := range outputs {
		if pdf.GetY() > 220 {
			pdf.AddPage()
		}
		g.drugCard(pdf, out)
	}

	pdf.AddPage()
	g.disclaimer(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) patientSummary(pdf *fpdf.Fpdf, patientID string, drugCount, geneCount, totalVariants int, generated time.Time) {
	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(15, 30, 180, 28, "F")
	pdf.SetXY(18, 32)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 10, "Pharmacogenomic Risk Assessment", "", 1, "L", false, 0, "")
	pdf.SetX(18)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(60, 7, "Patient ID: "+patientID, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("Genes Analyzed: %d/%d", geneCount, len(panel.Genes)), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Drugs Evaluated: %d", drugCount), "", 1, "L", false, 0, "")
	pdf.SetX(18)
	pdf.CellFormat(0, 7, fmt.Sprintf("Variants Detected: %d  |  Report Date: %s", totalVariants, generated.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (g *Generator) geneOverview(pdf *fpdf.Fpdf, detected []panel.Gene) {
	g.sectionTitle(pdf, "GENOMIC PROFILE SUMMARY", rgb{15, 23, 42})

	found := make(map[panel.Gene]bool, len(detected))
	for _, gene := range detected {
		found[gene] = true
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 5, "GENE STATUS OVERVIEW", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	// Two genes per row.
	for i, gene := range panel.Genes {
		if found[gene] {
			pdf.SetFillColor(6, 95, 70)
		} else {
			pdf.SetFillColor(51, 65, 85)
		}
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(32, 7, "  "+gene.String(), "", 0, "L", true, 0, "")
		pdf.SetFillColor(248, 250, 252)
		pdf.SetTextColor(71, 85, 105)
		pdf.SetFont("Helvetica", "", 8)
		status := "Wild-type (*1/*1)"
		if found[gene] {
			status = "Variants Detected"
		}
		pdf.CellFormat(58, 7, "  "+status, "", 0, "L", true, 0, "")
		if i%2 == 1 {
			pdf.Ln(8)
		} else {
			pdf.SetX(15 + 90)
		}
	}
	pdf.Ln(10)
}

func (g *Generator) drugCard(pdf *fpdf.Fpdf, out schema.Output) {
	color, ok := riskColors[out.RiskAssessment.RiskLabel]
	if !ok {
		color = riskColors["Unknown"]
	}
	pdf.SetFillColor(color.r, color.g, color.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	title := fmt.Sprintf("  %s  -  %s  (Severity: %s)",
		titleCase(out.Drug), out.RiskAssessment.RiskLabel, strings.ToUpper(out.RiskAssessment.Severity))
	pdf.CellFormat(0, 10, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)

	switch out.RiskAssessment.Severity {
	case "moderate", "high", "critical":
		g.alertBox(pdf, out.ClinicalRecommendation.DosingRecommendation, out.RiskAssessment.Severity)
	}

	pdf.SetTextColor(15, 23, 42)
	g.keyValue(pdf, "Primary Gene", out.PharmacogenomicProfile.PrimaryGene, true)
	g.keyValue(pdf, "Diplotype", out.PharmacogenomicProfile.Diplotype, true)
	g.keyValue(pdf, "Phenotype", out.PharmacogenomicProfile.Phenotype, true)
	g.keyValue(pdf, "Confidence Score", fmt.Sprintf("%.0f%%", out.RiskAssessment.ConfidenceScore*100), false)
	pdf.Ln(2)

	g.variantTable(pdf, out.PharmacogenomicProfile.DetectedVariants)
	g.explanation(pdf, out)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(6, 95, 70)
	pdf.CellFormat(0, 5, "CPIC DOSING RECOMMENDATION", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(15, 23, 42)
	pdf.MultiCell(0, 4.5, out.ClinicalRecommendation.DosingRecommendation, "", "L", false)

	if len(out.ClinicalRecommendation.AlternativeDrugs) > 0 {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(71, 85, 105)
		pdf.CellFormat(30, 5, "Alternatives:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(0, 5, strings.Join(out.ClinicalRecommendation.AlternativeDrugs, ", "), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetDrawColor(203, 213, 225)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)
}

func (g *Generator) variantTable(pdf *fpdf.Fpdf, variants []schema.VariantRecord) {
	if len(variants) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(35, 6, "  rsID", "", 0, "L", true, 0, "")
	pdf.CellFormat(25, 6, "Star Allele", "", 0, "L", true, 0, "")
	pdf.CellFormat(20, 6, "REF>ALT", "", 0, "L", true, 0, "")
	pdf.CellFormat(0, 6, "Functional Status", "", 1, "L", true, 0, "")

	shown := variants
	if len(shown) > 6 {
		shown = shown[:6]
	}
	for i, v := range shown {
		if i%2 == 0 {
			pdf.SetFillColor(248, 250, 252)
		} else {
			pdf.SetFillColor(241, 245, 249)
		}
		pdf.SetTextColor(15, 23, 42)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(35, 5.5, "  "+v.RSID, "", 0, "L", true, 0, "")
		pdf.CellFormat(25, 5.5, v.StarAllele, "", 0, "L", true, 0, "")
		pdf.CellFormat(20, 5.5, v.Ref+">"+v.Alt, "", 0, "L", true, 0, "")
		pdf.CellFormat(0, 5.5, v.FunctionalStatus, "", 1, "L", true, 0, "")
	}
	pdf.Ln(3)
}

func (g *Generator) explanation(pdf *fpdf.Fpdf, out schema.Output) {
	exp := out.LLMGeneratedExplanation
	if exp.Summary == "" || !exp.Success {
		return
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(59, 130, 246)
	pdf.CellFormat(0, 5, "AI CLINICAL EXPLANATION", "", 1, "L", false, 0, "")

	sections := []struct{ label, text string }{
		{"Summary", exp.Summary},
		{"Biological Mechanism", exp.BiologicalMechanism},
		{"Variant Significance", exp.VariantSignificance},
		{"Clinical Implications", exp.ClinicalImplications},
	}
	for _, s := range sections {
		if s.text == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(30, 64, 175)
		pdf.CellFormat(0, 5, s.label, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(51, 65, 85)
		pdf.MultiCell(0, 4.5, s.text, "", "L", false)
		pdf.Ln(1)
	}
}

func (g *Generator) disclaimer(pdf *fpdf.Fpdf) {
	g.sectionTitle(pdf, "IMPORTANT CLINICAL DISCLAIMER", rgb{127, 29, 29})
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 41, 59)
	disclaimer := "This report has been generated by PharmaGuard, a pharmacogenomics research tool. " +
		"The risk assessments and recommendations provided herein are based on established CPIC " +
		"(Clinical Pharmacogenomics Implementation Consortium) guidelines.\n\n" +
		"THIS REPORT IS NOT A MEDICAL DEVICE AND SHOULD NOT BE USED FOR CLINICAL DECISION-MAKING " +
		"WITHOUT VALIDATION BY A QUALIFIED CLINICAL PHARMACOLOGIST OR GENETICIST.\n\n" +
		"All recommendations should be reviewed in the context of the patient's complete clinical picture, " +
		"co-medications, comorbidities, and other relevant factors. Consult CPIC guidelines at cpicpgx.org " +
		"for the most current evidence-based dosing recommendations."
	pdf.MultiCell(0, 5.5, disclaimer, "", "L", false)

	pdf.Ln(5)
	g.sectionTitle(pdf, "REFERENCES", rgb{30, 58, 138})
	refs := []string{
		"1. CPIC Guidelines - cpicpgx.org",
		"2. PharmGKB - pharmgkb.org",
		"3. Relling MV et al. CPIC: Clinical Pharmacogenomics Implementation Consortium guidelines. Clin Pharmacol Ther. 2011.",
		"4. Scott SA et al. CYP2C19 allele nomenclature. Pharmacogenet Genomics. 2012.",
		"5. Caudle KE et al. Standardizing terms for clinical pharmacogenomic test results. Genet Med. 2017.",
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(51, 65, 85)
	for _, ref := range refs {
		pdf.CellFormat(0, 6, ref, "", 1, "L", false, 0, "")
	}
}

func (g *Generator) sectionTitle(pdf *fpdf.Fpdf, title string, color rgb) {
	pdf.SetFillColor(color.r, color.g, color.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 8, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
	pdf.SetTextColor(0, 0, 0)
}

func (g *Generator) keyValue(pdf *fpdf.Fpdf, key, value string, boldVal bool) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(55, 6, key+":", "", 0, "L", false, 0, "")
	style := ""
	if boldVal {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *Generator) alertBox(pdf *fpdf.Fpdf, text, severity string) {
	colors, ok := alertColors[severity]
	if !ok {
		colors = struct{ bg, border rgb }{rgb{31, 41, 55}, rgb{107, 114, 128}}
	}
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetFillColor(colors.bg.r, colors.bg.g, colors.bg.b)
	pdf.Rect(x, y, 180, 14, "F")
	pdf.SetFillColor(colors.border.r, colors.border.g, colors.border.b)
	pdf.Rect(x, y, 4, 14, "F")
	pdf.SetXY(x+7, y+3)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(254, 226, 226)
	pdf.MultiCell(170, 4.5, "CLINICAL ALERT: "+text, "", "L", false)
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
