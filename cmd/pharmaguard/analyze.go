package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pharmaguard/pharmaguard/internal/analysis"
	"github.com/pharmaguard/pharmaguard/internal/duckdb"
	"github.com/pharmaguard/pharmaguard/internal/explain"
	"github.com/pharmaguard/pharmaguard/internal/output"
	"github.com/pharmaguard/pharmaguard/internal/report"
	"github.com/pharmaguard/pharmaguard/internal/risk"
)

// maxInputSize caps VCF input at 5 MB; panel files are tiny and anything
// larger is almost certainly the wrong file.
const maxInputSize = 5 * 1024 * 1024

func newAnalyzeCmd() *cobra.Command {
	var (
		drugs      []string
		patientID  string
		format     string
		outputFile string
		pdfFile    string
		storePath  string
		useExplain bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <input.vcf>",
		Short: "Assess drug risk from a panel VCF",
		Example: `  pharmaguard analyze --drugs CODEINE,WARFARIN patient.vcf
  pharmaguard analyze --drugs CODEINE --format json -o results.json patient.vcf
  pharmaguard analyze --drugs CODEINE --pdf report.pdf patient.vcf
  cat patient.vcf | pharmaguard analyze --drugs CODEINE -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()
			return runAnalyze(cmd, args[0], analyzeOptions{
				drugs:      drugs,
				patientID:  patientID,
				format:     format,
				outputFile: outputFile,
				pdfFile:    pdfFile,
				storePath:  storePath,
				useExplain: useExplain,
			}, logger)
		},
	}

	cmd.Flags().StringSliceVar(&drugs, "drugs", nil, "Drugs to assess (comma-separated)")
	cmd.Flags().StringVar(&patientID, "patient", "ANONYMOUS", "Patient identifier for the report")
	cmd.Flags().StringVarP(&format, "format", "f", "tab", "Output format: tab, json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&pdfFile, "pdf", "", "Write a PDF clinical report to this path")
	cmd.Flags().StringVar(&storePath, "store", "", "Append results to a DuckDB audit store at this path")
	cmd.Flags().BoolVar(&useExplain, "explain", false, "Generate LLM explanations (requires PHARMAGUARD_GROQ_API_KEY)")
	cmd.MarkFlagRequired("drugs")

	return cmd
}

type analyzeOptions struct {
	drugs      []string
	patientID  string
	format     string
	outputFile string
	pdfFile    string
	storePath  string
	useExplain bool
}

func runAnalyze(cmd *cobra.Command, inputPath string, opts analyzeOptions, logger *zap.Logger) error {
	content, err := readInput(inputPath)
	if err != nil {
		return err
	}

	pipeline := analysis.New()
	pipeline.SetLogger(logger)
	if opts.useExplain {
		apiKey := viper.GetString("groq_api_key")
		if apiKey == "" {
			logger.Warn("no groq api key configured, explanations disabled")
		} else {
			pipeline.SetExplainer(explain.NewGroqClient(explain.GroqConfig{APIKey: apiKey}))
		}
	}

	rep, err := pipeline.Run(cmd.Context(), opts.patientID, content, opts.drugs)
	if err != nil {
		return err
	}

	if err := writeResults(rep, opts.format, opts.outputFile); err != nil {
		return err
	}
	printInteractions(cmd.ErrOrStderr(), rep.Interactions)

	if opts.pdfFile != "" {
		gen := &report.Generator{}
		data, err := gen.Generate(opts.patientID, rep.Outputs, rep.Panel.DetectedGenes, rep.Panel.TotalVariants)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfFile, data, 0644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		logger.Info("wrote pdf report", zap.String("path", opts.pdfFile))
	}

	if opts.storePath != "" {
		if err := storeResults(opts.storePath, rep); err != nil {
			return err
		}
		logger.Info("stored assessments", zap.String("path", opts.storePath), zap.Int("rows", len(rep.Outputs)))
	}

	return nil
}

// readInput reads the VCF from a file or stdin ("-"), enforcing the size cap.
func readInput(path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if len(data) > maxInputSize {
		return "", fmt.Errorf("input exceeds %d MB limit", maxInputSize/(1024*1024))
	}
	return string(data), nil
}

func writeResults(rep *analysis.Report, format, outputFile string) error {
	var out *os.File
	if outputFile == "" {
		out = os.Stdout
	} else {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var writer output.Writer
	switch format {
	case "tab":
		writer = output.NewTabWriter(out)
	case "json":
		writer = output.NewJSONWriter(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, doc := range rep.Outputs {
		if err := writer.Write(doc); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return writer.Flush()
}

func printInteractions(w io.Writer, ir *risk.InteractionReport) {
	if ir == nil || !ir.InteractionsFound {
		return
	}
	fmt.Fprintf(w, "Drug interactions detected: %d (overall severity: %s)\n",
		ir.TotalInteractions, ir.OverallSeverity)
	for _, f := range ir.Findings {
		fmt.Fprintf(w, "  [%s] %s: %s\n", f.Severity, strings.Join(f.Drugs, " + "), f.Mechanism)
	}
}

func storeResults(path string, rep *analysis.Report) error {
	store, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	rows := make([]duckdb.Assessment, 0, len(rep.Outputs))
	for _, doc := range rep.Outputs {
		rows = append(rows, duckdb.FromOutput(doc))
	}
	return store.WriteAssessments(rows)
}
