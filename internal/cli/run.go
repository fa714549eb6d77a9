package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/citehunt/citehunt/internal/corpus"
	"github.com/citehunt/citehunt/internal/llm"
	"github.com/citehunt/citehunt/internal/model"
	"github.com/citehunt/citehunt/internal/pipeline"
	"github.com/citehunt/citehunt/internal/report"
	"github.com/citehunt/citehunt/internal/worker"
)

var (
	runLimit    int
	runHTMLPath string
	runJSONPath string
)

// runCmd scans a dump and writes the report.
var runCmd = &cobra.Command{
	Use:   "run <dump>",
	Short: "Scan a Wikipedia XML dump for unsourced claims",
	Long: `Scan a Wikipedia XML dump for citation-needed statements, search the
web for candidate sources and write an HTML report with the
best-matching excerpt of every candidate page.

Requires a prepared dictionary; see 'citehunt prepare'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if runHTMLPath != "" {
			cfg.Output.HTMLPath = runHTMLPath
		}
		if runJSONPath != "" {
			cfg.Output.JSONPath = runJSONPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		dict, err := corpus.LoadDictionary(cfg.General.WordIDsPath)
		if err != nil {
			return fmt.Errorf("load dictionary: %w", err)
		}

		ctx := cmd.Context()
		reader := corpus.NewDumpReader(cfg.General.Namespaces)
		p := pipeline.NewPipeline(cfg, dict)
		batch := worker.NewBatchProcessor(p, cfg.Concurrency.ArticleWorkers, runLimit)

		articles, err := batch.ProcessDump(ctx, args[0], reader)
		if err != nil {
			return err
		}

		run := model.RunResult{
			BaseURL:  reader.BaseURL(),
			Articles: articles,
		}

		summarizer, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			return fmt.Errorf("configure summarizer: %w", err)
		}
		if err := summarizer.GenerateSummary(ctx, &run); err != nil {
			// The summary is decorative; a failure never discards results.
			fmt.Fprintf(os.Stderr, "Warning: summary generation failed: %v\n", err)
		}

		renderer, err := report.NewRenderer(cfg.Output.IncludeFooter)
		if err != nil {
			return err
		}

		if cfg.Output.HTMLPath != "" {
			if err := renderToFile(cfg.Output.HTMLPath, run, renderer.RenderHTML); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", cfg.Output.HTMLPath)
		}
		if cfg.Output.JSONPath != "" {
			if err := renderToFile(cfg.Output.JSONPath, run, renderer.RenderJSON); err != nil {
				return err
			}
			fmt.Printf("JSON written to %s\n", cfg.Output.JSONPath)
		}

		claims := 0
		for _, article := range run.Articles {
			claims += len(article.Claims)
		}
		fmt.Printf("Found %d claims across %d articles.\n", claims, len(run.Articles))

		return nil
	},
}

func renderToFile(path string, run model.RunResult, render func(w io.Writer, run model.RunResult) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return render(f, run)
}

func init() {
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "stop after this many articles (0 = whole dump)")
	runCmd.Flags().StringVar(&runHTMLPath, "html", "", "HTML report path (overrides output.html)")
	runCmd.Flags().StringVar(&runJSONPath, "json", "", "JSON report path (overrides output.json)")
	rootCmd.AddCommand(runCmd)
}
