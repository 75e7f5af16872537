package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/filewatch"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/logger"
	"github.com/iamvenkatgiri/AccessAI/internal/usecase"
)

const watchDebounce = 300 * time.Millisecond

type submitOpts struct {
	code   string
	file   string
	watch  bool
	noSave bool
	format string
}

func submitCmd(g *globalOpts) *cobra.Command {
	o := &submitOpts{}

	c := &cobra.Command{
		Use:   "submit",
		Short: "Send code and/or a file to the analysis service for accessibility suggestions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.format != "pretty" && o.format != "json" && o.format != "" {
				return fmt.Errorf("unsupported format %q (expected pretty|json)", o.format)
			}
			if o.watch && strings.TrimSpace(o.file) == "" {
				return errors.New("--watch needs --file")
			}

			code, err := readCode(cmd.InOrStdin(), o.code)
			if err != nil {
				return err
			}

			ws, done, err := g.open(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer done()

			sub := domain.Submission{Code: code, FilePath: o.file}
			uc := usecase.NewSubmitAnalysis(ws.suggestions)
			run := func(ctx context.Context) error {
				return submitOnce(ctx, cmd, ws, uc, sub, o)
			}

			if !o.watch {
				return run(cmd.Context())
			}
			return watchAndSubmit(cmd, o.file, run)
		},
	}

	c.Flags().StringVar(&o.code, "code", "", "Code to analyse; \"-\" reads standard input")
	c.Flags().StringVarP(&o.file, "file", "f", "", "HTML, CSS, JS or image file to attach")
	c.Flags().BoolVar(&o.watch, "watch", false, "Re-submit whenever --file changes")
	c.Flags().BoolVar(&o.noSave, "no-save", false, "Do not save the report under reports/")
	c.Flags().StringVar(&o.format, "format", "pretty", "Output format: pretty|json")
	return c
}

func readCode(stdin io.Reader, flag string) (string, error) {
	if flag != "-" {
		return flag, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func submitOnce(ctx context.Context, cmd *cobra.Command, ws *workspaceCtx, uc *usecase.SubmitAnalysis, sub domain.Submission, o *submitOpts) error {
	log := logger.Component("cli.submit")

	report, err := uc.Execute(ctx, sub)
	if err != nil {
		log.Error("submit.failed", "err", err)
		return err
	}

	var id string
	switch {
	case o.noSave:
	case ws.store == nil:
		log.Debug("submit.not_saved", "reason", "no workspace")
	default:
		id, err = ws.store.SaveReport(report)
		if err != nil {
			log.Warn("submit.save_failed", "err", err)
		}
	}

	log.Info("submit.ok", "report_id", report.ID, "saved_id", id, "total", report.Total(), "warnings", len(report.Warnings))
	return printReport(cmdOut(cmd), report, id, o.format)
}

// watchAndSubmit runs once, then again after every debounced change to path, until interrupted.
func watchAndSubmit(cmd *cobra.Command, path string, run func(context.Context) error) error {
	out := cmdOut(cmd)
	errOut := cmd.ErrOrStderr()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}

	w, err := filewatch.New(func(ctx context.Context, changed string) {
		fmt.Fprintf(out, "\n%s changed, re-submitting…\n", changed)
		if err := run(ctx); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}, filewatch.WithDebounce(watchDebounce), filewatch.WithLogger(logger.Component("filewatch")))
	if err != nil {
		return err
	}
	if err := w.Add(path); err != nil {
		w.Stop()
		return err
	}

	w.Start(ctx)
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)
	<-ctx.Done()
	w.Stop()
	return nil
}

func printReport(w io.Writer, r domain.AnalysisReport, savedID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"report_id": savedID,
			"report":    r,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, r, savedID)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, r domain.AnalysisReport, savedID string) {
	total := r.FinishedAt.Sub(r.SubmittedAt)
	if r.SubmittedAt.IsZero() || r.FinishedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Source:     %s\n", r.Source)
	if r.FileName != "" {
		fmt.Fprintf(w, "File:       %s\n", r.FileName)
	}
	fmt.Fprintf(w, "Submitted:  %s\n", r.SubmittedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:   %s\n", total)
	if savedID != "" {
		fmt.Fprintf(w, "Report ID:  %s\n", savedID)
	}
	fmt.Fprintln(w)

	printSuggestions(w, "Code suggestions", r.CodeSuggestions)
	printSuggestions(w, "Visual suggestions", r.VisualSuggestions)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func printSuggestions(w io.Writer, heading string, items []domain.Suggestion) {
	fmt.Fprintf(w, "%s (%d)\n", heading, len(items))
	for i, s := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s.Title)
		if body := strings.TrimSpace(s.Suggestion); body != "" {
			fmt.Fprintf(w, "     %s\n", body)
		}
	}
	fmt.Fprintln(w)
}
