package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/workspacefinder"
)

// --- printReport ---

func sampleReport() domain.AnalysisReport {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return domain.AnalysisReport{
		SubmittedAt:       at,
		FinishedAt:        at.Add(1500 * time.Millisecond),
		Source:            "code+file",
		FileName:          "index.html",
		CodeSuggestions:   []domain.Suggestion{{Title: "Missing alt", Suggestion: "Add alt text to images"}},
		VisualSuggestions: []domain.Suggestion{{Title: "Low contrast", Suggestion: "Darken the grey text"}},
		Warnings:          []string{"image request: status 502"},
	}
}

func TestPrintReport_JSON_ValidOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "r-1", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["report_id"] != "r-1" {
		t.Errorf("expected report_id=r-1, got %v", payload["report_id"])
	}
	report, ok := payload["report"].(map[string]any)
	if !ok {
		t.Fatalf("expected 'report' object in JSON output")
	}
	if _, ok := report["code_suggestions"]; !ok {
		t.Errorf("expected code_suggestions key, got %v", report)
	}
}

func TestPrintReport_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "r-42", "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Source:     code+file",
		"Duration:   1.5s",
		"Report ID:  r-42",
		"Code suggestions (1)",
		"1. Missing alt",
		"Visual suggestions (1)",
		"warning: image request: status 502",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in pretty output, got:\n%s", want, out)
		}
	}
}

func TestPrintReport_EmptyFormat_IsPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, domain.AnalysisReport{}, "", ""); err != nil {
		t.Fatalf("empty format should behave like pretty, got error: %v", err)
	}
	if !strings.Contains(buf.String(), "Duration:   0s") {
		t.Errorf("expected zero duration for unset times, got:\n%s", buf.String())
	}
}

func TestPrintReport_UnknownFormat_ReturnsError(t *testing.T) {
	err := printReport(&bytes.Buffer{}, domain.AnalysisReport{}, "", "xml")
	if err == nil || !strings.Contains(err.Error(), "xml") {
		t.Fatalf("expected error mentioning format, got: %v", err)
	}
}

// --- printModes ---

func TestPrintModes_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printModes(&buf, domain.Profiles(), "pretty"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "filter:   none") {
		t.Errorf("expected normal vision to show no filter:\n%s", out)
	}
	if !strings.Contains(out, "grayscale(1)") {
		t.Errorf("expected achromatopsia filter:\n%s", out)
	}
	if strings.Count(out, "filter:") != len(domain.Modes()) {
		t.Errorf("expected one entry per mode:\n%s", out)
	}
}

func TestPrintModes_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printModes(&buf, domain.Profiles(), "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != len(domain.Modes()) || got[0]["mode"] != "normal" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

// --- parseModes / readCode ---

func TestParseModes(t *testing.T) {
	got, err := parseModes(nil, true)
	if err != nil || len(got) != len(domain.Modes()) {
		t.Fatalf("--all: got %v, %v", got, err)
	}

	got, err = parseModes([]string{"low_vision", "LowVision", "tritanopia"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != domain.ModeLowVision || got[1] != domain.ModeTritanopia {
		t.Fatalf("expected deduplicated modes, got %v", got)
	}

	if _, err := parseModes(nil, false); err == nil {
		t.Fatal("expected error without --mode or --all")
	}
	if _, err := parseModes([]string{"x-ray"}, false); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestReadCode(t *testing.T) {
	got, err := readCode(strings.NewReader("<img>"), "-")
	if err != nil || got != "<img>" {
		t.Fatalf("expected stdin code, got %q, %v", got, err)
	}
	got, _ = readCode(strings.NewReader("ignored"), "<p>")
	if got != "<p>" {
		t.Fatalf("expected flag code, got %q", got)
	}
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"submit", "simulate", "snapshot", "modes", "init", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
	for _, flag := range []string{"debug", "workspace"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent --%s flag", flag)
		}
	}
}

func TestSubmitCmd_Flags(t *testing.T) {
	cmd := submitCmd(&globalOpts{})
	for _, flag := range []string{"code", "file", "watch", "no-save", "format"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on submit command", flag)
		}
	}
}

func TestSnapshotCmd_Flags(t *testing.T) {
	cmd := snapshotCmd(&globalOpts{})
	for _, flag := range []string{"mode", "all", "out", "browser"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on snapshot command", flag)
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	cmd := initCmd()
	for _, flag := range []string{"path", "api-url", "force"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on init command", flag)
		}
	}
}

func TestSubmitCmd_WatchNeedsFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"submit", "--code", "<p>", "--watch"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--file") {
		t.Fatalf("expected --file error, got %v", err)
	}
}

func TestModesCmd_Execute(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"modes"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Achromatopsia") {
		t.Fatalf("expected modes listing, got:\n%s", out.String())
	}
}

func TestInitCmd_CreatesWorkspace(t *testing.T) {
	tmp := t.TempDir()
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs([]string{"init", "--path", tmp, "--api-url", "http://localhost:5000/api"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfgPath := filepath.Join(tmp, workspacefinder.ConfigFile)
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if !strings.Contains(string(b), "http://localhost:5000/api") {
		t.Fatalf("expected api url in config:\n%s", b)
	}
	if !strings.Contains(out.String(), cfgPath) {
		t.Fatalf("expected path in output, got %q", out.String())
	}
}

// --- workspace resolution ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, found, err := resolveWorkspaceRoot(workspacefinder.NewFinder(), tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp || !found {
		t.Errorf("expected %q (found), got %q found=%v", tmp, got, found)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, _, err := resolveWorkspaceRoot(workspacefinder.NewFinder(), ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestLoadWorkspace_WithoutConfigUsesDefaults(t *testing.T) {
	t.Setenv(workspacefinder.EnvAPIURL, "")

	ws, err := loadWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ws.found || ws.store != nil {
		t.Fatalf("expected no workspace and no report store, got found=%v", ws.found)
	}
	if ws.cfg != domain.DefaultConfig() {
		t.Fatalf("expected default config")
	}
}

func TestLoadWorkspace_WithConfig(t *testing.T) {
	t.Setenv(workspacefinder.EnvAPIURL, "")

	root := t.TempDir()
	content := "accessai:\n  api:\n    url: http://localhost:9/api\n"
	if err := os.WriteFile(filepath.Join(root, workspacefinder.ConfigFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ws, err := loadWorkspace(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ws.found || ws.store == nil {
		t.Fatalf("expected workspace with report store")
	}
	if ws.cfg.API.URL != "http://localhost:9/api" {
		t.Fatalf("unexpected api url %q", ws.cfg.API.URL)
	}
}

func TestLoadWorkspace_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, workspacefinder.ConfigFile), []byte("accessai: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadWorkspace(root); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
