package reportstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

const defaultReportsDir = "reports"
const maskValue = "********"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	maskingEnabled bool
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ReportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: dir,
		maskingEnabled: cfg.Masking.Enabled,
		writeIndex:     false,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ReportStore = (*JSONStore)(nil)

// Dir is the absolute-or-relative directory reports are written to.
func (s *JSONStore) Dir() string {
	return filepath.Join(s.rootDir, s.reportsDirName)
}

func (s *JSONStore) SaveReport(report domain.AnalysisReport) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{Op: "reportstore.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	ts := report.SubmittedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := report
	if toSave.SubmittedAt.IsZero() {
		toSave.SubmittedAt = ts
	}

	namePart := report.FileName
	if strings.TrimSpace(namePart) == "" {
		namePart = report.Source
	}
	namePart = strings.TrimSuffix(filepath.Base(namePart), filepath.Ext(namePart))
	slug := slugify(namePart)
	if slug == "" {
		slug = "report"
	}

	id, filename := uniqueName(dir, fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug))
	path := filepath.Join(dir, filename)

	if s.maskingEnabled {
		toSave = maskReport(toSave)
	}

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{Op: "reportstore.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{Op: "reportstore.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{Op: "reportstore.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, id, filename, toSave)
	}

	return id, nil
}

func uniqueName(dir, base string) (id, filename string) {
	id = base
	for i := 2; ; i++ {
		filename = id + ".json"
		if _, err := os.Stat(filepath.Join(dir, filename)); os.IsNotExist(err) {
			return id, filename
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *JSONStore) appendIndex(dir, id, filename string, r domain.AnalysisReport) error {
	type idx struct {
		ID          string    `json:"id"`
		ReportID    string    `json:"report_id,omitempty"`
		File        string    `json:"file"`
		Source      string    `json:"source"`
		Suggestions int       `json:"suggestions"`
		SubmittedAt time.Time `json:"submitted_at"`
	}
	line, err := json.Marshal(idx{
		ID:          id,
		ReportID:    r.ID,
		File:        filename,
		Source:      r.Source,
		Suggestions: r.Total(),
		SubmittedAt: r.SubmittedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, "index.jsonl")
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// key = "value", key: value, key=value for secret-looking keys.
var secretAssign = regexp.MustCompile(`(?i)((?:api[_-]?key|apikey|token|secret|password|passwd|auth)[\w-]*["']?\s*[:=]\s*["']?)([^"'\s,;}<>]+)`)

// Authorization: Bearer xxx
var bearer = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9\-._~+/]+=*)`)

// maskReport returns a masked copy (does NOT mutate the input).
func maskReport(r domain.AnalysisReport) domain.AnalysisReport {
	out := r
	out.Code = maskSecrets(r.Code)
	out.CodeSuggestions = maskSuggestions(r.CodeSuggestions)
	out.VisualSuggestions = maskSuggestions(r.VisualSuggestions)
	if r.Warnings != nil {
		out.Warnings = append([]string(nil), r.Warnings...)
	}
	return out
}

func maskSuggestions(in []domain.Suggestion) []domain.Suggestion {
	if in == nil {
		return []domain.Suggestion{}
	}
	out := make([]domain.Suggestion, len(in))
	for i, s := range in {
		out[i] = domain.Suggestion{Title: s.Title, Suggestion: maskSecrets(s.Suggestion)}
	}
	return out
}

func maskSecrets(s string) string {
	if s == "" {
		return s
	}
	s = bearer.ReplaceAllString(s, "${1}"+maskValue)
	s = secretAssign.ReplaceAllString(s, "${1}"+maskValue)
	return s
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
