package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/ports"
)

// MaxUploadBytes bounds the size of an attached file.
const MaxUploadBytes = 10 << 20

type SubmitAnalysis struct {
	service  ports.SuggestionService
	readFile func(string) ([]byte, error)
	now      func() time.Time
	newID    func() string
}

type SubmitOption func(*SubmitAnalysis)

// WithFileReader replaces os.ReadFile (tests).
func WithFileReader(fn func(string) ([]byte, error)) SubmitOption {
	return func(uc *SubmitAnalysis) { uc.readFile = fn }
}

func WithSubmitClock(now func() time.Time) SubmitOption {
	return func(uc *SubmitAnalysis) { uc.now = now }
}

func WithReportIDs(fn func() string) SubmitOption {
	return func(uc *SubmitAnalysis) { uc.newID = fn }
}

func NewSubmitAnalysis(svc ports.SuggestionService, opts ...SubmitOption) *SubmitAnalysis {
	uc := &SubmitAnalysis{
		service:  svc,
		readFile: os.ReadFile,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute validates the submission, sends the code and image requests in
// parallel and collects both suggestion lists into one report.
func (uc *SubmitAnalysis) Execute(ctx context.Context, sub domain.Submission) (domain.AnalysisReport, error) {
	att, err := uc.validate(sub)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	report := domain.AnalysisReport{
		ID:                uc.newID(),
		SubmittedAt:       uc.now(),
		Source:            sourceOf(sub.Code, att),
		Code:              sub.Code,
		CodeSuggestions:   []domain.Suggestion{},
		VisualSuggestions: []domain.Suggestion{},
	}
	if att != nil {
		report.FileName = att.Name
	}

	reqs := domain.SplitRequests(sub.Code, att)
	resps := make([]domain.AnalysisResponse, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			resp, err := uc.service.Analyze(gctx, req)
			if err != nil {
				return err
			}
			resps[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.AnalysisReport{}, err
	}

	for i, req := range reqs {
		resp := resps[i]
		if !resp.OK() {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s analysis returned HTTP %d %s", req.Kind, resp.StatusCode, http.StatusText(resp.StatusCode)))
		}
		switch req.Kind {
		case domain.SubmissionCode:
			report.CodeSuggestions = append(report.CodeSuggestions, resp.Suggestions...)
		case domain.SubmissionImage:
			report.VisualSuggestions = append(report.VisualSuggestions, resp.Suggestions...)
		}
	}

	report.FinishedAt = uc.now()
	return report, nil
}

func (uc *SubmitAnalysis) validate(sub domain.Submission) (*domain.Attachment, error) {
	const op = "submit.validate"

	path := strings.TrimSpace(sub.FilePath)
	if strings.TrimSpace(sub.Code) == "" && path == "" {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("please enter some code or attach a file: %w", domain.ErrInvalidInput),
		}
	}
	if path == "" {
		return nil, nil
	}

	if !domain.IsAllowedUpload(path) {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindUnsupportedFile,
			Path: path,
			Err:  fmt.Errorf("only HTML, CSS, JS, or image files are allowed: %w", domain.ErrUnsupportedFile),
		}
	}

	data, err := uc.readFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "submit.read", Kind: kind, Path: path, Err: err}
	}
	if len(data) > MaxUploadBytes {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("%w: file larger than %d bytes", domain.ErrInvalidInput, MaxUploadBytes),
		}
	}

	name := filepath.Base(path)
	return &domain.Attachment{Name: name, ContentType: domain.ContentTypeFor(name), Data: data}, nil
}

func sourceOf(code string, att *domain.Attachment) string {
	hasCode := strings.TrimSpace(code) != ""
	switch {
	case hasCode && att != nil:
		return "code+file"
	case att != nil:
		return "file"
	default:
		return "code"
	}
}
