package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// Multipart field names understood by the analysis service.
const (
	FieldCode  = "code"
	FieldFile  = "file"
	FieldImage = "image"
)

// BuildAnalysisRequest encodes an AnalysisRequest as a multipart POST to endpoint.
func BuildAnalysisRequest(ctx context.Context, endpoint string, ar domain.AnalysisRequest) (*http.Request, error) {
	const op = "httpclient.build"

	if strings.TrimSpace(endpoint) == "" {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("%w: empty api url", domain.ErrInvalidConfig)}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	switch ar.Kind {
	case domain.SubmissionCode:
		if ar.Code == "" && ar.File == nil {
			return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: domain.ErrInvalidInput}
		}
		if ar.Code != "" {
			if err := mw.WriteField(FieldCode, ar.Code); err != nil {
				return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
			}
		}
		if ar.File != nil {
			if err := writeFile(mw, FieldFile, ar.File); err != nil {
				return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
			}
		}
	case domain.SubmissionImage:
		if !ar.File.IsImage() {
			return nil, &domain.OpError{Op: op, Kind: domain.KindUnsupportedFile, Err: domain.ErrUnsupportedFile}
		}
		if err := writeFile(mw, FieldImage, ar.File); err != nil {
			return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
		}
	default:
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidInput, Err: fmt.Errorf("%w: kind %q", domain.ErrInvalidInput, ar.Kind)}
	}

	if err := mw.Close(); err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func writeFile(mw *multipart.Writer, field string, a *domain.Attachment) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, a.Name))
	ct := a.ContentType
	if ct == "" {
		ct = domain.ContentTypeFor(a.Name)
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(a.Data)
	return err
}
