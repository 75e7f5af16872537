package domain

import (
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// Suggestion is one record returned by the analysis service.
type Suggestion struct {
	Title      string `json:"suggestionTitle"`
	Suggestion string `json:"suggestion"`
}

// SubmissionKind distinguishes the two payloads the service accepts.
type SubmissionKind string

const (
	SubmissionCode  SubmissionKind = "code"
	SubmissionImage SubmissionKind = "image"
)

// Attachment is a file read into memory for upload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsImage reports whether the attachment is an image. An empty ContentType
// falls back to the file extension.
func (a *Attachment) IsImage() bool {
	if a == nil {
		return false
	}
	ct := a.ContentType
	if ct == "" {
		ct = ContentTypeFor(a.Name)
	}
	return strings.HasPrefix(ct, "image/")
}

// Submission is what the user wants analysed: pasted code, a file, or both.
type Submission struct {
	Code     string
	FilePath string
}

// AnalysisRequest is one multipart POST to the service.
// Code requests carry "code" and/or "file"; image requests carry "image".
type AnalysisRequest struct {
	Kind SubmissionKind
	Code string
	File *Attachment
}

// AnalysisResponse is the decoded service reply for one request.
type AnalysisResponse struct {
	StatusCode  int
	Suggestions []Suggestion
	RequestID   string
	Duration    time.Duration
}

func (r AnalysisResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// AnalysisReport is the outcome of a submission, persisted under reports/.
type AnalysisReport struct {
	ID          string    `json:"id,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	FinishedAt  time.Time `json:"finished_at"`

	Source   string `json:"source"`
	Code     string `json:"code,omitempty"`
	FileName string `json:"file_name,omitempty"`

	CodeSuggestions   []Suggestion `json:"code_suggestions"`
	VisualSuggestions []Suggestion `json:"visual_suggestions"`

	Warnings []string `json:"warnings,omitempty"`
}

func (r AnalysisReport) Total() int {
	return len(r.CodeSuggestions) + len(r.VisualSuggestions)
}

// AllowedUploadExtensions lists the file types the service accepts.
var AllowedUploadExtensions = []string{".html", ".css", ".js", ".jpg", ".jpeg", ".png", ".gif"}

// IsAllowedUpload reports whether name has one of AllowedUploadExtensions (case-insensitive).
func IsAllowedUpload(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AllowedUploadExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// ContentTypeFor guesses the MIME type from the extension.
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".html":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "text/javascript"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// SplitRequests turns a submission into the requests the service expects:
// a code request when there is code or a non-image file, an image request when the file is an image.
func SplitRequests(code string, file *Attachment) []AnalysisRequest {
	var out []AnalysisRequest

	codeReq := AnalysisRequest{Kind: SubmissionCode}
	if strings.TrimSpace(code) != "" {
		codeReq.Code = code
	}
	if file != nil && !file.IsImage() {
		codeReq.File = file
	}
	if codeReq.Code != "" || codeReq.File != nil {
		out = append(out, codeReq)
	}

	if file.IsImage() {
		out = append(out, AnalysisRequest{Kind: SubmissionImage, File: file})
	}
	return out
}
