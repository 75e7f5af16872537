package suggestapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/httpclient"
)

func codeRequest() domain.AnalysisRequest {
	return domain.AnalysisRequest{Kind: domain.SubmissionCode, Code: "<img src=logo.png>"}
}

func TestAnalyze_DecodesSuggestions(t *testing.T) {
	var gotID, gotCode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(RequestIDHeader)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotCode = r.FormValue("code")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"suggestions":[{"suggestionTitle":"Alt text","suggestion":"Describe the logo."}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRequestIDs(func() string { return "req-1" }))

	resp, err := c.Analyze(context.Background(), codeRequest())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "req-1", gotID)
	assert.Equal(t, "<img src=logo.png>", gotCode)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, domain.Suggestion{Title: "Alt text", Suggestion: "Describe the logo."}, resp.Suggestions[0])
}

func TestAnalyze_CustomPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"items":[{"suggestionTitle":"T","suggestion":"S"}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithSuggestionsPath("$.result.items"))

	resp, err := c.Analyze(context.Background(), codeRequest())
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "T", resp.Suggestions[0].Title)
}

func TestAnalyze_NonOKYieldsEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Analyze(context.Background(), codeRequest())
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
}

func TestAnalyze_InvalidJSONIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway</html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Analyze(context.Background(), codeRequest())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindRemote))
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestAnalyze_TransportFailureIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	exec := httpclient.NewExecutor(httpclient.WithTimeout(20 * time.Millisecond))
	_, err := New(srv.URL, WithExecutor(exec)).Analyze(context.Background(), codeRequest())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindRemote))
}

func TestAnalyze_InvalidRequestNeverHitsNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	_, err := New(srv.URL).Analyze(context.Background(), domain.AnalysisRequest{Kind: domain.SubmissionCode})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Zero(t, hits)
}

func TestNewFromConfig(t *testing.T) {
	cfg := domain.DefaultConfig().API
	cfg.URL = "http://example.invalid/api"
	cfg.SuggestionsPath = "$.x"

	c := NewFromConfig(cfg, nil)
	assert.Equal(t, "http://example.invalid/api", c.endpoint)
	assert.Equal(t, "$.x", c.path)
	assert.NotNil(t, c.exec)
}
