package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`[{"category":"a"}]`, `[{"category":"a"}]`},
		{"```json\n[1,2]\n```", "[1,2]"},
		{"```\n[1,2]\n```", "[1,2]"},
		{"  \n```json\n[]\n```  ", "[]"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripFences(tc.in))
	}
}

func TestParseScores(t *testing.T) {
	results, err := ParseScores("```json\n[{\"category\": \"Família\", \"score\": 7.5}]\n```")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Família", results[0].Category)
	assert.Equal(t, 7.5, results[0].Score)
}

func TestParseScores_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty text":       "",
		"not json":         "desculpe, não consegui analisar",
		"empty array":      "[]",
		"missing category": `[{"score": 5}]`,
		"score too high":   `[{"category": "a", "score": 11}]`,
		"negative score":   `[{"category": "a", "score": -1}]`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScores(text)
			assert.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestAnalyzeWheel_NotConfigured(t *testing.T) {
	c := NewClient("", "", "some-model", internal.NopLogger{})
	assert.False(t, c.Enabled())
	_, err := c.AnalyzeWheel(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnalyzeWheel_ExtractsScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		assert.NotEmpty(t, req.Contents[0].Parts[0].Text)
		assert.Equal(t, "image/jpeg", req.Contents[0].Parts[1].InlineData.MimeType)

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]string{{
						"text": "```json\n[{\"category\": \"Saúde & Fitness\", \"score\": 6}]\n```",
					}},
				},
			}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "test-model", internal.NopLogger{})
	results, err := c.AnalyzeWheel(context.Background(), []byte("fake image bytes"), "image/jpeg")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Saúde & Fitness", results[0].Category)
	assert.Equal(t, 6.0, results[0].Score)
}

func TestAnalyzeWheel_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "test-model", internal.NopLogger{})
	_, err := c.AnalyzeWheel(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestAnalyzeWheel_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "test-model", internal.NopLogger{})
	_, err := c.AnalyzeWheel(context.Background(), []byte("img"), "image/png")
	assert.Error(t, err)
}
