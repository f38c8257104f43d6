package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContentFixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	jsDir := filepath.Join(root, "01-javascript")
	cssDir := filepath.Join(root, "02-css")
	require.NoError(t, os.MkdirAll(jsDir, 0o755))
	require.NoError(t, os.MkdirAll(cssDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(jsDir, "closures.md"),
		[]byte("# Closures\n\nBody.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cssDir, "flexbox.md"),
		[]byte("# Flexbox\n\nBody.\n"), 0o644))

	return root
}

func TestListSections(t *testing.T) {
	t.Parallel()

	handler := NewContentHandler(writeContentFixture(t), nil)

	rr := httptest.NewRecorder()
	handler.ListSections(rr, httptest.NewRequest(http.MethodGet, "/content", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var sections []ContentSectionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sections))
	require.Len(t, sections, 2)
	assert.Equal(t, "Closures", sections[0].Title)
	assert.Equal(t, "02-css", sections[1].Topic)
}

func TestListTopicSections(t *testing.T) {
	t.Parallel()

	handler := NewContentHandler(writeContentFixture(t), nil)

	get := func(topic string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/content/"+topic, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("topic", topic)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rr := httptest.NewRecorder()
		handler.ListTopicSections(rr, req)
		return rr
	}

	rr := get("01-javascript")
	require.Equal(t, http.StatusOK, rr.Code)
	var sections []ContentSectionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sections))
	require.Len(t, sections, 1)
	assert.Equal(t, "closures.md", sections[0].FileName)

	assert.Equal(t, http.StatusNotFound, get("99-unknown").Code)
}
