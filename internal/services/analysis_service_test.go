package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabula/internal/errors"
	"tabula/internal/operations"
)

func newTestService() *AnalysisService {
	return NewAnalysisService(operations.NewManager(nil, nil, nil), nil)
}

const ageCSV = "age\n10\n12\n11\n13\n1000\n"

func TestAnalyzeUploadStoresResult(t *testing.T) {
	svc := newTestService()

	stored, err := svc.AnalyzeUpload(context.Background(), strings.NewReader(ageCSV), "ages.csv")
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "ages.csv", stored.Filename)
	assert.Equal(t, 5, stored.Analysis.Summary.TotalRows)
	assert.Equal(t, []float64{1000}, stored.Analysis.Summary.Outliers["age"])

	got, err := svc.Get(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Same(t, stored, got)
}

func TestAnalyzeUploadParseFailure(t *testing.T) {
	svc := newTestService()

	stored, err := svc.AnalyzeUpload(context.Background(), strings.NewReader(""), "empty.csv")
	require.Error(t, err)
	assert.Nil(t, stored)
	assert.True(t, errors.IsUnsupportedInput(err))
}

func TestGetUnknownID(t *testing.T) {
	svc := newTestService()

	stored, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Nil(t, stored)
	assert.True(t, errors.IsNotFound(err))
}

func TestListNewestFirstWithoutPayload(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.AnalyzeUpload(ctx, strings.NewReader(ageCSV), "first.csv")
	require.NoError(t, err)
	second, err := svc.AnalyzeUpload(ctx, strings.NewReader(ageCSV), "second.csv")
	require.NoError(t, err)

	items := svc.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Nil(t, items[0].Analysis)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	stored, err := svc.AnalyzeUpload(ctx, strings.NewReader(ageCSV), "ages.csv")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, stored.ID))
	_, err = svc.Get(ctx, stored.ID)
	assert.True(t, errors.IsNotFound(err))

	assert.True(t, errors.IsNotFound(svc.Delete(ctx, stored.ID)))
}

func TestAnalyzeFiles(t *testing.T) {
	svc := newTestService()
	dir := t.TempDir()

	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, "data"+string(rune('a'+i))+".csv")
		require.NoError(t, os.WriteFile(paths[i], []byte(ageCSV), 0644))
	}

	results, err := svc.AnalyzeFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, result := range results {
		assert.Equal(t, paths[i], result.Path)
		require.NotNil(t, result.Stored)
		assert.Equal(t, 5, result.Stored.Analysis.Summary.TotalRows)
	}
	assert.Len(t, svc.List(context.Background()), 3)
}

func TestAnalyzeFilesFailureStopsBatch(t *testing.T) {
	svc := newTestService()
	dir := t.TempDir()

	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte(ageCSV), 0644))
	missing := filepath.Join(dir, "missing.csv")

	results, err := svc.AnalyzeFiles(context.Background(), []string{good, missing}, 1)
	require.Error(t, err)
	assert.Nil(t, results)
}
