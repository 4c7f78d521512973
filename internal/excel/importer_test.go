package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/reviewtool/internal/apperr"
	"github.com/example/reviewtool/pkg/models"
)

type fakeCreator struct {
	created []models.LearningItem
}

func (f *fakeCreator) CreateItem(ctx context.Context, subject, title, content string) (*models.LearningItem, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, apperr.Validationf("subject is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Validationf("title is required")
	}
	item := models.LearningItem{Subject: subject, Title: title, Content: content}
	f.created = append(f.created, item)
	return &item, nil
}

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name, cell))
		}
	}
	path := filepath.Join(t.TempDir(), "items.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportItems_Excel(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"Subject", "Title", "Content"},
		{"Math", "Algebra", "x+1"},
		{"History", "WW2", "1939", "extra", "cells"},
		{"", "missing subject", "c"},
	})

	svc := &fakeCreator{}
	result, err := ImportItems(context.Background(), svc, DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Row 4")

	require.Len(t, svc.created, 2)
	assert.Equal(t, "Algebra", svc.created[0].Title)
	assert.Equal(t, "1939 extra cells", svc.created[1].Content, "trailing columns fold into content")
}

func TestImportItems_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	data := "subject,title,content\nMath,Algebra,x+1\nMath,,no title\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	svc := &fakeCreator{}
	result, err := ImportItems(context.Background(), svc, DefaultImportConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportItems_MissingFile(t *testing.T) {
	svc := &fakeCreator{}

	_, err := ImportItems(context.Background(), svc, DefaultImportConfig(filepath.Join(t.TempDir(), "nope.xlsx")))
	assert.Error(t, err)

	_, err = ImportItems(context.Background(), svc, DefaultImportConfig(filepath.Join(t.TempDir(), "nope.csv")))
	assert.Error(t, err)
}
