package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/hindicards/internal/config"
	"github.com/example/hindicards/internal/vocabulary"
)

func TestLoadSeedReadsActiveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Vocabulary")
	require.NoError(t, err)
	f.SetActiveSheet(index)
	require.NoError(t, f.SetSheetRow("Vocabulary", "A1", &[]interface{}{"Hindi", "English"}))
	require.NoError(t, f.SetSheetRow("Vocabulary", "A2", &[]interface{}{"दूध", "milk"}))

	path := filepath.Join(t.TempDir(), "seed.xlsx")
	require.NoError(t, f.SaveAs(path))

	seed := config.DefaultConfig().Seed
	seed.File = path
	cards := loadSeed(seed)
	require.Len(t, cards, 1)
	assert.Equal(t, "दूध", cards[0].Front)
	assert.Equal(t, "milk", cards[0].Back)
}

func TestLoadSeedFallsBackToBuiltIn(t *testing.T) {
	assert.Equal(t, vocabulary.Preloaded(), loadSeed(config.SeedConfig{}))
	assert.Equal(t, vocabulary.Preloaded(), loadSeed(config.SeedConfig{File: filepath.Join(t.TempDir(), "missing.xlsx")}))
}
