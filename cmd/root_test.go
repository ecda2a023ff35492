package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/tarifa/internal/config"
	"github.com/theirongolddev/tarifa/internal/model"
	"github.com/theirongolddev/tarifa/internal/state"
	"github.com/theirongolddev/tarifa/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedWithDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.Currency = "EUR"

	got := seedWithDefaults(cfg, map[string]string{state.KeyMonthlyTarget: "2000"})
	assert.Equal(t, map[string]string{
		state.KeyCurrency:      "EUR",
		state.KeyMonthlyTarget: "2000",
	}, got)

	got = seedWithDefaults(cfg, map[string]string{state.KeyCurrency: "UYU"})
	assert.Equal(t, "UYU", got[state.KeyCurrency], "seed beats the configured currency")
}

func TestOpenStore(t *testing.T) {
	cfg := config.DefaultConfig()

	cfg.Store.Backend = config.BackendMemory
	kv, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.Memory{}, kv)
	require.NoError(t, kv.Close())

	cfg.Store.Backend = config.BackendSQLite
	cfg.Store.Path = t.TempDir() + "/state.db"
	kv, err = openStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLite{}, kv)
	require.NoError(t, kv.Close())

	cfg.Store.Backend = "etcd"
	_, err = openStore(context.Background(), cfg)
	assert.ErrorContains(t, err, `unknown store backend "etcd"`)
}

func TestResolveID(t *testing.T) {
	log := []model.LoggedProject{
		{ID: "a1b2c3d4-0000", Name: "Logo"},
		{ID: "a1b2ffff-0000", Name: "Poster"},
		{ID: "9f00", Name: "Menu"},
	}

	p, err := resolveID(log, "9f00")
	require.NoError(t, err)
	assert.Equal(t, "Menu", p.Name)

	p, err = resolveID(log, "a1b2c")
	require.NoError(t, err)
	assert.Equal(t, "Logo", p.Name)

	_, err = resolveID(log, "a1b2")
	assert.ErrorContains(t, err, "matches 2 projects")

	_, err = resolveID(log, "zz")
	assert.True(t, errors.Is(err, state.ErrNotFound))
}

func TestShortIDAndMask(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", shortID("a1b2c3d4-e5f6"))
	assert.Equal(t, "id-1", shortID("id-1"))

	assert.Equal(t, "****", maskSecret("hunter2"))
	assert.Equal(t, "abcd...wxyz", maskSecret("abcdefghijklmnopqrstuvwxyz"))
}

func TestSummaryRowsShowShareBars(t *testing.T) {
	rows := summaryRows("USD", 30, model.LogRollup{Projects: 4, PctAbove: 75, PctBelow: 25})

	byLabel := map[string]string{}
	for _, r := range rows {
		if len(r) == 2 {
			byLabel[r[0]] = r[1]
		}
	}
	above := byLabel["Above minimum"]
	assert.Contains(t, above, "75%")
	assert.Equal(t, 15, strings.Count(above, "█"))
	assert.Contains(t, byLabel["Below minimum"], "25%")
}
