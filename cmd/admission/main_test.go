package main

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/generic"
	"github.com/warp/admission-benefits/report"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestRun_WritesBundleAndLogs(t *testing.T) {
	// GIVEN: A 5x2 admission with a VT rate and an output path
	// WHEN: Running the CLI
	// THEN: The zip is written and the bundle is logged through zap

	logger, logs := observedLogger()
	out := filepath.Join(t.TempDir(), "ana.zip")

	err := run(logger, "2024-01-10", "5x2", "", out, rateFlags{"vt": 10}, report.Admission{Name: "Ana Souza"})
	require.NoError(t, err)

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	assert.Len(t, zr.File, 3)

	written := logs.FilterMessage("admission bundle written").All()
	require.Len(t, written, 1)
	fields := written[0].ContextMap()
	assert.Equal(t, out, fields["path"])
	assert.EqualValues(t, 16, fields["day_count"])
	assert.Equal(t, 1, logs.FilterMessage("benefit plan loaded").Len())
}

func TestRun_Errors(t *testing.T) {
	logger, _ := observedLogger()

	err := run(logger, "2024-02-30", "5x2", "", "", rateFlags{"vt": 10}, report.Admission{})
	assert.Error(t, err)

	err = run(logger, "2024-01-10", "7x7", "", "", rateFlags{"vt": 10}, report.Admission{})
	assert.ErrorIs(t, err, generic.ErrUnknownPattern)

	err = run(logger, "2024-01-10", "5x2", "", "", rateFlags{}, report.Admission{})
	assert.ErrorIs(t, err, generic.ErrInvalidRate)
}

func TestRateFlags(t *testing.T) {
	rates := rateFlags{}
	require.NoError(t, rates.Set("VT=12,50"))
	assert.Equal(t, 12.5, rates[benefit.Kind("vt")])

	assert.Error(t, rates.Set("vt"))
	assert.Error(t, rates.Set("vt=abc"))
}
