package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sample() Diagnostics {
	var d Diagnostics
	d.AddInfo("no_materializer", "no zero-argument constructor", "shop.Item", "")
	d.AddWarning("duplicate_key", "key NAME is already claimed", "shop.Item", "Base.Name")
	d.AddError("not_a_struct", "Status is a basic type", "shop.Status", "")

	return d
}

func TestDiagnostics_All(t *testing.T) {
	d := sample()

	var codes []string
	for _, diag := range d.All() {
		codes = append(codes, diag.Code)
	}

	assert.Equal(t, []string{"not_a_struct", "duplicate_key", "no_materializer"}, codes)
	assert.True(t, d.HasErrors())
}

func TestDiagnostics_Merge(t *testing.T) {
	var d Diagnostics
	d.Merge(sample())
	d.Merge(sample())

	assert.Len(t, d.Errors, 2)
	assert.Len(t, d.Warnings, 2)
	assert.Len(t, d.Infos, 2)
}

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Err())

	d = sample()
	err := d.Err()
	require.Error(t, err)
	assert.Equal(t, "[shop.Status]: [not_a_struct] Status is a basic type", err.Error())

	var diag Diagnostic
	require.True(t, errors.As(err, &diag))
	assert.Equal(t, SeverityError, diag.Severity)
}

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		diag Diagnostic
		want string
	}{
		{Diagnostic{Code: "c", Message: "m", Type: "T", Field: "F"}, "[T] F: [c] m"},
		{Diagnostic{Message: "m", Field: "F"}, "F: m"},
		{Diagnostic{Message: "m"}, "m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.diag.Error())
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "unknown", Severity(9).String())
	assert.Equal(t, zapcore.ErrorLevel, SeverityError.Level())
	assert.Equal(t, zapcore.InfoLevel, SeverityInfo.Level())
}

func TestDiagnostics_Log(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := sample()

	d.Log(zap.New(core))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "Status is a basic type", entries[0].Message)
	assert.Equal(t, map[string]any{"code": "duplicate_key", "type": "shop.Item", "field": "Base.Name"},
		entries[1].ContextMap())
}
