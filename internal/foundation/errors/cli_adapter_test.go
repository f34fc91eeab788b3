package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("paginate_by must be positive").Build(), expected: 2},
		{name: "not found", err: NotFoundError("homepage missing").Build(), expected: 3},
		{name: "config", err: ConfigError("bad yaml").Build(), expected: 7},
		{name: "filesystem", err: FileSystemError("mkdir").Build(), expected: 11},
		{name: "template", err: TemplateError("parse").Build(), expected: 11},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "unclassified", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	err := ConfigError("configuration file not found").WithContext("path", "site.yaml").Build()
	assert.Equal(t, "Error: configuration file not found (site.yaml)", quiet.FormatError(err))
	assert.Equal(t, "Error: [config:fatal] configuration file not found", verbose.FormatError(err))

	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError("x").Build()))
	assert.Equal(t, "Error: plain", quiet.FormatError(errors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &out

	code := adapter.HandleError(ConfigError("broken").Build())
	assert.Equal(t, 7, code)
	assert.Contains(t, out.String(), "Error: broken")
	assert.Contains(t, logs.String(), "category=config")

	assert.Equal(t, 0, adapter.HandleError(nil))
}
