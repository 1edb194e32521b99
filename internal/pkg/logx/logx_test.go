package logx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGlobalLogger_FileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termchat.log")

	InitGlobalLogger(Options{FilePath: path, FileOnly: true})
	Info("hello from test", "conn_id", "abc")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"conn_id":"abc"`)
}

func TestInitGlobalLogger_Levels(t *testing.T) {
	InitGlobalLogger(Options{Development: true})
	assert.Equal(t, zerolog.DebugLevel, Logger().GetLevel())

	InitGlobalLogger(Options{})
	assert.Equal(t, zerolog.InfoLevel, Logger().GetLevel())

	InitGlobalLogger(Options{Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, Logger().GetLevel())

	InitGlobalLogger(Options{Level: "not-a-level"})
	assert.Equal(t, zerolog.InfoLevel, Logger().GetLevel())
}

func TestCheckFields(t *testing.T) {
	assert.Nil(t, checkFields("Info", []any{"only-key"}))
	assert.Equal(t, []any{"k", 1}, checkFields("Info", []any{"k", 1}))
}
