package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatterJSONEnvelope(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.JSON(map[string]int{"count": 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error(ErrCodeInvalidCode, "bad code", nil))
	assert.Equal(t, "Error [E002]: bad code\n", buf.String())
}

func TestFormatterErrorTextVerboseDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	require.NoError(t, f.Error(ErrCodeInvalidCode, "bad code", "offset 12"))
	assert.Contains(t, buf.String(), "Details: offset 12")
}

func TestFormatterErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error(ErrCodeDatabase, "locked", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDatabase, resp.Error.Code)
	assert.Equal(t, "locked", resp.Error.Message)
}

func TestDiagnosticLoggerWritesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}

	logger := f.DiagnosticLogger()
	logger.Warn().Msg("heads up")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "heads up")
}

func TestDiagnosticLoggerLevels(t *testing.T) {
	quiet := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: quiet, ErrWriter: quiet}
	quietLogger := f.DiagnosticLogger()
	quietLogger.Debug().Msg("hidden")
	assert.Empty(t, quiet.String())

	chatty := &bytes.Buffer{}
	v := &OutputFormatter{Format: "text", Writer: chatty, ErrWriter: chatty, Verbose: true}
	chattyLogger := v.DiagnosticLogger()
	chattyLogger.Debug().Msg("visible")
	assert.Contains(t, chatty.String(), "visible")
}
