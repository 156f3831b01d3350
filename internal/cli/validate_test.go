package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDeviceYAML = `manufacturer: Fujitsu
supportedModels:
  - AR-RAH2E
protocol: broadlink
commands:
  power: ` + sampleBroadlinkCode + "\n"

func writeDeviceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateSingleFile(t *testing.T) {
	path := writeDeviceFile(t, t.TempDir(), "fujitsu.yaml", validDeviceYAML)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "✓ 1 device file(s) valid")
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDeviceFile(t, dir, "a.yaml", validDeviceYAML)
	writeDeviceFile(t, dir, "b.yaml", "manufacturer: Acme\nprotocol: tuya\ncommands:\n  power: "+necTuyaCode+"\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "✓ 2 device file(s) valid")
}

func TestValidateReportsEveryBadFile(t *testing.T) {
	dir := t.TempDir()
	writeDeviceFile(t, dir, "good.yaml", validDeviceYAML)
	writeDeviceFile(t, dir, "bad1.yaml", "manufacturer: Acme\nprotocol: zigbee\ncommands:\n  power: x\n")
	writeDeviceFile(t, dir, "bad2.yaml", "protocol: tuya\ncommands:\n  power: x\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "bad1.yaml")
	assert.Contains(t, out, "bad2.yaml")
}

func TestValidateErrorsJSON(t *testing.T) {
	dir := t.TempDir()
	writeDeviceFile(t, dir, "bad.yaml", "protocol: tuya\ncommands:\n  power: x\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidDevice, resp.Error.Code)
}

func TestValidateMissingPath(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/devices"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error ["+ErrCodeNotFound+"]")
}
