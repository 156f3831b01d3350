package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runImportCommand(t *testing.T, dbPath, devicePath string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewImportCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, devicePath})
	err := cmd.Execute()
	return buf.String(), err
}

func TestImportDeviceFile(t *testing.T) {
	dir := t.TempDir()
	devicePath := writeDeviceFile(t, dir, "fujitsu.yaml", validDeviceYAML)
	dbPath := filepath.Join(dir, "library.db")

	out, err := runImportCommand(t, dbPath, devicePath)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Imported Fujitsu: 1 new code(s), 1 total")
}

func TestImportIdempotent(t *testing.T) {
	dir := t.TempDir()
	devicePath := writeDeviceFile(t, dir, "fujitsu.yaml", validDeviceYAML)
	dbPath := filepath.Join(dir, "library.db")

	_, err := runImportCommand(t, dbPath, devicePath)
	require.NoError(t, err)

	out, err := runImportCommand(t, dbPath, devicePath)
	require.NoError(t, err)
	assert.Contains(t, out, "0 new code(s), 1 total")
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	devicePath := writeDeviceFile(t, dir, "fujitsu.yaml", validDeviceYAML)
	dbPath := filepath.Join(dir, "library.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewImportCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, devicePath})
	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["device_id"])
	assert.Equal(t, float64(1), data["codes_added"])
	assert.Equal(t, float64(1), data["codes_total"])
}

func TestImportRejectsInvalidDeviceFile(t *testing.T) {
	dir := t.TempDir()
	devicePath := writeDeviceFile(t, dir, "bad.yaml", "protocol: tuya\ncommands:\n  power: x\n")
	dbPath := filepath.Join(dir, "library.db")

	out, err := runImportCommand(t, dbPath, devicePath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeInvalidDevice+"]")
}

func TestImportRejectsUndecodableCode(t *testing.T) {
	dir := t.TempDir()
	devicePath := writeDeviceFile(t, dir, "bad.yaml",
		"manufacturer: Acme\nprotocol: tuya\ncommands:\n  power: '!!!'\n  other: "+necTuyaCode+"\n")
	dbPath := filepath.Join(dir, "library.db")

	out, err := runImportCommand(t, dbPath, devicePath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeInvalidCode+"]")
	assert.Contains(t, out, `command "power"`)

	// the decodable command must not have been stored either
	listBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	list := NewLibCommand(rootOpts)
	list.SetOut(listBuf)
	list.SetArgs([]string{"list", "--db", dbPath})
	require.NoError(t, list.Execute())
	assert.Contains(t, listBuf.String(), "library is empty")
}
