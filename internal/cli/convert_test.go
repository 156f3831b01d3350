package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBroadlinkToTuya(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--from", "broadlink", "--to", "tuya", sampleBroadlinkCode})

	require.NoError(t, cmd.Execute())

	g := goldie.New(t)
	g.Assert(t, "convert_broadlink_to_tuya", buf.Bytes())
}

func TestConvertJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--from", "broadlink", "--to", "tuya", sampleBroadlinkCode})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "broadlink", data["from"])
	assert.Equal(t, "tuya", data["to"])
	assert.Equal(t, sampleTuyaCode, data["code"])
}

func TestConvertTuyaToBroadlinkAndBack(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}

	toBL := &bytes.Buffer{}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(toBL)
	cmd.SetArgs([]string{"--from", "tuya", "--to", "broadlink", sampleTuyaCode})
	require.NoError(t, cmd.Execute())

	// The signal came from a Broadlink code, so its durations are
	// tick-aligned and the conversion goes back without loss.
	backBuf := &bytes.Buffer{}
	back := NewConvertCommand(rootOpts)
	back.SetOut(backBuf)
	back.SetArgs([]string{"--from", "broadlink", "--to", "tuya",
		toBL.String()[:len(toBL.String())-1]})
	require.NoError(t, back.Execute())
	assert.Equal(t, sampleTuyaCode+"\n", backBuf.String())
}

func TestConvertUnknownSourceFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--from", "zigbee", "--to", "tuya", sampleBroadlinkCode})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error ["+ErrCodeUnknownProtocol+"]")
}

func TestConvertInvalidSourceCode(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--from", "broadlink", "--to", "tuya", "AAAA"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error ["+ErrCodeInvalidCode+"]")
}

func TestConvertMissingFlags(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewConvertCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{sampleBroadlinkCode})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
