package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NEC-style header followed by three bits, as a Tuya code.
const (
	necTuyaCode      = "BSgjlBEwAkABA5oGMAI="
	necTuyaCodeLvl0  = "DSgjlBEwAjACMAKaBjAC"
	necMicrosText    = "9000 4500 560 560 560 1690 560"
	necDurationCount = 7
)

// A real Broadlink remote code (SmartIR-style) and its Tuya conversion.
const (
	sampleBroadlinkCode = "JgBmAG40DwwPDA8mEAsPJw8MDwwPDA8nDyYPDA8MDwwPJw8mEAsQCw8MDwwPDA8MDwwPDA8LEAsPDA8MDwwPJw8MDwwPCw8MDwwPDA8MDycPDA8LEAsQCw8nDwwPDA8MDwwPCxALDwANBQAA"
	sampleTuyaCode      = "BxYNMAbJAW0BgAMEhQTnAU8gBwGkBOABE0AXQA8AheAME0AvgDPgAy/gAwPgCx/gA1/gCzvAH4A74A2T4ANb"
)

func TestDecodeTuyaText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--protocol", "tuya", necTuyaCode})

	require.NoError(t, cmd.Execute())

	g := goldie.New(t)
	g.Assert(t, "decode_tuya_nec", buf.Bytes())
}

func TestDecodeTuyaJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--protocol", "tuya", necTuyaCode})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "tuya", data["protocol"])
	assert.Equal(t, float64(necDurationCount), data["count"])
	micros, ok := data["micros"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(9000), micros[0])
	assert.Equal(t, float64(4500), micros[1])
}

func TestDecodeBroadlink(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--protocol", "broadlink", sampleBroadlinkCode})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "3350 1584 457 365")
}

func TestDecodeUnknownProtocol(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--protocol", "zigbee", necTuyaCode})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error ["+ErrCodeUnknownProtocol+"]")
}

func TestDecodeInvalidCode(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--protocol", "tuya", "!!!not-base64!!!"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error ["+ErrCodeInvalidCode+"]")
}

func TestDecodeInvalidCodeJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--protocol", "tuya", "!!!not-base64!!!"})

	err := cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidCode, resp.Error.Code)
}

func TestDecodeMissingProtocolFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDecodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{necTuyaCode})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
