package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/signal"
)

// DecodeOptions holds flags for the decode command.
type DecodeOptions struct {
	*RootOptions
	Protocol string
}

// DecodeResult is the decode command's JSON payload.
type DecodeResult struct {
	Protocol string  `json:"protocol"`
	Count    int     `json:"count"`
	Micros   []int64 `json:"micros"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decode <code>",
		Short: "Decode a vendor code into raw timings",
		Long: `Decode a vendor IR code string into its raw signal: microsecond
mark/space durations, first duration belonging to a mark.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Protocol, "protocol", "p", "", "code format (tuya|broadlink)")
	_ = cmd.MarkFlagRequired("protocol")

	return cmd
}

func runDecode(opts *DecodeOptions, code string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	proto, err := newRegistry(formatter).Lookup(opts.Protocol)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}

	sig, err := proto.Decode(code)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidCode, err.Error())
	}

	return outputSignal(formatter, proto.Name(), sig)
}

// outputSignal prints a raw signal as microsecond durations.
func outputSignal(formatter *OutputFormatter, protoName string, sig signal.Signal) error {
	micros := sig.MicrosSlice()
	if formatter.Format == "json" {
		return formatter.JSON(DecodeResult{Protocol: protoName, Count: len(micros), Micros: micros})
	}

	formatter.Textf("%s\n", formatMicros(micros))
	return nil
}

func formatMicros(micros []int64) string {
	parts := make([]string, len(micros))
	for i, us := range micros {
		parts[i] = fmt.Sprintf("%d", us)
	}
	return strings.Join(parts, " ")
}
