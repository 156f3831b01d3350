package cli

import (
	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/fastlz"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	From  string
	To    string
	Level int
}

// ConvertResult is the convert command's JSON payload.
type ConvertResult struct {
	From string `json:"from"`
	To   string `json:"to"`
	Code string `json:"code"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <code>",
		Short: "Convert a code between vendor formats",
		Long: `Convert an IR code from one vendor format to another through the raw
signal form. The classic use is turning Broadlink codes from SmartIR
device files into codes for Tuya IR blasters.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "source code format")
	cmd.Flags().StringVar(&opts.To, "to", "", "target code format")
	cmd.Flags().IntVarP(&opts.Level, "level", "l", int(fastlz.DefaultLevel), "tuya compression level (0-3)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(opts *ConvertOptions, code string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	from, err := newRegistry(formatter).Lookup(opts.From)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}
	to, err := lookupWithLevel(formatter, opts.To, opts.Level)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}

	sig, err := from.Decode(code)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidCode, err.Error())
	}
	logger := formatter.DiagnosticLogger()
	logger.Debug().Ints64("micros", sig.MicrosSlice()).Msg("decoded raw signal")

	out, err := to.Encode(sig)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidSignal, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.JSON(ConvertResult{From: from.Name(), To: to.Name(), Code: out})
	}
	formatter.Textf("%s\n", out)
	return nil
}
