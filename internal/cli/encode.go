package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/fastlz"
	"github.com/MicaelJarniac/ir-utils/internal/protocol"
	"github.com/MicaelJarniac/ir-utils/internal/protocol/tuya"
	"github.com/MicaelJarniac/ir-utils/internal/signal"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Protocol string
	Level    int
	Input    string // file with whitespace-separated µs values
	Output   string // write the code to a file instead of stdout
}

// EncodeResult is the encode command's JSON payload.
type EncodeResult struct {
	Protocol string `json:"protocol"`
	Count    int    `json:"count"`
	Code     string `json:"code"`
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode [µs...]",
		Short: "Encode raw timings as a vendor code",
		Long: `Encode raw microsecond mark/space durations as a vendor IR code.
Durations are given as arguments or read from --input (whitespace
separated).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Protocol, "protocol", "p", "", "code format (tuya|broadlink)")
	cmd.Flags().IntVarP(&opts.Level, "level", "l", int(fastlz.DefaultLevel), "tuya compression level (0-3)")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "read durations from file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the code to a file")
	_ = cmd.MarkFlagRequired("protocol")

	return cmd
}

func runEncode(opts *EncodeOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	proto, err := lookupWithLevel(formatter, opts.Protocol, opts.Level)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}

	fields := args
	if opts.Input != "" {
		raw, err := os.ReadFile(opts.Input)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("reading input: %v", err))
		}
		fields = append(fields, strings.Fields(string(raw))...)
	}
	if len(fields) == 0 {
		return fail(formatter, ExitCommandError, ErrCodeGeneric, "no durations given")
	}

	sig, err := parseMicros(fields)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidSignal, err.Error())
	}

	code, err := proto.Encode(sig)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidSignal, err.Error())
	}

	if opts.Output != "" {
		if err := renameio.WriteFile(opts.Output, []byte(code+"\n"), 0o644); err != nil {
			return fail(formatter, ExitFailure, ErrCodeWriteFailed, fmt.Sprintf("writing output: %v", err))
		}
	}

	if formatter.Format == "json" {
		return formatter.JSON(EncodeResult{Protocol: proto.Name(), Count: len(sig), Code: code})
	}
	if opts.Output != "" {
		formatter.Textf("Wrote %s code to %s\n", proto.Name(), opts.Output)
		return nil
	}
	formatter.Textf("%s\n", code)
	return nil
}

// lookupWithLevel resolves a protocol and applies the compression level to
// formats that have one.
func lookupWithLevel(formatter *OutputFormatter, name string, level int) (protocol.Protocol, error) {
	if !fastlz.Level(level).Valid() {
		return nil, fmt.Errorf("invalid compression level %d: must be 0-3", level)
	}
	proto, err := newRegistry(formatter).Lookup(name)
	if err != nil {
		return nil, err
	}
	if tp, ok := proto.(*tuya.Protocol); ok {
		tp.Level = fastlz.Level(level)
	}
	return proto, nil
}

// parseMicros parses duration fields into a signal.
func parseMicros(fields []string) (signal.Signal, error) {
	us := make([]int64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseInt(strings.TrimSuffix(field, ","), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", field)
		}
		us[i] = v
	}
	sig := signal.FromMicros(us)
	if err := sig.Validate(); err != nil {
		var rangeErr *signal.RangeError
		if errors.As(err, &rangeErr) {
			return nil, rangeErr
		}
		return nil, err
	}
	return sig, nil
}
