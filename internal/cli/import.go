package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/device"
	"github.com/MicaelJarniac/ir-utils/internal/signal"
	"github.com/MicaelJarniac/ir-utils/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	DB string
}

// ImportResult is the import command's JSON payload.
type ImportResult struct {
	DeviceID   string `json:"device_id"`
	CodesAdded int    `json:"codes_added"`
	CodesTotal int    `json:"codes_total"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <device-file>",
		Short: "Import a device file into the code library",
		Long: `Validate a device definition file, decode every command with the
file's code format, and store the codes in the library. Each code is
stored with its signal content hash, so the same signal imported under a
different format is detectable as a duplicate. Importing the same file
twice adds nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "irutils.db", "library database path")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.DiagnosticLogger()

	dev, err := device.Load(path)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeInvalidDevice, err.Error())
	}

	proto, err := newRegistry(formatter).Lookup(dev.Protocol)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}

	// Decode every command up front: a file with one broken code imports
	// nothing.
	codes := make([]store.Code, 0, len(dev.Commands))
	for _, name := range dev.CommandNames() {
		raw := dev.Commands[name]
		sig, err := proto.Decode(raw)
		if err != nil {
			return fail(formatter, ExitFailure, ErrCodeInvalidCode,
				fmt.Sprintf("command %q: %v", name, err))
		}
		hash, err := signal.Hash(sig)
		if err != nil {
			return fail(formatter, ExitFailure, ErrCodeInvalidSignal,
				fmt.Sprintf("command %q: %v", name, err))
		}
		logger.Debug().Str("command", name).Str("signal_hash", hash).Msg("decoded command")
		codes = append(codes, store.Code{
			Name:       name,
			Protocol:   proto.Name(),
			Code:       raw,
			SignalHash: hash,
		})
	}

	db, err := store.Open(opts.DB)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeDatabase, err.Error())
	}
	defer db.Close()

	model := ""
	if len(dev.SupportedModels) > 0 {
		model = dev.SupportedModels[0]
	}
	deviceID, added, err := db.ImportDevice(cmd.Context(), store.Device{
		Manufacturer: dev.Manufacturer,
		Model:        model,
		Protocol:     proto.Name(),
	}, codes)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeDatabase, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.JSON(ImportResult{DeviceID: deviceID, CodesAdded: added, CodesTotal: len(codes)})
	}
	formatter.Textf("✓ Imported %s: %d new code(s), %d total\n", dev.Manufacturer, added, len(codes))
	return nil
}
