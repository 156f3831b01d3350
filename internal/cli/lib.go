package cli

import (
	"errors"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/store"
)

// LibOptions holds flags shared by the lib subcommands.
type LibOptions struct {
	*RootOptions
	DB           string
	Manufacturer string
	Model        string
}

// NewLibCommand creates the lib command group for querying the code
// library.
func NewLibCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LibOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lib",
		Short: "Query the local code library",
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", "irutils.db", "library database path")

	cmd.AddCommand(newLibListCommand(opts))
	cmd.AddCommand(newLibCodesCommand(opts))
	cmd.AddCommand(newLibGetCommand(opts))

	return cmd
}

func newLibListCommand(opts *LibOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List devices in the library",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			db, err := store.Open(opts.DB)
			if err != nil {
				return fail(formatter, ExitCommandError, ErrCodeDatabase, err.Error())
			}
			defer db.Close()

			devices, err := db.ListDevices(cmd.Context())
			if err != nil {
				return fail(formatter, ExitFailure, ErrCodeDatabase, err.Error())
			}

			if formatter.Format == "json" {
				return formatter.JSON(devices)
			}
			if len(devices) == 0 {
				formatter.Textf("library is empty\n")
				return nil
			}
			for _, dev := range devices {
				formatter.Textf("%s\t%s\t%s\n", dev.Manufacturer, dev.Model, dev.Protocol)
			}
			return nil
		},
	}
}

func newLibCodesCommand(opts *LibOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "codes",
		Short:         "List a device's codes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			db, err := store.Open(opts.DB)
			if err != nil {
				return fail(formatter, ExitCommandError, ErrCodeDatabase, err.Error())
			}
			defer db.Close()

			dev, err := db.FindDevice(cmd.Context(), opts.Manufacturer, opts.Model)
			if err != nil {
				return libReadError(formatter, err)
			}
			codes, err := db.ListCodes(cmd.Context(), dev.ID)
			if err != nil {
				return fail(formatter, ExitFailure, ErrCodeDatabase, err.Error())
			}

			if formatter.Format == "json" {
				return formatter.JSON(codes)
			}
			for _, code := range codes {
				formatter.Textf("%s\t%s\n", code.Name, code.Protocol)
			}
			return nil
		},
	}

	addDeviceFlags(cmd, opts)
	return cmd
}

func newLibGetCommand(opts *LibOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "get <command-name>",
		Short:         "Get one code from the library",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

			db, err := store.Open(opts.DB)
			if err != nil {
				return fail(formatter, ExitCommandError, ErrCodeDatabase, err.Error())
			}
			defer db.Close()

			dev, err := db.FindDevice(cmd.Context(), opts.Manufacturer, opts.Model)
			if err != nil {
				return libReadError(formatter, err)
			}
			code, err := db.GetCode(cmd.Context(), dev.ID, args[0])
			if err != nil {
				return libReadError(formatter, err)
			}

			if output != "" {
				if err := renameio.WriteFile(output, []byte(code.Code+"\n"), 0o644); err != nil {
					return fail(formatter, ExitFailure, ErrCodeWriteFailed, fmt.Sprintf("writing output: %v", err))
				}
			}

			if formatter.Format == "json" {
				return formatter.JSON(code)
			}
			if output != "" {
				formatter.Textf("Wrote %s code to %s\n", code.Protocol, output)
				return nil
			}
			formatter.Textf("%s\n", code.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the code to a file")
	addDeviceFlags(cmd, opts)
	return cmd
}

func addDeviceFlags(cmd *cobra.Command, opts *LibOptions) {
	cmd.Flags().StringVar(&opts.Manufacturer, "manufacturer", "", "device manufacturer")
	cmd.Flags().StringVar(&opts.Model, "model", "", "device model")
	_ = cmd.MarkFlagRequired("manufacturer")
}

// libReadError maps store lookup failures onto CLI error codes.
func libReadError(formatter *OutputFormatter, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fail(formatter, ExitFailure, ErrCodeNotFound, err.Error())
	}
	return fail(formatter, ExitFailure, ErrCodeDatabase, err.Error())
}
