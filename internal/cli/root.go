// Package cli implements the irutils command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/protocol"
	"github.com/MicaelJarniac/ir-utils/internal/protocol/broadlink"
	"github.com/MicaelJarniac/ir-utils/internal/protocol/tuya"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the irutils CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "irutils",
		Short: "ir-utils - infrared remote code toolbox",
		Long: `Decode, encode and convert infrared remote-control codes between
vendor formats (Tuya IR blasters, Broadlink remotes), and maintain a local
code library imported from device definition files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewLibCommand(opts))

	return cmd
}

// newRegistry wires the built-in protocols. The broadlink codec gets the
// diagnostic logger so ignored trailing bytes surface on stderr.
func newRegistry(formatter *OutputFormatter) *protocol.Registry {
	bl := broadlink.New()
	bl.Log = formatter.DiagnosticLogger()
	return protocol.NewRegistry(tuya.New(), bl)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
