package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MicaelJarniac/ir-utils/internal/device"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the validate command's JSON payload.
type ValidateResult struct {
	Files   int      `json:"files"`
	Devices []string `json:"devices"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file-or-dir>",
		Short: "Validate device definition files",
		Long: `Validate device definition files (YAML or JSON) against the device
schema. All files are checked; every violation is reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	devices, errs := loadDevices(path)
	if len(errs) > 0 {
		if os.IsNotExist(firstCause(errs)) {
			return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("%s not found", path))
		}
		return outputValidationErrors(formatter, errs)
	}

	names := make([]string, len(devices))
	for i, dev := range devices {
		names[i] = dev.Manufacturer
	}

	if formatter.Format == "json" {
		return formatter.JSON(ValidateResult{Files: len(devices), Devices: names})
	}
	formatter.Textf("✓ %d device file(s) valid\n", len(devices))
	return nil
}

// loadDevices loads a single file or every device file in a directory.
func loadDevices(path string) ([]*device.Device, []error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, []error{err}
	}
	if info.IsDir() {
		return device.LoadDir(path)
	}
	dev, err := device.Load(path)
	if err != nil {
		return nil, []error{err}
	}
	return []*device.Device{dev}, nil
}

func outputValidationErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			cliErrors[i] = CLIError{Code: ErrCodeInvalidDevice, Message: err.Error()}
		}
		_ = formatter.Error(ErrCodeInvalidDevice, cliErrors[0].Message, cliErrors)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	formatter.Textf("✗ Validation failed\n\n")
	for _, err := range errs {
		formatter.Textf("  %s: %s\n", ErrCodeInvalidDevice, err.Error())
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// firstCause unwraps the first error for sentinel checks.
func firstCause(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
