package device

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Device is a validated remote-control definition.
type Device struct {
	Manufacturer    string   `json:"manufacturer"`
	SupportedModels []string `json:"supported_models,omitempty"`
	Protocol        string   `json:"protocol"`
	// Commands maps command names to code strings. Nested command groups
	// from the source file are flattened as "group.name".
	Commands map[string]string `json:"commands"`
}

// CommandNames returns the command names, sorted.
func (d *Device) CommandNames() []string {
	names := make([]string, 0, len(d.Commands))
	for name := range d.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileError reports a rejected device file.
type FileError struct {
	Path    string
	Message string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// normalize applies NFC so names compare and hash the same regardless of
// how the source file encoded them.
func normalize(s string) string {
	return norm.NFC.String(s)
}
