package device

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Load reads and validates a single device file. YAML and JSON are both
// accepted (JSON parses as YAML).
func Load(path string) (*Device, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read device file: %w", err)
	}
	return Parse(path, raw)
}

// Parse validates raw device file contents. The path is used only for
// error reporting.
func Parse(path string, raw []byte) (*Device, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &FileError{Path: path, Message: fmt.Sprintf("parse: %v", err)}
	}
	if doc == nil {
		return nil, &FileError{Path: path, Message: "empty document"}
	}

	if err := validateSchema(doc); err != nil {
		return nil, &FileError{Path: path, Message: err.Error()}
	}

	dev, err := fromDocument(doc)
	if err != nil {
		return nil, &FileError{Path: path, Message: err.Error()}
	}
	return dev, nil
}

// validateSchema unifies the parsed document with the embedded CUE schema.
// The schema is closed, so unknown fields are rejected here.
func validateSchema(doc map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Device"))
	if !def.Exists() {
		return fmt.Errorf("schema has no #Device definition")
	}

	unified := def.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// fromDocument builds a Device from a schema-valid document. Nested
// command groups are flattened as "group.name"; all names are
// NFC-normalized.
func fromDocument(doc map[string]any) (*Device, error) {
	dev := &Device{
		Manufacturer: normalize(doc["manufacturer"].(string)),
		Protocol:     doc["protocol"].(string),
		Commands:     make(map[string]string),
	}

	if models, ok := doc["supportedModels"].([]any); ok {
		for _, m := range models {
			dev.SupportedModels = append(dev.SupportedModels, normalize(m.(string)))
		}
	}

	// An absent or empty commands block passes the schema (pattern
	// constraints impose nothing), so it is rejected here.
	commands, _ := doc["commands"].(map[string]any)
	for name, value := range commands {
		switch v := value.(type) {
		case string:
			flat := normalize(name)
			if _, dup := dev.Commands[flat]; dup {
				return nil, fmt.Errorf("duplicate command after flattening: %s", flat)
			}
			dev.Commands[flat] = v
		case map[string]any:
			for sub, code := range v {
				flat := normalize(name + "." + sub)
				if _, dup := dev.Commands[flat]; dup {
					return nil, fmt.Errorf("duplicate command after flattening: %s", flat)
				}
				dev.Commands[flat] = code.(string)
			}
		}
	}
	if len(dev.Commands) == 0 {
		return nil, fmt.Errorf("at least one command is required")
	}
	return dev, nil
}

// deviceExtensions lists recognized device file extensions.
var deviceExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// FindFiles returns the device files directly under dir, sorted.
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan device directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if deviceExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir loads every device file under dir, collecting all errors rather
// than stopping at the first bad file.
func LoadDir(dir string) ([]*Device, []error) {
	files, err := FindFiles(dir)
	if err != nil {
		return nil, []error{err}
	}
	if len(files) == 0 {
		return nil, []error{fmt.Errorf("no device files found in %s", dir)}
	}

	var (
		devices []*Device
		errs    []error
	)
	for _, file := range files {
		dev, err := Load(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		devices = append(devices, dev)
	}
	return devices, errs
}
