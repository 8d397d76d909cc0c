package record

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File represents the root of a YAML definition file.
type File struct {
	// Version of the definition schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Records is the list of annotated record definitions.
	Records []Definition `yaml:"records"`
}

// Load reads and parses a YAML definition file from the given path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing definition file %s: %w", path, err)
	}

	f.setFile(path)

	return f, nil
}

// Parse parses YAML data into a File, applies defaults and validates it.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = "1"
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// validate checks structural requirements that the YAML decoder cannot.
func (f *File) validate() error {
	for i := range f.Records {
		def := &f.Records[i]
		if def.Name == "" {
			return fmt.Errorf("record #%d (line %d): missing name", i+1, def.Span.Line)
		}

		seen := make(map[string]struct{}, len(def.Fields))

		for j := range def.Fields {
			fld := &def.Fields[j]
			if fld.Name == "" {
				return fmt.Errorf("record %s: field #%d (line %d): missing name",
					def.Name, j+1, fld.Span.Line)
			}

			if fld.Type == "" {
				return fmt.Errorf("record %s: field %s (line %d): missing type",
					def.Name, fld.Name, fld.Span.Line)
			}

			if _, dup := seen[fld.Name]; dup {
				return fmt.Errorf("record %s: duplicate field %s (line %d)",
					def.Name, fld.Name, fld.Span.Line)
			}

			seen[fld.Name] = struct{}{}
		}
	}

	return nil
}

// setFile stamps the source path on every span in the file. The YAML
// decoder only knows line and column.
func (f *File) setFile(path string) {
	for i := range f.Records {
		def := &f.Records[i]
		def.Span.File = path

		for j := range def.Annotations {
			def.Annotations[j].Span.File = path
		}

		for j := range def.Fields {
			fld := &def.Fields[j]
			fld.Span.File = path

			for k := range fld.Annotations {
				fld.Annotations[k].Span.File = path
			}
		}
	}
}
