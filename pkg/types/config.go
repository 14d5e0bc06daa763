package types

import "errors"

// Config locates the catalog file and declares the schema version the
// caller expects.
type Config struct {
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
	Version  int    `json:"version,omitempty" yaml:"version,omitempty"`
}

// Config validation errors.
var (
	ErrInvalidVersion  = errors.New("schema version must be positive")
	ErrInvalidFileName = errors.New("file name must not contain a path separator")
)

// GetFileName returns FileName, defaulting to DatabaseName.
func (c Config) GetFileName() string {
	if c.FileName == "" {
		return DatabaseName
	}
	return c.FileName
}

// GetVersion returns Version, defaulting to SchemaVersion.
func (c Config) GetVersion() int {
	if c.Version == 0 {
		return SchemaVersion
	}
	return c.Version
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty DataDir means the working directory.
func (c Config) Validate() error {
	if c.Version < 0 {
		return ErrInvalidVersion
	}
	for _, r := range c.FileName {
		if r == '/' || r == '\\' {
			return ErrInvalidFileName
		}
	}
	return nil
}
