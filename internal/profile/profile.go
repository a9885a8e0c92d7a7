package profile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/promptq/promptq/internal/config"
)

var ErrUnknownProfile = errors.New("unknown profile")

const (
	// DefaultProfilesPath is relative to the user's home directory.
	DefaultProfilesPath = ".promptq/profiles.yaml"
	EnvProfilesPath     = "PROMPTQ_PROFILES"
)

// Profile is one named preset of request parameters. Explicit flags
// always win over profile values.
type Profile struct {
	Model     string `yaml:"model"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	MaxTokens int    `yaml:"max_tokens,omitempty"`
}

// File is the on-disk shape of the profiles file.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadResult is the outcome of loading a profiles file.
type LoadResult struct {
	File     *File
	Path     string
	Absent   bool   // true if no profiles file was found (not an error)
	ErrorMsg string // non-empty if the file exists but is invalid
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the outcome of profiles validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Load reads the profiles file from the canonical location or $PROMPTQ_PROFILES.
// If the file is absent, it returns Absent=true (not an error).
// If the file exists but is invalid, it returns ErrorMsg.
func Load(overridePath string) *LoadResult {
	path := resolvePath(overridePath)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Absent: true, Path: path}
		}
		return &LoadResult{Path: path, ErrorMsg: fmt.Sprintf("failed to read profiles file: %v", err)}
	}

	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return &LoadResult{Path: path, ErrorMsg: fmt.Sprintf("invalid YAML: %v", err)}
	}

	return &LoadResult{File: &f, Path: path}
}

// Validate checks a loaded profiles file for correctness.
// Returns a ValidationResult with all errors found.
func Validate(f *File) *ValidationResult {
	if f == nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "profiles", Message: "profiles file is nil"}},
		}
	}

	result := &ValidationResult{Valid: true}

	for _, name := range Names(f) {
		p := f.Profiles[name]

		if p.Model == "" {
			result.addError(fmt.Sprintf("profiles.%s.model", name), "required")
		}

		if p.MaxTokens != 0 && p.MaxTokens < 1 {
			result.addError(fmt.Sprintf("profiles.%s.max_tokens", name), "must be >= 1")
		}

		if p.Endpoint != "" {
			if err := config.ValidateEndpoint(p.Endpoint); err != nil {
				result.addError(fmt.Sprintf("profiles.%s.endpoint", name), err.Error())
			}
		}
	}

	return result
}

// Resolve returns the named profile from a loaded file.
func Resolve(f *File, name string) (*Profile, error) {
	if f == nil || f.Profiles == nil {
		return nil, fmt.Errorf("%w %q: no profiles defined", ErrUnknownProfile, name)
	}
	p, ok := f.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownProfile, name, Names(f))
	}
	return &p, nil
}

// Names returns the profile names in sorted order.
func Names(f *File) []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resolvePath(overridePath string) string {
	if overridePath != "" {
		return overridePath
	}
	if env := os.Getenv(EnvProfilesPath); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfilesPath
	}
	return filepath.Join(home, DefaultProfilesPath)
}
