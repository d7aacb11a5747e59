package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// MavenRepository is one repository entry under a smithy-build.json
// `maven.repositories` array.
type MavenRepository struct {
	URL      string `json:"url"`
	HTTPCredentials *string `json:"httpCredentials,omitempty"`
}

// MavenConfig is the `maven` section of smithy-build.json: coordinates to
// resolve plus the repositories to resolve them from. The core never
// resolves these itself (see DependencyResolver); it only parses and
// forwards them.
type MavenConfig struct {
	Dependencies []string          `json:"dependencies"`
	Repositories []MavenRepository `json:"repositories"`
}

// Dependency is one `{name, path}` entry from .smithy-project.json naming a
// pre-downloaded jar.
type Dependency struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Config is the merged result of smithy-build.json and .smithy-project.json
// for one project root.
type Config struct {
	Sources         []string
	Imports         []string
	Maven           *MavenConfig
	Dependencies    []Dependency
	OutputDirectory string
	Projections     json.RawMessage
	Plugins         json.RawMessage

	FoundBuildFile   bool
	FoundProjectFile bool

	// Errors accumulates malformed-JSON messages. A non-empty Errors does
	// not by itself make the project unusable: whichever of the two files
	// parsed successfully is still merged in.
	Errors []string
}

// smithyBuildFile mirrors the subset of smithy-build.json this core reads.
type smithyBuildFile struct {
	Sources         []string        `json:"sources"`
	Imports         []string        `json:"imports"`
	Maven           *MavenConfig    `json:"maven"`
	OutputDirectory string          `json:"outputDirectory"`
	Projections     json.RawMessage `json:"projections"`
	Plugins         json.RawMessage `json:"plugins"`
}

// smithyProjectFile mirrors the subset of .smithy-project.json this core
// reads. Its `sources` augment, rather than replace, smithy-build.json's.
type smithyProjectFile struct {
	Sources      []string     `json:"sources"`
	Dependencies []Dependency `json:"dependencies"`
}

// LoadConfig reads smithy-build.json and .smithy-project.json from root and
// merges them. Missing files are not an error; malformed JSON is recorded
// on the returned Config's Errors rather than returned as a Go error,
// matching spec §4.4: "a project whose config files all fail to parse
// yields a broken project" rather than failing the load outright.
func LoadConfig(root string) *Config {
	cfg := &Config{}
	var errs error

	buildPath := filepath.Join(root, "smithy-build.json")
	if data, err := os.ReadFile(buildPath); err == nil {
		cfg.FoundBuildFile = true
		var sb smithyBuildFile
		if uerr := json.Unmarshal(data, &sb); uerr != nil {
			errs = multierr.Append(errs, fmt.Errorf("smithy-build.json: %w", uerr))
		} else {
			cfg.Sources = append(cfg.Sources, sb.Sources...)
			cfg.Imports = append(cfg.Imports, sb.Imports...)
			cfg.Maven = sb.Maven
			cfg.OutputDirectory = sb.OutputDirectory
			cfg.Projections = sb.Projections
			cfg.Plugins = sb.Plugins
		}
	} else if !os.IsNotExist(err) {
		errs = multierr.Append(errs, fmt.Errorf("reading smithy-build.json: %w", err))
	}

	projPath := filepath.Join(root, ".smithy-project.json")
	if data, err := os.ReadFile(projPath); err == nil {
		cfg.FoundProjectFile = true
		var sp smithyProjectFile
		if uerr := json.Unmarshal(data, &sp); uerr != nil {
			errs = multierr.Append(errs, fmt.Errorf(".smithy-project.json: %w", uerr))
		} else {
			cfg.Sources = append(cfg.Sources, sp.Sources...)
			cfg.Dependencies = append(cfg.Dependencies, sp.Dependencies...)
		}
	} else if !os.IsNotExist(err) {
		errs = multierr.Append(errs, fmt.Errorf("reading .smithy-project.json: %w", err))
	}

	for _, e := range multierr.Errors(errs) {
		cfg.Errors = append(cfg.Errors, e.Error())
	}
	return cfg
}

// HasAnyConfig reports whether either build-config file was found, the
// signal Project.Load uses to decide between Normal and Empty.
func (c *Config) HasAnyConfig() bool {
	return c != nil && (c.FoundBuildFile || c.FoundProjectFile)
}
