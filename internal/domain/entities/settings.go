package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DiffProviderGoGit reads status and diffs through the go-git library.
	DiffProviderGoGit = "gogit"
	// DiffProviderCLI shells out to the git binary.
	DiffProviderCLI = "cli"

	settingsFileMode = 0o644
)

// Settings is the top-level configuration for bumpchain.
type Settings struct {
	VersioningMode   string          `yaml:"versioning_mode"`
	MinimizeChains   bool            `yaml:"minimize_chains"`
	DiffProvider     string          `yaml:"diff_provider"`
	ExcludedProjects []string        `yaml:"excluded_projects"`
	UpdateChangelog  bool            `yaml:"update_changelog"`
	AnalyzableFiles  AnalyzableFiles `yaml:"analyzable_files"`

	path     string // file the settings were read from; empty for defaults
	explicit bool   // path came from --config and must not be replaced
}

// configFileNames are tried in order in every searched directory.
var configFileNames = []string{
	".bumpchain.yaml",
	".bumpchain.yml",
	"bumpchain.yaml",
	"bumpchain.yml",
}

// AnalyzableFiles lists the files whose diffs are parsed instead of being
// counted as changes of unknown impact.
type AnalyzableFiles struct {
	Extensions []string `yaml:"extensions"`
	FileNames  []string `yaml:"file_names"`
}

// DefaultAnalyzableFiles covers MSBuild manifests, imports, lock files and assembly metadata.
func DefaultAnalyzableFiles() AnalyzableFiles {
	return AnalyzableFiles{
		Extensions: []string{".csproj", ".props"},
		FileNames:  []string{"packages.config", "AssemblyInfo.cs"},
	}
}

// Matches reports whether a file path is analyzable.
func (a AnalyzableFiles) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range a.Extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}

	name := filepath.Base(filepath.FromSlash(path))
	for _, candidate := range a.FileNames {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() *Settings {
	return &Settings{
		VersioningMode:  FourPart.String(),
		DiffProvider:    DiffProviderGoGit,
		AnalyzableFiles: DefaultAnalyzableFiles(),
	}
}

// NewSettings reads and validates a configuration file.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	settings.path = path

	if len(settings.AnalyzableFiles.Extensions) == 0 && len(settings.AnalyzableFiles.FileNames) == 0 {
		settings.AnalyzableFiles = DefaultAnalyzableFiles()
	}
	if settings.DiffProvider == "" {
		settings.DiffProvider = DiffProviderGoGit
	}

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return settings, nil
}

// LoadSettings reads the given file, or the auto-detected one, or falls back
// to defaults when no file exists anywhere.
func LoadSettings(explicitPath string) (*Settings, error) {
	if explicitPath != "" {
		settings, err := NewSettings(explicitPath)
		if err != nil {
			return nil, err
		}
		settings.explicit = true
		return settings, nil
	}

	path, err := FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return DefaultSettings(), nil
	}

	logger.Infof("Using config file: %s", path)
	return NewSettings(path)
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	for _, loc := range locations {
		if p, ok := findConfigIn(loc); ok {
			return p, nil
		}
	}

	return "", errors.New("config file not found in default locations")
}

// FindRepositoryConfigFile looks for a configuration file directly in repoRoot.
func FindRepositoryConfigFile(repoRoot string) (string, bool) {
	return findConfigIn(repoRoot)
}

func findConfigIn(dir string) (string, bool) {
	for _, name := range configFileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// AdoptRepositoryConfig switches to the configuration file at the repository
// root when one exists. It takes precedence over files found relative to the
// working directory or the home directory. Settings given with --config are
// left alone.
func (s *Settings) AdoptRepositoryConfig(repoRoot string) error {
	if s.explicit {
		return nil
	}
	path, ok := FindRepositoryConfigFile(repoRoot)
	if !ok || samePath(path, s.path) {
		return nil
	}

	loaded, err := NewSettings(path)
	if err != nil {
		return err
	}
	logger.Infof("Using repository config file: %s", path)
	*s = *loaded
	return nil
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// Validate checks enumerated values.
func (s *Settings) Validate() error {
	if _, err := ParseVersioningMode(s.VersioningMode); err != nil {
		return fmt.Errorf("versioning_mode: %w", err)
	}
	switch s.DiffProvider {
	case DiffProviderGoGit, DiffProviderCLI:
	default:
		return fmt.Errorf("diff_provider: %w: %q", ErrUnknownDiffProvider, s.DiffProvider)
	}
	return nil
}

// Mode returns the parsed versioning mode; invalid values were rejected by Validate.
func (s *Settings) Mode() VersioningMode {
	mode, _ := ParseVersioningMode(s.VersioningMode)
	return mode
}

// Path is the file the settings came from, or empty for defaults.
func (s *Settings) Path() string {
	return s.path
}

// Explicit reports whether the settings file was named with --config.
func (s *Settings) Explicit() bool {
	return s.explicit
}

// SetPath changes where Save writes.
func (s *Settings) SetPath(path string) {
	s.path = path
}

// IsExcluded reports whether a project name is in the exclusion list.
func (s *Settings) IsExcluded(name string) bool {
	key := ProjectKey(name)
	return slices.ContainsFunc(s.ExcludedProjects, func(candidate string) bool {
		return ProjectKey(candidate) == key
	})
}

// SetExcluded adds or removes a project from the exclusion list and reports
// whether the list changed.
func (s *Settings) SetExcluded(name string, excluded bool) bool {
	if excluded == s.IsExcluded(name) {
		return false
	}
	if excluded {
		s.ExcludedProjects = append(s.ExcludedProjects, name)
		slices.Sort(s.ExcludedProjects)
		return true
	}

	key := ProjectKey(name)
	s.ExcludedProjects = slices.DeleteFunc(s.ExcludedProjects, func(candidate string) bool {
		return ProjectKey(candidate) == key
	})
	return true
}

// Save writes the settings back to Path.
func (s *Settings) Save() error {
	if s.path == "" {
		return errors.New("settings have no file path")
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if writeErr := os.WriteFile(s.path, data, settingsFileMode); writeErr != nil {
		return fmt.Errorf("failed to write config file %q: %w", s.path, writeErr)
	}
	return nil
}
