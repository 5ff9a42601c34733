package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options is the immutable scan configuration. It is built once (from flags,
// environment, or a config file) and passed into pattern-set construction;
// nothing mutates it after that.
type Options struct {
	Mode            string   `yaml:"mode"`
	Verbose         bool     `yaml:"verbose"`
	HighOnly        bool     `yaml:"high_only"`
	AllowFile       string   `yaml:"allow_file"`
	Directory       string   `yaml:"directory"`
	ScanGitignored  bool     `yaml:"scan_gitignored"`
	CheckGitHistory bool     `yaml:"check_git_history"`
	Threads         int      `yaml:"threads"`
	Notify          bool     `yaml:"notify"`
	Extensions      []string `yaml:"extensions"`
	ConfigFileGlobs []string `yaml:"config_file_globs"`
	ExcludeDirs     []string `yaml:"exclude_dirs"`
}

// Default returns the baseline scan options.
func Default() Options {
	return Options{
		Mode:      "loose",
		AllowFile: ".gitleaks-acceptable.txt",
		Directory: ".",
		Threads:   8,
		Extensions: []string{
			"*.env", "*.env.*", ".env", ".env.*", "*.py", "*.json",
			"*.yaml", "*.yml", "*.ts*", "*.*js*", "*.sh*.*", "*.conf", "*rc",
			"*.ini", "Dockerfile*", "docker-compose*", "*.properties", "*.txt",
			"*.config", "*.cfg", "*.xml", "*.tf", "*.tfvars", "*.pem", "*.key",
		},
		ConfigFileGlobs: []string{
			".env", "*.env", "*.env.*", "*.ini", "*.conf", "*.cfg",
			"*.properties", "*.tfvars", "*.yaml", "*.yml", "config.*",
		},
		ExcludeDirs: []string{
			"**/node_modules/**", "**/.git/**", "**/venv/**",
			"**/__pycache__/**", "**/*openapi*", "*sample*",
		},
	}
}

// Load reads options from a YAML file, layered over the defaults.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file: %w", err)
	}
	return opts, nil
}
