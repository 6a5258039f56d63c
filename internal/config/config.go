package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kickstart-labs/kickstart/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyPackageManager     = "package_manager"
	KeyTemplate           = "template"
	KeyVerbose            = "verbose"
	KeyVerifySyntax       = "verify_syntax"
	KeyGitignoreSeparator = "gitignore_separator"
	KeyGitInit            = "git_init"
	KeyInstall            = "install"
)

// Keys returns every known configuration key.
func Keys() []string {
	return []string{
		KeyPackageManager,
		KeyTemplate,
		KeyVerbose,
		KeyVerifySyntax,
		KeyGitignoreSeparator,
		KeyGitInit,
		KeyInstall,
	}
}

// IsKnownKey reports whether key is a known configuration key.
func IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Settings is a typed snapshot of the effective configuration.
type Settings struct {
	PackageManager     string
	Template           string
	Verbose            bool
	VerifySyntax       bool
	GitignoreSeparator string
	GitInit            bool
	Install            bool
}

// Dir returns the path to the config directory (~/.kickstart/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.kickstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyPackageManager, "pnpm")
	viper.SetDefault(KeyTemplate, "web-vue")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyVerifySyntax, true)
	viper.SetDefault(KeyGitignoreSeparator, "Added by CLI")
	viper.SetDefault(KeyGitInit, true)
	viper.SetDefault(KeyInstall, false)
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the effective settings after Load.
func Current() Settings {
	return Settings{
		PackageManager:     viper.GetString(KeyPackageManager),
		Template:           viper.GetString(KeyTemplate),
		Verbose:            viper.GetBool(KeyVerbose),
		VerifySyntax:       viper.GetBool(KeyVerifySyntax),
		GitignoreSeparator: viper.GetString(KeyGitignoreSeparator),
		GitInit:            viper.GetBool(KeyGitInit),
		Install:            viper.GetBool(KeyInstall),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
