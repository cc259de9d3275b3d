package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// DefaultKeepCount is the number of newest SDKs kept per platform.
	DefaultKeepCount = 1

	ModeDryRun = "dry-run"
	ModeApply  = "apply"
)

// Config is the validated runtime configuration. Invalid configuration is
// fatal at startup, before any discovery or deletion happens.
type Config struct {
	// KeepCount is the retention count N for SDK pruning.
	KeepCount int `mapstructure:"keep_count" validate:"gte=0"`

	// Mode is the operating mode; destructive only on explicit opt-in.
	Mode string `mapstructure:"mode" validate:"oneof=dry-run apply"`

	// DeveloperRoot overrides toolchain root resolution. Empty means
	// resolve via DEVELOPER_DIR / xcode-select.
	DeveloperRoot string `mapstructure:"developer_root"`

	// AuditLog is the append-only audit log destination.
	AuditLog string `mapstructure:"audit_log" validate:"required"`

	// ProjectRoots are directories scanned by `mm purge`.
	ProjectRoots []string `mapstructure:"project_roots"`
}

// Dir returns the macmole configuration directory (~/.macmole).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".macmole"
	}
	return filepath.Join(home, ".macmole")
}

// Load reads configuration from ~/.macmole/config.yaml (optional), MACMOLE_*
// environment variables and built-in defaults, then validates it.
func Load() (*Config, error) {
	return LoadFrom(Dir())
}

// LoadFrom is Load with an explicit config directory, for tests.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("keep_count", DefaultKeepCount)
	v.SetDefault("mode", ModeDryRun)
	// AutomaticEnv only surfaces keys viper already knows about, so even
	// default-less keys need an empty default for env overrides to apply.
	v.SetDefault("developer_root", "")
	v.SetDefault("audit_log", filepath.Join(dir, "audit.jsonl"))
	v.SetDefault("project_roots", defaultProjectRoots())

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("MACMOLE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine — defaults and env apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks a Config against its constraints. Called again after
// command-line flags have been applied on top of the loaded values.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			switch f.Field() {
			case "KeepCount":
				return fmt.Errorf("invalid configuration: keep count must be a non-negative integer")
			case "Mode":
				return fmt.Errorf("invalid configuration: mode must be %q or %q", ModeDryRun, ModeApply)
			}
			return fmt.Errorf("invalid configuration: field %s failed %s", f.Field(), f.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// defaultProjectRoots are the usual places source checkouts live.
func defaultProjectRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, "Developer"),
		filepath.Join(home, "Projects"),
		filepath.Join(home, "src"),
	}
}
