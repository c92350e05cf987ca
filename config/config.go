package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration is the top-level server configuration, resolved from file,
// environment, and defaults via viper.
type Configuration struct {
	// ExternalURL is the scheme-less host clients use to reach this server.
	// It is embedded in rendered creatives and marketplace responses.
	ExternalURL string `mapstructure:"external_url"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	AdminPort   int    `mapstructure:"admin_port"`
	EnableGzip  bool   `mapstructure:"enable_gzip"`

	Verification Verification `mapstructure:"verification"`
}

// Verification controls the trusted-server signature check on incoming
// auction requests.
type Verification struct {
	Enabled bool `mapstructure:"enabled"`
	// JWKSFile points at a JSON key set with base64url-encoded Ed25519 keys.
	JWKSFile string `mapstructure:"jwks_file"`
}

func (cfg *Configuration) validate() []error {
	var errs []error
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("cfg.port must be in (0, 65535]. Got %d", cfg.Port))
	}
	if cfg.AdminPort <= 0 || cfg.AdminPort > 65535 {
		errs = append(errs, fmt.Errorf("cfg.admin_port must be in (0, 65535]. Got %d", cfg.AdminPort))
	}
	if cfg.Port == cfg.AdminPort {
		errs = append(errs, fmt.Errorf("cfg.port and cfg.admin_port must differ. Both are %d", cfg.Port))
	}
	if cfg.ExternalURL == "" {
		errs = append(errs, errors.New("cfg.external_url must not be empty"))
	}
	if cfg.Verification.Enabled && cfg.Verification.JWKSFile == "" {
		errs = append(errs, errors.New("cfg.verification.jwks_file is required when verification is enabled"))
	}
	return errs
}

// New resolves a Configuration from a viper instance prepared by SetupViper.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}
	if errs := c.validate(); len(errs) > 0 {
		return &c, errortrace(errs)
	}
	return &c, nil
}

func errortrace(errs []error) error {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return errors.New("invalid configuration: " + strings.Join(messages, "; "))
}

// SetupViper registers defaults, the optional config file, and the
// MOCKTIONEER_* environment overrides.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	v.SetDefault("external_url", "localhost:8000")
	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("admin_port", 6060)
	v.SetDefault("enable_gzip", false)
	v.SetDefault("verification.enabled", false)
	v.SetDefault("verification.jwks_file", "")

	v.SetEnvPrefix("MOCKTIONEER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.ReadInConfig()
}
