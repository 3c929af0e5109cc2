package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cad-translator/internal/session"
)

const (
	envPrefix  = "CADTR"
	configName = "cad-translator"
)

// flagKeys maps CLI flags to config keys.
var flagKeys = map[string]string{
	"strict":          "strict_constraints",
	"expose-internal": "expose_internal_geometry",
	"document-name":   "document_name",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// loadConfig resolves the session config from, in rising precedence,
// defaults, the config file, CADTR_* environment variables and flags.
func loadConfig(v *viper.Viper, cfgFile string) (session.Config, error) {
	defaults := session.DefaultConfig()
	v.SetDefault("strict_constraints", defaults.StrictConstraints)
	v.SetDefault("expose_internal_geometry", defaults.ExposeInternalGeometry)
	v.SetDefault("document_name", defaults.DocumentName)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return session.Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg session.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return session.Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	// An empty flag must not blank the default name.
	if cfg.DocumentName == "" {
		cfg.DocumentName = defaults.DocumentName
	}

	return cfg, nil
}
