package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Station-Manager/logplugin"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindUint
	kindInt
)

// configKeys are the payload keys logctl forwards, with the getter used to
// coerce env and flag strings into JSON types.
var configKeys = []struct {
	name string
	kind keyKind
}{
	{"app_name", kindString},
	{"log_file", kindString},
	{"log_to_file", kindBool},
	{"log_to_console", kindBool},
	{"minimum_level", kindString},
	{"max_file_size_bytes", kindUint},
	{"max_file_count", kindUint},
	{"rotation_enabled", kindBool},
	{"file_output_colored", kindBool},
	{"diagnostics_file", kindString},
	{"diagnostics_max_size_mb", kindInt},
	{"diagnostics_max_backups", kindInt},
}

var flagKeys = map[string]string{
	"config":       "config",
	"app":          "app_name",
	"log-file":     "log_file",
	"min-level":    "minimum_level",
	"console":      "log_to_console",
	"file":         "log_to_file",
	"colored-file": "file_output_colored",
	"rotate":       "rotation_enabled",
	"max-size":     "max_file_size_bytes",
	"max-count":    "max_file_count",
}

// loadConfig merges config file, environment and flags, then hands the result
// to logplugin.ParseConfig so defaults and validation match the C entry
// points exactly.
func (h *host) loadConfig() (logplugin.Config, error) {
	v := h.v

	if file := h.configFile(); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("logplugin")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/logplugin")
	}

	v.SetEnvPrefix("LOGPLUGIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range configKeys {
		_ = v.BindEnv(key.name)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if h.configFile() != "" || !errors.As(err, &notFound) {
			return logplugin.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	payload, err := json.Marshal(settings(v))
	if err != nil {
		return logplugin.Config{}, fmt.Errorf("encode config: %w", err)
	}

	cfg, err := logplugin.ParseConfig(payload)
	if err != nil {
		return logplugin.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// settings returns only the keys that were explicitly set somewhere, so that
// absent keys pick up the plugin defaults.
func settings(v *viper.Viper) map[string]any {
	out := make(map[string]any, len(configKeys))
	for _, key := range configKeys {
		if !v.IsSet(key.name) {
			continue
		}
		switch key.kind {
		case kindString:
			out[key.name] = v.GetString(key.name)
		case kindBool:
			out[key.name] = v.GetBool(key.name)
		case kindUint:
			out[key.name] = v.GetUint64(key.name)
		case kindInt:
			out[key.name] = v.GetInt(key.name)
		}
	}
	return out
}

func newConfigCommand(h *host) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(h.cfg, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
