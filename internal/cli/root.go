// Package cli is the logctl command tree: a command-line host for the log
// plugin that loads configuration through viper and drives a Service.
package cli

import (
	"fmt"
	"strings"

	"github.com/Station-Manager/logplugin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// host is the state shared by the subcommands of one command tree.
type host struct {
	svc logplugin.Emitter
	v   *viper.Viper
	cfg logplugin.Config
}

// Execute runs logctl against a Service writing to stdout and stderr.
func Execute() error {
	return NewRootCommand(logplugin.NewService()).Execute()
}

// NewRootCommand builds the logctl command tree around svc.
func NewRootCommand(svc logplugin.Emitter) *cobra.Command {
	h := &host{svc: svc, v: viper.New()}

	root := &cobra.Command{
		Use:   "logctl",
		Short: "Emit records through the log plugin",
		Long: `logctl loads a log plugin configuration from a config file, LOGPLUGIN_*
environment variables and flags, then emits records with it.

Examples:
  # Emit one warning from the db sub-component
  logctl --app billing emit --level warn --sub db "slow query"

  # Emit JSON records read from stdin, one per line
  tail -f events.jsonl | logctl -c logplugin.yaml pipe

  # Show the configuration logctl would use
  logctl --app billing --min-level debug config`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := h.loadConfig()
			if err != nil {
				return err
			}
			h.cfg = cfg
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is ./logplugin.yaml or $HOME/.config/logplugin/logplugin.yaml)")
	flags.String("app", "", "application name")
	flags.String("log-file", "", "log file path (default \"default.log\")")
	flags.String("min-level", "", "minimum level: debug, info, warn or error")
	flags.Bool("console", true, "write to stdout")
	flags.Bool("file", true, "write to the log file")
	flags.Bool("colored-file", true, "keep color codes in the log file")
	flags.Bool("rotate", true, "rotate the log file by size")
	flags.Uint64("max-size", logplugin.DefaultMaxFileSizeBytes, "rotation threshold in bytes")
	flags.Uint32("max-count", logplugin.DefaultMaxFileCount, "number of archives to keep")

	for flag, key := range flagKeys {
		_ = h.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newEmitCommand(h), newPipeCommand(h), newConfigCommand(h))

	return root
}

// configure applies the loaded configuration to the Service. Callers defer
// h.svc.Shutdown once it succeeds.
func (h *host) configure() error {
	if err := h.svc.Configure(h.cfg); err != nil {
		return fmt.Errorf("configure log plugin: %w", err)
	}
	return nil
}

func (h *host) configFile() string {
	return strings.TrimSpace(h.v.GetString("config"))
}
