package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/Station-Manager/logplugin"
	"github.com/spf13/cobra"
)

func newEmitCommand(h *host) *cobra.Command {
	var (
		level   string
		appName string
		subApp  string
	)

	cmd := &cobra.Command{
		Use:   "emit <message...>",
		Short: "Emit a single record",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logplugin.ParseLevel(level)
			if err != nil {
				return err
			}

			rec := logplugin.Record{Level: lvl, Message: strings.Join(args, " ")}
			if cmd.Flags().Changed("as") {
				rec = rec.WithAppName(appName)
			}
			if cmd.Flags().Changed("sub") {
				rec = rec.WithSubApp(subApp)
			}

			if err := h.configure(); err != nil {
				return err
			}
			defer h.svc.Shutdown()

			return h.svc.Emit(rec)
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "info", "record level: debug, info, warn or error")
	cmd.Flags().StringVar(&appName, "as", "", "override the configured app name")
	cmd.Flags().StringVar(&subApp, "sub", "", "sub-component name appended to the app name")

	return cmd
}

// maxRecordSize caps one stdin line.
const maxRecordSize = 1024 * 1024

func newPipeCommand(h *host) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Emit JSON records read from stdin, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := h.configure(); err != nil {
				return err
			}
			defer h.svc.Shutdown()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

			var total, failed int
			for lineNo := 1; scanner.Scan(); lineNo++ {
				raw := strings.TrimSpace(scanner.Text())
				if raw == "" {
					continue
				}
				total++

				if err := emitRaw(h.svc, []byte(raw)); err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "line %d: %v\n", lineNo, err)
					if !keepGoing {
						return fmt.Errorf("line %d: %w", lineNo, err)
					}
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d records failed", failed, total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", true, "continue after a record fails")

	return cmd
}

func emitRaw(svc logplugin.Emitter, raw []byte) error {
	rec, err := logplugin.ParseRecord(raw)
	if err != nil {
		return err
	}
	return svc.Emit(rec)
}
