// Package logplugin is a leveled, optionally colorized logging facility meant
// to be embedded in a host process as a plugin.
//
// Key features
//   - Three lifecycle entry points: Configure, Emit and Shutdown
//   - One immutable configuration snapshot per Emit call; Configure and
//     Shutdown swap it atomically
//   - Console output (decorated) and file output (decorated or plain)
//   - Size-based rotation into timestamped archives with count-based pruning
//   - A diagnostics channel on stderr (and optionally a rolling file) for the
//     facility's own failures, kept apart from the log output
//   - A JSON/int32 boundary (ConfigureJSON, EmitJSON, and the package-level
//     Configure/Emit/Shutdown) for hosts that speak the C ABI
//
// Typical usage
//
//	svc := logplugin.NewService()
//	cfg := logplugin.DefaultConfig("billing")
//	if err := svc.Configure(cfg); err != nil { panic(err) }
//	defer svc.Shutdown()
//
//	_ = svc.Emit(logplugin.Record{Level: logplugin.LevelWarn, Message: "slow query"}.WithSubApp("db"))
//
// Lines look like:
//
//	[2026-10-16T09:30:00.123456789Z] [WARN] billing -> db: slow query
//
// Archives are named <log_file>_<YYYY-MM-DD_HH-MM-SS>.log in UTC.
package logplugin
