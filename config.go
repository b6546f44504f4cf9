package logplugin

import (
	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
)

// Config is the active logging configuration. A Service never mutates a
// Config it has been given; Configure stores a copy.
type Config struct {
	AppName           string `json:"app_name" validate:"required"`
	LogFile           string `json:"log_file" validate:"required"`
	LogToFile         bool   `json:"log_to_file"`
	LogToConsole      bool   `json:"log_to_console"`
	MinimumLevel      Level  `json:"minimum_level" validate:"loglevel"`
	MaxFileSizeBytes  uint64 `json:"max_file_size_bytes"`
	MaxFileCount      uint32 `json:"max_file_count"`
	RotationEnabled   bool   `json:"rotation_enabled"`
	FileOutputColored bool   `json:"file_output_colored"`

	// DiagnosticsFile, when set, receives the facility's own error output
	// in addition to ErrorOutput, rolled by size.
	DiagnosticsFile       string `json:"diagnostics_file,omitempty"`
	DiagnosticsMaxSizeMB  int    `json:"diagnostics_max_size_mb" validate:"gte=0"`
	DiagnosticsMaxBackups int    `json:"diagnostics_max_backups" validate:"gte=0"`
}

// DefaultConfig returns the configuration a payload carrying only app_name
// resolves to.
func DefaultConfig(appName string) Config {
	return Config{
		AppName:               appName,
		LogFile:               DefaultLogFile,
		LogToFile:             true,
		LogToConsole:          true,
		MinimumLevel:          LevelInfo,
		MaxFileSizeBytes:      DefaultMaxFileSizeBytes,
		MaxFileCount:          DefaultMaxFileCount,
		RotationEnabled:       true,
		FileOutputColored:     true,
		DiagnosticsMaxSizeMB:  defaultDiagnosticsMaxSizeMB,
		DiagnosticsMaxBackups: defaultDiagnosticsMaxBackups,
	}
}

// resetConfig is the state before the first Configure and after Shutdown:
// both outputs disabled, so Emit succeeds without producing anything.
func resetConfig() Config {
	return Config{
		MinimumLevel:     LevelInfo,
		MaxFileSizeBytes: DefaultMaxFileSizeBytes,
		MaxFileCount:     DefaultMaxFileCount,
		RotationEnabled:  true,
	}
}

// configPayload mirrors the wire format. Pointers distinguish an absent key
// from a zero value. The legacy keys are the names used by earlier hosts.
type configPayload struct {
	AppName               *string `json:"app_name"`
	LogFile               *string `json:"log_file"`
	LogToFile             *bool   `json:"log_to_file"`
	LogToConsole          *bool   `json:"log_to_console"`
	MinimumLevel          *Level  `json:"minimum_level"`
	MaxFileSizeBytes      *uint64 `json:"max_file_size_bytes"`
	MaxFileCount          *uint32 `json:"max_file_count"`
	RotationEnabled       *bool   `json:"rotation_enabled"`
	FileOutputColored     *bool   `json:"file_output_colored"`
	DiagnosticsFile       *string `json:"diagnostics_file"`
	DiagnosticsMaxSizeMB  *int    `json:"diagnostics_max_size_mb"`
	DiagnosticsMaxBackups *int    `json:"diagnostics_max_backups"`

	LegacyMinimumLevel      *Level  `json:"minimum_log_level"`
	LegacyMaxFileSizeBytes  *uint64 `json:"max_log_file_size"`
	LegacyMaxFileCount      *uint32 `json:"max_log_file_count"`
	LegacyRotationEnabled   *bool   `json:"enable_log_rotation"`
	LegacyFileOutputColored *bool   `json:"log_to_file_colored"`
}

// ParseConfig decodes a JSON configuration payload, fills in defaults for
// absent keys and validates the result.
func ParseConfig(payload []byte) (Config, error) {
	const op errors.Op = "logplugin.ParseConfig"

	var p configPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Config{}, errors.New(op).Err(err).Msg(errMsgConfigMalformed)
	}
	if p.AppName == nil {
		return Config{}, errors.New(op).Msg(errMsgAppNameMissing)
	}

	cfg := p.resolve()
	if err := validateConfig(&cfg); err != nil {
		return Config{}, errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	return cfg, nil
}

func (p *configPayload) resolve() Config {
	cfg := DefaultConfig(*p.AppName)

	setString(&cfg.LogFile, p.LogFile)
	setBool(&cfg.LogToFile, p.LogToFile)
	setBool(&cfg.LogToConsole, p.LogToConsole)
	setString(&cfg.DiagnosticsFile, p.DiagnosticsFile)
	if p.DiagnosticsMaxSizeMB != nil {
		cfg.DiagnosticsMaxSizeMB = *p.DiagnosticsMaxSizeMB
	}
	if p.DiagnosticsMaxBackups != nil {
		cfg.DiagnosticsMaxBackups = *p.DiagnosticsMaxBackups
	}

	// The canonical key wins when both are present.
	if lvl := firstNonNil(p.MinimumLevel, p.LegacyMinimumLevel); lvl != nil {
		cfg.MinimumLevel = *lvl
	}
	if size := firstNonNil(p.MaxFileSizeBytes, p.LegacyMaxFileSizeBytes); size != nil {
		cfg.MaxFileSizeBytes = *size
	}
	if count := firstNonNil(p.MaxFileCount, p.LegacyMaxFileCount); count != nil {
		cfg.MaxFileCount = *count
	}
	setBool(&cfg.RotationEnabled, firstNonNil(p.RotationEnabled, p.LegacyRotationEnabled))
	setBool(&cfg.FileOutputColored, firstNonNil(p.FileOutputColored, p.LegacyFileOutputColored))

	return cfg
}

func firstNonNil[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
