package logplugin

import "time"

const (
	emptyString = ""

	// DefaultLogFile is used when the payload does not name a log file.
	DefaultLogFile = "default.log"
	// DefaultMaxFileSizeBytes is the rotation threshold (10 MiB).
	DefaultMaxFileSizeBytes uint64 = 10 * 1024 * 1024
	// DefaultMaxFileCount is the number of archives retained.
	DefaultMaxFileCount uint32 = 5

	defaultDiagnosticsMaxSizeMB  = 1
	defaultDiagnosticsMaxBackups = 3
	defaultShutdownTimeout       = 2 * time.Second

	// archiveTimeLayout renders YYYY-MM-DD_HH-MM-SS, which sorts
	// lexicographically in chronological order.
	archiveTimeLayout = "2006-01-02_15-04-05"
	archiveExt        = ".log"
	appPathSeparator  = " -> "

	logFilePerm = 0o644
	logDirPerm  = 0o755
)

const (
	errMsgNilService      = "Log plugin service is nil."
	errMsgConfigInvalid   = "Log plugin configuration is invalid."
	errMsgConfigMalformed = "Configuration payload is malformed."
	errMsgAppNameMissing  = "Configuration payload has no app_name."
	errMsgRecordMalformed = "Record payload is malformed."
	errMsgMessageMissing  = "Record payload has no message."
	errMsgOpenLogFile     = "Failed to open log file."
	errMsgWriteLogFile    = "Failed to write to log file."
	errMsgCreateLogDir    = "Failed to create log directory."
)
