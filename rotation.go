package logplugin

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Station-Manager/errors"
)

// rotationResult describes what a rotation check did.
type rotationResult struct {
	Archive string // path the log file was renamed to, "" if not rotated
	Pruned  string // archive removed to respect MaxFileCount, "" if none
}

// rotateLogFile archives cfg.LogFile when it has grown past
// cfg.MaxFileSizeBytes. Filesystem failures are handed to warn and never
// stop the caller from appending: a failed rename leaves the content in
// place, a failed prune leaves one archive too many.
func rotateLogFile(cfg Config, now time.Time, warn func(err error, msg string)) rotationResult {
	const op errors.Op = "logplugin.rotateLogFile"
	var res rotationResult

	if !cfg.RotationEnabled || cfg.LogFile == emptyString {
		return res
	}

	info, err := os.Stat(cfg.LogFile)
	if err != nil {
		if !os.IsNotExist(err) {
			warn(errors.New(op).Err(err).Msg("Failed to stat log file."), "rotation check skipped")
		}
		return res
	}
	if !info.Mode().IsRegular() || uint64(info.Size()) <= cfg.MaxFileSizeBytes {
		return res
	}

	archives, err := listArchives(cfg.LogFile)
	if err != nil {
		warn(errors.New(op).Err(err).Msg("Failed to list log archives."), "pruning skipped")
	} else if len(archives) > 0 && uint64(len(archives)) >= uint64(cfg.MaxFileCount) {
		oldest := archives[0]
		if err := os.Remove(oldest); err != nil {
			warn(errors.New(op).Err(err).Msg("Failed to remove oldest log archive."), "pruning skipped")
		} else {
			res.Pruned = oldest
		}
	}

	target := archivePath(cfg.LogFile, now)
	if err := os.Rename(cfg.LogFile, target); err != nil {
		warn(errors.New(op).Err(err).Msg("Failed to rename log file."), "rotation skipped")
		return res
	}
	res.Archive = target

	return res
}

// archivePath returns <logFile>_<YYYY-MM-DD_HH-MM-SS>.log for now in UTC.
// A second rotation within the same second gets a _<n> counter instead of
// replacing the first archive.
func archivePath(logFile string, now time.Time) string {
	base := logFile + "_" + now.UTC().Format(archiveTimeLayout)
	candidate := base + archiveExt
	for n := 1; exists(candidate); n++ {
		candidate = fmt.Sprintf("%s_%d%s", base, n, archiveExt)
	}
	return candidate
}

// listArchives returns the archives of logFile, oldest first. Archives live
// next to the log file and are named <base>_*.log; the timestamp layout makes
// lexical order chronological.
func listArchives(logFile string) ([]string, error) {
	dir := filepath.Dir(logFile)
	prefix := filepath.Base(logFile) + "_"

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var archives []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, archiveExt) {
			archives = append(archives, filepath.Join(dir, name))
		}
	}
	slices.Sort(archives)

	return archives, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
