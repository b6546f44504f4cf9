package logplugin

import (
	stderrs "errors"
	"time"

	smerrors "github.com/Station-Manager/errors"
)

// maxCauseDepth stops causeChain on self-referencing errors.
const maxCauseDepth = 32

// errorLink is one step of an error's cause chain. op is set for
// Station-Manager DetailedErrors only.
type errorLink struct {
	msg string
	op  string
}

// causeChain lists err and its causes, outermost first. DetailedErrors are
// followed through Cause, anything else through errors.Unwrap.
func causeChain(err error) []errorLink {
	var links []errorLink
	for depth := 0; err != nil && depth < maxCauseDepth; depth++ {
		if d, ok := smerrors.AsDetailedError(err); ok && d != nil {
			links = append(links, errorLink{msg: d.Error(), op: string(d.Op())})
			err = d.Cause()
			continue
		}
		links = append(links, errorLink{msg: err.Error()})
		err = stderrs.Unwrap(err)
	}
	return links
}

// waitFor reports whether done is closed within d.
func waitFor(done <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
