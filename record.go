package logplugin

import (
	"github.com/Station-Manager/errors"
	"github.com/goccy/go-json"
)

// Record is a single log request. AppName replaces the configured app name
// when set; SubAppName is appended to whichever name is in effect.
type Record struct {
	Message    string  `json:"message"`
	Level      Level   `json:"level"`
	AppName    *string `json:"app_name,omitempty"`
	SubAppName *string `json:"sub_app_name,omitempty"`
}

// WithAppName returns a copy of r that overrides the configured app name.
func (r Record) WithAppName(name string) Record {
	r.AppName = &name
	return r
}

// WithSubApp returns a copy of r tagged with a sub-component name.
func (r Record) WithSubApp(name string) Record {
	r.SubAppName = &name
	return r
}

type recordPayload struct {
	Message    *string `json:"message"`
	Level      *Level  `json:"level"`
	AppName    *string `json:"app_name"`
	SubAppName *string `json:"sub_app_name"`
}

// ParseRecord decodes a JSON record payload. message is required, level
// defaults to info and must be one of the four levels.
func ParseRecord(payload []byte) (Record, error) {
	const op errors.Op = "logplugin.ParseRecord"

	var p recordPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Record{}, errors.New(op).Err(err).Msg(errMsgRecordMalformed)
	}
	if p.Message == nil {
		return Record{}, errors.New(op).Msg(errMsgMessageMissing)
	}

	rec := Record{
		Message:    *p.Message,
		Level:      LevelInfo,
		AppName:    p.AppName,
		SubAppName: p.SubAppName,
	}
	if p.Level != nil {
		rec.Level = *p.Level
	}
	if !rec.Level.Valid() {
		return Record{}, errors.New(op).Err(&ParseError{Value: rec.Level.String()}).Msg(errMsgRecordMalformed)
	}
	return rec, nil
}

// resolveAppName builds the app-name path for a record.
func resolveAppName(configured string, rec Record) string {
	name := configured
	if rec.AppName != nil {
		name = *rec.AppName
	}
	if rec.SubAppName != nil {
		name = name + appPathSeparator + *rec.SubAppName
	}
	return name
}
