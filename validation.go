package logplugin

import (
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// configValidator returns the shared validator with the "loglevel" tag
// registered.
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			l, ok := fl.Field().Interface().(Level)
			return ok && l.Valid()
		})
	})
	return validate
}

func validateConfig(cfg *Config) error {
	const op errors.Op = "logplugin.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgConfigInvalid)
	}

	if err := configValidator().Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	return nil
}
