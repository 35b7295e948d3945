package providers

import (
	"fmt"
	"fragments/internal/structures"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	if cv.conf.Game.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Game.Timezone); err != nil {
			return fmt.Errorf("invalid game timezone %q: %w", cv.conf.Game.Timezone, err)
		}
	}
	return nil
}
