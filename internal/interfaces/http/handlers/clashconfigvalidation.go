package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/subhub/internal/domain/clashconfig"
	"github.com/orris-inc/subhub/internal/shared/utils"
)

// Binding tags used by the clash config requests.
const (
	tagClashRules   = "clash_rules"
	tagYAMLFragment = "yaml_fragment"
)

// RegisterClashConfigValidators installs the clash_rules and yaml_fragment
// tags. It must run before the clash config routes serve requests.
func RegisterClashConfigValidators() error {
	return errors.Join(
		utils.RegisterValidation(tagClashRules, func(fl validator.FieldLevel) bool {
			_, err := clashconfig.CompileRules(fl.Field().String())
			return err == nil
		}, "%s must contain one TYPE,VALUE,PROXY rule per line"),
		utils.RegisterValidation(tagYAMLFragment, func(fl validator.FieldLevel) bool {
			return clashconfig.ValidateGlobalConfig(fl.Field().String()) == nil
		}, "%s must be a YAML mapping"),
	)
}
