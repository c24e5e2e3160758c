package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/dzstore/internal/domain"
)

// validateMaxBytes unlike max, which counts runes, limits the byte length of a string field.
func validateMaxBytes(fl validator.FieldLevel) bool {
	maxBytes, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(str) <= maxBytes
}

func validateSteamID(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	return ok && domain.IsValidSteamID(str)
}

func validateClassname(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	return ok && domain.IsValidClassname(str)
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
	}
	for tag, fn := range map[string]validator.Func{
		"max_bytes": validateMaxBytes,
		"steamid":   validateSteamID,
		"classname": validateClassname,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validator registration %s: %s", tag, err.Error())
		}
	}
	return nil
}
