// file: internals/helpers/validate.go
package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"skripsiku_backend/internals/helpers/apperr"
)

var defaultValidator = validator.New()

// Validator bersama; controller boleh bawa instance sendiri.
func Validator() *validator.Validate { return defaultValidator }

// BindAndValidate: parse body lalu jalankan tag `validate`.
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("Payload tidak valid")
	}
	return ValidateStruct(v, dst)
}

// BindQuery: parse query string ke struct filter lalu validasi.
func BindQuery[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.QueryParser(dst); err != nil {
		return apperr.Validation("Query tidak valid")
	}
	return ValidateStruct(v, dst)
}

func ValidateStruct(v *validator.Validate, dst any) error {
	if v == nil {
		v = defaultValidator
	}
	if err := v.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(map[string][]string, len(ve))
			for _, fe := range ve {
				name := strings.ToLower(fe.Field())
				fields[name] = append(fields[name], fe.Tag())
			}
			return apperr.ValidationFields("Validasi gagal", fields)
		}
		return apperr.Validation(err.Error())
	}
	return nil
}

// ParseUUIDParam membaca path param bertipe UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation(name + " tidak valid")
	}
	return id, nil
}
