package server

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/villeh/netcanvas/internal/models"
)

// validate checks the `validate` struct tags on request payloads.
// Unknown fields in a payload are silently ignored by the JSON decoder;
// the position update is the single exception (strict decode, see api.go).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures under the json field name the caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs tag validation and converts failures into the
// field→reason map surfaced to the caller.
func checkStruct(payload any) *ValidationError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return validationErrorf("payload", "is malformed")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = reasonFor(fe)
	}
	return &ValidationError{Fields: fields}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return "is invalid"
}

// CheckDeviceCreate validates a POST /devices payload.
func CheckDeviceCreate(in *models.DeviceCreate) *ValidationError {
	return checkStruct(in)
}

// CheckDeviceUpdate validates a PATCH /devices/:id payload; at least one
// recognized field must be present.
func CheckDeviceUpdate(in *models.DeviceUpdate) *ValidationError {
	if in.Empty() {
		return validationErrorf("fields", "at least one updatable field must be provided")
	}
	return checkStruct(in)
}

// CheckPositionUpdate validates a PATCH /devices/:id/position payload.
func CheckPositionUpdate(in *models.PositionUpdate) *ValidationError {
	return checkStruct(in)
}

// CheckLinkCreate validates a POST /links payload.
func CheckLinkCreate(in *models.LinkCreate) *ValidationError {
	return checkStruct(in)
}

// CheckLinkUpdate validates a PATCH /links/:id payload; at least one
// recognized field must be present.
func CheckLinkUpdate(in *models.LinkUpdate) *ValidationError {
	if in.Empty() {
		return validationErrorf("fields", "at least one updatable field must be provided")
	}
	return checkStruct(in)
}
