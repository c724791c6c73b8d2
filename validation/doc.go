// Package validation provides input validation for securekit operations
// and configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as an
// INVALID_INPUT AppError whose details list every offending field.
//
// # Struct Tag Validation
//
//	type PasswordConfig struct {
//	    Time    uint32 `mapstructure:"time" validate:"min=1"`
//	    Threads uint8  `mapstructure:"threads" validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	if appErr := validation.New().
//	    Required("user_id", userID).
//	    RequiredBytes("salt", salt).
//	    Validate(); appErr != nil {
//	    return appErr
//	}
package validation
