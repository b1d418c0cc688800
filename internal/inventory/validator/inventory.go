package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"bukid/pkg/logger"
	"bukid/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type InventoryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewInventoryValidator(log *logger.Logger) *InventoryValidator {
	v := validator.New()

	if err := v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		return model.BookingStatus(fl.Field().Int()).IsValid()
	}); err != nil {
		log.Fatal("Failed to register 'booking_status' validator", "error", err)
	}

	return &InventoryValidator{
		validate: v,
		logger:   log,
	}
}

func (v *InventoryValidator) ValidateItem(item *model.InventoryItem) error {
	return v.translate(v.validate.Struct(item))
}

func (v *InventoryValidator) ValidateItemUpdate(update *model.InventoryItemUpdate) error {
	return v.translate(v.validate.Struct(update))
}

func (v *InventoryValidator) ValidateReservation(reservation *model.InventoryReservation) error {
	return v.translate(v.validate.Struct(reservation))
}

func (v *InventoryValidator) translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var out ValidationErrors
	for _, fieldErr := range validationErrs {
		message := fieldErr.Error()

		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", fieldErr.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", fieldErr.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
		case "gtefield":
			message = fmt.Sprintf("%s must not be before %s", fieldErr.Field(), fieldErr.Param())
		case "booking_status":
			message = fmt.Sprintf("%s must be a known booking status (1-7)", fieldErr.Field())
		}

		out = append(out, ValidationError{Field: fieldErr.Field(), Message: message})
	}

	return out
}
