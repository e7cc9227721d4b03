package planner

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fentz26/daybook/internal/models"
	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// An unset Date validates as the empty string
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(models.Date); ok {
			return d.String()
		}
		return nil
	}, models.Date{})

	_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, _, err := parseClock(fl.Field().String())
		return err == nil
	})
}

// Validate checks v against its struct tags. Failures wrap ErrInvalid.
// The core operations do not call it; front-ends validate user input
// before handing it over.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// ValidateEvent also requires a start time on timed events and an end
// time that does not precede it.
func ValidateEvent(ev models.CalendarEvent) error {
	if err := Validate(ev); err != nil {
		return err
	}
	if ev.AllDay {
		return nil
	}
	if ev.StartTime == "" {
		return fmt.Errorf("%w: startTime is required unless the event is all day", ErrInvalid)
	}
	if ev.EndTime == "" {
		return nil
	}
	sh, sm, _ := parseClock(ev.StartTime)
	eh, em, _ := parseClock(ev.EndTime)
	if eh*60+em < sh*60+sm {
		return fmt.Errorf("%w: endTime %s is before startTime %s", ErrInvalid, ev.EndTime, ev.StartTime)
	}
	return nil
}

func describe(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "clock":
		return field + " must be a 24-hour HH:MM time"
	case "hexcolor|hsl":
		return field + " must be #rrggbb or hsl(h, s%, l%)"
	}
	return fmt.Sprintf("%s failed %q (value: '%v')", field, e.Tag(), e.Value())
}
