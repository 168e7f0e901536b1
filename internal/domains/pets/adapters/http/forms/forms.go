// Package forms declares the HTML form schemas of the adoption pages and the
// field rules applied to them before any write reaches the service.
package forms

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	pettypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
)

const (
	FieldName      = "name"
	FieldSpecies   = "species"
	FieldPhotoURL  = "photo_url"
	FieldAge       = "age"
	FieldNotes     = "notes"
	FieldAvailable = "available"
)

// AddPetForm holds the raw intake submission.
type AddPetForm struct {
	Name     string `form:"name" validate:"required"`
	Species  string `form:"species" validate:"required,oneof=cat dog porcupine"`
	PhotoURL string `form:"photo_url" validate:"omitempty,photourl"`
	Age      string `form:"age" validate:"omitempty,integer,intbetween=0 30"`
	Notes    string `form:"notes"`
}

// EditPetForm holds the raw listing edit submission.
type EditPetForm struct {
	PhotoURL  string `form:"photo_url" validate:"omitempty,photourl"`
	Notes     string `form:"notes"`
	Available string `form:"available"`
}

// Errors maps a form field to its first failing rule message.
type Errors map[string]string

// Get returns the message for field, or "" when the field passed.
func (e Errors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Any reports whether at least one field failed.
func (e Errors) Any() bool {
	return len(e) > 0
}

// Validate trims the submission and applies the field rules.
// It returns nil when every field passes.
func (f *AddPetForm) Validate() Errors {
	f.Name = strings.TrimSpace(f.Name)
	f.Species = strings.TrimSpace(f.Species)
	f.PhotoURL = strings.TrimSpace(f.PhotoURL)
	f.Age = strings.TrimSpace(f.Age)
	return validate(f)
}

// Input converts a validated form into the service command.
func (f *AddPetForm) Input() pettypes.AddPetInput {
	input := pettypes.AddPetInput{
		Name:     f.Name,
		Species:  f.Species,
		PhotoURL: f.PhotoURL,
		Notes:    f.Notes,
	}
	if age, err := strconv.Atoi(f.Age); err == nil {
		input.Age = &age
	}
	return input
}

// Validate trims the submission and applies the field rules.
func (f *EditPetForm) Validate() Errors {
	f.PhotoURL = strings.TrimSpace(f.PhotoURL)
	return validate(f)
}

// IsAvailable interprets the checkbox value. Browsers omit unchecked boxes.
func (f *EditPetForm) IsAvailable() bool {
	switch strings.ToLower(strings.TrimSpace(f.Available)) {
	case "", "false":
		return false
	default:
		return true
	}
}

// Input converts a validated form into the service command for pet id.
func (f *EditPetForm) Input(id int64) pettypes.EditPetInput {
	return pettypes.EditPetInput{
		ID:        id,
		PhotoURL:  f.PhotoURL,
		Notes:     f.Notes,
		Available: f.IsAvailable(),
	}
}

// EditFormFromPet pre-populates the edit form from the stored listing.
func EditFormFromPet(p *domain.Pet) EditPetForm {
	form := EditPetForm{PhotoURL: p.PhotoURL, Notes: p.Notes}
	if p.Available {
		form.Available = "true"
	}
	return form
}

// ErrorsFromDomain maps an invariant violation reported by the service onto the offending field.
func ErrorsFromDomain(err error) (Errors, bool) {
	switch {
	case errors.Is(err, domain.ErrEmptyName):
		return Errors{FieldName: msgRequired}, true
	case errors.Is(err, domain.ErrUnknownSpecies):
		return Errors{FieldSpecies: oneOfMessage("cat dog porcupine")}, true
	case errors.Is(err, domain.ErrInvalidPhotoURL):
		return Errors{FieldPhotoURL: msgInvalidURL}, true
	case errors.Is(err, domain.ErrAgeOutOfRange):
		return Errors{FieldAge: rangeMessage("0 30")}, true
	default:
		return nil, false
	}
}

const (
	msgRequired   = "This field is required."
	msgInvalidURL = "Invalid URL."
	msgNotInteger = "Not a valid integer value."
)

var (
	validateOnce sync.Once
	formValidate *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.SetTagName("validate")
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("photourl", isPhotoURL)
		_ = v.RegisterValidation("integer", isInteger)
		_ = v.RegisterValidation("intbetween", isIntBetween)
		formValidate = v
	})
	return formValidate
}

func validate(form any) Errors {
	err := instance().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"": err.Error()}
	}
	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "oneof":
		return oneOfMessage(fe.Param())
	case "photourl":
		return msgInvalidURL
	case "integer":
		return msgNotInteger
	case "intbetween":
		return rangeMessage(fe.Param())
	default:
		return "Invalid value."
	}
}

func oneOfMessage(param string) string {
	return "Invalid value, must be one of: " + strings.Join(strings.Fields(param), ", ") + "."
}

func rangeMessage(param string) string {
	bounds := strings.Fields(param)
	if len(bounds) != 2 {
		return "Number is out of range."
	}
	return "Number must be between " + bounds[0] + " and " + bounds[1] + "."
}

// isPhotoURL applies the same URL rule the domain enforces on photo links.
func isPhotoURL(fl validator.FieldLevel) bool {
	return domain.ValidPhotoURL(fl.Field().String())
}

func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.Atoi(fl.Field().String())
	return err == nil
}

// isIntBetween checks an inclusive range given as "min max".
func isIntBetween(fl validator.FieldLevel) bool {
	bounds := strings.Fields(fl.Param())
	if len(bounds) != 2 {
		return false
	}
	lo, errLo := strconv.Atoi(bounds[0])
	hi, errHi := strconv.Atoi(bounds[1])
	n, err := strconv.Atoi(fl.Field().String())
	if errLo != nil || errHi != nil || err != nil {
		return false
	}
	return n >= lo && n <= hi
}
