package forms

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
)

func TestAddPetForm_Valid(t *testing.T) {
	form := AddPetForm{Name: " Rex ", Species: "dog", Age: " 3 ", PhotoURL: "https://example.com/rex.jpg", Notes: "good boy"}
	require.Nil(t, form.Validate())

	input := form.Input()
	assert.Equal(t, "Rex", input.Name)
	assert.Equal(t, "dog", input.Species)
	require.NotNil(t, input.Age)
	assert.Equal(t, 3, *input.Age)
	assert.Equal(t, "good boy", input.Notes)
}

func TestAddPetForm_OptionalFieldsMayBeBlank(t *testing.T) {
	form := AddPetForm{Name: "Tom", Species: "cat"}
	require.Nil(t, form.Validate())
	assert.Nil(t, form.Input().Age)
}

func TestAddPetForm_CollectsEveryFailingField(t *testing.T) {
	form := AddPetForm{Name: "   ", Species: "dragon", PhotoURL: "not a url", Age: "abc"}
	errs := form.Validate()
	require.True(t, errs.Any())

	assert.Equal(t, "This field is required.", errs.Get(FieldName))
	assert.Equal(t, "Invalid value, must be one of: cat, dog, porcupine.", errs.Get(FieldSpecies))
	assert.Equal(t, "Invalid URL.", errs.Get(FieldPhotoURL))
	assert.Equal(t, "Not a valid integer value.", errs.Get(FieldAge))
	assert.Empty(t, errs.Get(FieldNotes))
}

func TestAddPetForm_ReportsURLAndAgeTogether(t *testing.T) {
	for _, photoURL := range []string{"mailto:a@b.com", "file:///tmp/cat.png", "http://localhost/x"} {
		t.Run(photoURL, func(t *testing.T) {
			form := AddPetForm{Name: "A", Species: "cat", PhotoURL: photoURL, Age: "99"}
			errs := form.Validate()
			assert.Equal(t, "Invalid URL.", errs.Get(FieldPhotoURL))
			assert.Equal(t, "Number must be between 0 and 30.", errs.Get(FieldAge))
		})
	}
}

func TestAddPetForm_AcceptsWhatTheDomainAccepts(t *testing.T) {
	for _, photoURL := range []string{"https://example.com/rex.jpg", "http://10.0.0.5/rex.jpg"} {
		form := AddPetForm{Name: "Rex", Species: "dog", PhotoURL: photoURL}
		require.Nil(t, form.Validate(), photoURL)

		input := form.Input()
		_, err := domain.NewPet(input.Name, domain.Species(input.Species), input.PhotoURL, input.Age, input.Notes)
		require.NoError(t, err, photoURL)
	}
}

func TestAddPetForm_MissingSpeciesStopsAtRequired(t *testing.T) {
	form := AddPetForm{Name: "Rex"}
	errs := form.Validate()
	assert.Equal(t, "This field is required.", errs.Get(FieldSpecies))
}

func TestAddPetForm_AgeRange(t *testing.T) {
	tests := []struct {
		age   string
		valid bool
	}{
		{"0", true},
		{"30", true},
		{"-1", false},
		{"31", false},
	}
	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			form := AddPetForm{Name: "Rex", Species: "dog", Age: tt.age}
			errs := form.Validate()
			if tt.valid {
				assert.Nil(t, errs)
				return
			}
			assert.Equal(t, fmt.Sprintf("Number must be between %d and %d.", domain.MinAge, domain.MaxAge), errs.Get(FieldAge))
		})
	}
}

func TestEditPetForm_Checkbox(t *testing.T) {
	for value, want := range map[string]bool{"": false, "false": false, "FALSE": false, "y": true, "on": true, "true": true} {
		form := EditPetForm{Available: value}
		assert.Equal(t, want, form.IsAvailable(), "value %q", value)
	}
}

func TestEditPetForm_Validate(t *testing.T) {
	form := EditPetForm{PhotoURL: "nope", Notes: "x"}
	errs := form.Validate()
	assert.Equal(t, "Invalid URL.", errs.Get(FieldPhotoURL))

	form = EditPetForm{PhotoURL: " https://example.com/a.png ", Available: "y"}
	require.Nil(t, form.Validate())
	input := form.Input(7)
	assert.Equal(t, int64(7), input.ID)
	assert.Equal(t, "https://example.com/a.png", input.PhotoURL)
	assert.True(t, input.Available)
}

func TestEditFormFromPet(t *testing.T) {
	pet := &domain.Pet{ID: 1, PhotoURL: "https://example.com/a.png", Notes: "calm", Available: true}
	form := EditFormFromPet(pet)
	assert.Equal(t, "https://example.com/a.png", form.PhotoURL)
	assert.Equal(t, "calm", form.Notes)
	assert.True(t, form.IsAvailable())

	pet.Available = false
	form = EditFormFromPet(pet)
	assert.False(t, form.IsAvailable())
}

func TestErrorsFromDomain(t *testing.T) {
	errs, ok := ErrorsFromDomain(fmt.Errorf("wrapped: %w", domain.ErrInvalidPhotoURL))
	require.True(t, ok)
	assert.Equal(t, "Invalid URL.", errs.Get(FieldPhotoURL))

	_, ok = ErrorsFromDomain(fmt.Errorf("boom"))
	assert.False(t, ok)
}
