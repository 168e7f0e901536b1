package adoptserver

import (
	"html/template"
	"strconv"

	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/http/forms"
	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/domain"
)

const (
	listTemplate = "pets_list.html"
	addTemplate  = "add_pet.html"
	editTemplate = "edit_pet.html"
)

var templateFuncs = template.FuncMap{
	"checked": func(b bool) template.HTMLAttr {
		if b {
			return "checked"
		}
		return ""
	},
}

type petRow struct {
	ID        int64
	Name      string
	Species   string
	PhotoURL  string
	Age       string
	Notes     string
	Available bool
}

func newPetRow(p *domain.Pet) petRow {
	row := petRow{
		ID:        p.ID,
		Name:      p.Name,
		Species:   string(p.Species),
		PhotoURL:  p.PhotoURL,
		Notes:     p.Notes,
		Available: p.Available,
	}
	if p.Age != nil {
		row.Age = strconv.Itoa(*p.Age)
	}
	return row
}

type listView struct {
	Pets []petRow
}

type addView struct {
	Form    forms.AddPetForm
	Errors  forms.Errors
	Species []domain.Species
}

type editView struct {
	Pet       petRow
	Form      forms.EditPetForm
	Available bool
	Errors    forms.Errors
}

func newAddView(form forms.AddPetForm, errs forms.Errors) addView {
	return addView{Form: form, Errors: errs, Species: domain.AllSpecies()}
}

func newEditView(pet *domain.Pet, form forms.EditPetForm, errs forms.Errors) editView {
	return editView{Pet: newPetRow(pet), Form: form, Available: form.IsAvailable(), Errors: errs}
}
