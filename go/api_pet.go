package adoptserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/adapters/http/forms"
	petstypes "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application/types"
	petsports "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
	apierrors "github.com/Apurer/go-gin-adoption-agency/internal/shared/errors"
)

// PetAPI wires HTTP transport with the pets bounded context service and workflows.
type PetAPI struct {
	service   petsports.Service
	workflows petsports.WorkflowOrchestrator
}

// NewPetAPI creates a PetAPI backed by the provided service.
// When workflows is nil new pets are stored through the service directly.
func NewPetAPI(service petsports.Service, workflows petsports.WorkflowOrchestrator) PetAPI {
	return PetAPI{service: service, workflows: workflows}
}

// Get /
// Lists every pet
func (api *PetAPI) ListPets(c *gin.Context) {
	result, err := api.service.ListPets(c.Request.Context())
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	rows := make([]petRow, 0, len(result))
	for _, projection := range result {
		rows = append(rows, newPetRow(projection.Pet))
	}
	c.HTML(http.StatusOK, listTemplate, listView{Pets: rows})
}

// Get /add
// Shows the intake form
func (api *PetAPI) ShowAddPetForm(c *gin.Context) {
	c.HTML(http.StatusOK, addTemplate, newAddView(forms.AddPetForm{}, nil))
}

// Post /add
// Adds a new pet
func (api *PetAPI) AddPet(c *gin.Context) {
	var form forms.AddPetForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		problems.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if errs := form.Validate(); errs.Any() {
		renderInvalidForm(c, addTemplate, newAddView(form, errs), errs)
		return
	}
	if _, err := api.createPet(c.Request.Context(), form.Input()); err != nil {
		if errs, ok := forms.ErrorsFromDomain(err); ok {
			renderInvalidForm(c, addTemplate, newAddView(form, errs), errs)
			return
		}
		respondPetServiceError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (api *PetAPI) createPet(ctx context.Context, input petstypes.AddPetInput) (*petstypes.PetProjection, error) {
	if api.workflows != nil {
		return api.workflows.CreatePet(ctx, input)
	}
	return api.service.AddPet(ctx, input)
}

// Get /:petId
// Shows the listing edit form
func (api *PetAPI) ShowEditPetForm(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	projection, err := api.service.GetPet(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	c.HTML(http.StatusOK, editTemplate, newEditView(projection.Pet, forms.EditFormFromPet(projection.Pet), nil))
}

// Post /:petId
// Updates the photo, notes and availability of a pet.
// The pet is loaded only to re-render an invalid form.
func (api *PetAPI) EditPet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var form forms.EditPetForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		problems.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	errs := form.Validate()
	if !errs.Any() {
		_, err := api.service.EditPet(c.Request.Context(), form.Input(id))
		if err == nil {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		domainErrs, ok := forms.ErrorsFromDomain(err)
		if !ok {
			respondPetServiceError(c, err)
			return
		}
		errs = domainErrs
	}
	api.renderInvalidEdit(c, id, form, errs)
}

func (api *PetAPI) renderInvalidEdit(c *gin.Context, id int64, form forms.EditPetForm, errs forms.Errors) {
	projection, err := api.service.GetPet(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondPetServiceError(c, err)
		return
	}
	renderInvalidForm(c, editTemplate, newEditView(projection.Pet, form, errs), errs)
}

// renderInvalidForm re-renders the page with inline errors, or answers JSON clients with a validation problem.
func renderInvalidForm(c *gin.Context, name string, view any, errs forms.Errors) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		problems.Respond(c, apierrors.NewValidationProblem(errs))
		return
	}
	c.HTML(http.StatusUnprocessableEntity, name, view)
}

// parseIDParam treats a malformed id like a missing pet.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		problems.NotFound(c, "Pet", value)
		return 0, false
	}
	return id, true
}
