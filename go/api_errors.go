package adoptserver

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	petsapp "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/application"
	petsports "github.com/Apurer/go-gin-adoption-agency/internal/domains/pets/ports"
	apierrors "github.com/Apurer/go-gin-adoption-agency/internal/shared/errors"
)

const errorTemplate = "error.html"

var problems = apierrors.NewChainedResponder(apierrors.NewResponder("", errorTemplate), mapPetError)

func mapPetError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, petsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("No pet with that id is listed."), true
	case errors.Is(err, petsapp.ErrInvalidInput):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}

// respondPetServiceError logs unexpected failures and renders the matching problem.
func respondPetServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if _, known := mapPetError(err); !known {
		requestLogger(c).ErrorContext(c.Request.Context(), "pet request failed", slog.String("error", err.Error()))
	}
	problems.RespondError(c, err)
}
