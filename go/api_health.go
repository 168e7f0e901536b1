package adoptserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthAPI reports process liveness and, when configured, storage reachability.
type HealthAPI struct {
	check func(ctx context.Context) error
}

// NewHealthAPI creates a HealthAPI. check may be nil.
func NewHealthAPI(check func(ctx context.Context) error) HealthAPI {
	return HealthAPI{check: check}
}

// Get /healthz
func (api *HealthAPI) Health(c *gin.Context) {
	if api.check != nil {
		if err := api.check(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
