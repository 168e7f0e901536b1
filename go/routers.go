package adoptserver

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers served by the adoption site.
type ApiHandleFunctions struct {
	PetAPI    PetAPI
	HealthAPI HealthAPI
}

// NewRouter returns a new router with the given middleware installed ahead of every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds templates and routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.SetHTMLTemplate(loadTemplates())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		}
	}
	router.NoRoute(func(c *gin.Context) {
		problems.NotFound(c, "Page", c.Request.URL.Path)
	})
	return router
}

// DefaultHandleFunc is used for routes without a bound handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html"))
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListPets",
			http.MethodGet,
			"/",
			handleFunctions.PetAPI.ListPets,
		},
		{
			"ShowAddPetForm",
			http.MethodGet,
			"/add",
			handleFunctions.PetAPI.ShowAddPetForm,
		},
		{
			"AddPet",
			http.MethodPost,
			"/add",
			handleFunctions.PetAPI.AddPet,
		},
		{
			"Health",
			http.MethodGet,
			"/healthz",
			handleFunctions.HealthAPI.Health,
		},
		{
			"ShowEditPetForm",
			http.MethodGet,
			"/:petId",
			handleFunctions.PetAPI.ShowEditPetForm,
		},
		{
			"EditPet",
			http.MethodPost,
			"/:petId",
			handleFunctions.PetAPI.EditPet,
		},
	}
}
