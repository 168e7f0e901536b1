package errors

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

func newTestRouter(responder *ChainedResponder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`<h1>{{ .Problem.Status }} {{ .Problem.Title }}</h1>`)))
	router.GET("/missing", func(c *gin.Context) { responder.RespondError(c, errMissing) })
	router.GET("/boom", func(c *gin.Context) { responder.RespondError(c, errors.New("db password leaked")) })
	return router
}

func notFoundMapper(err error) (ProblemDetail, bool) {
	if errors.Is(err, errMissing) {
		return NewNotFoundProblem("Pet", 7), true
	}
	return ProblemDetail{}, false
}

func TestChainedResponder_RendersHTMLByDefault(t *testing.T) {
	router := newTestRouter(NewChainedResponder(NewResponder("", "error.html"), notFoundMapper))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 Not Found")
}

func TestChainedResponder_NegotiatesProblemJSON(t *testing.T) {
	router := newTestRouter(NewChainedResponder(NewResponder("https://adopt.example", "error.html"), notFoundMapper))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "https://adopt.example"+TypeNotFound, problem.Type)
	assert.Equal(t, "/missing", problem.Instance)
}

func TestResponder_UnknownErrorsDoNotLeak(t *testing.T) {
	router := newTestRouter(NewChainedResponder(NewResponder("", "error.html")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestNewValidationProblem(t *testing.T) {
	problem := NewValidationProblem(map[string]string{"species": "Invalid value."})

	assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
	assert.Equal(t, TypeUnprocessable, problem.Type)
	assert.Equal(t, map[string]string{"species": "Invalid value."}, problem.Extensions["fields"])
}
