package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder renders ProblemDetail values, either as an HTML page for browsers
// or as application/problem+json for clients that ask for JSON.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	// HTMLTemplate names the template rendered for HTML clients. Empty disables HTML output.
	HTMLTemplate string
}

// NewResponder creates a problem responder rendering htmlTemplate for browsers.
func NewResponder(baseURI, htmlTemplate string) *Responder {
	return &Responder{BaseURI: baseURI, HTMLTemplate: htmlTemplate}
}

// Respond sends a ProblemDetail response in the negotiated format.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if r.HTMLTemplate != "" && c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON, ContentTypeProblemJSON) == gin.MIMEHTML {
		c.HTML(problem.Status, r.HTMLTemplate, gin.H{"Problem": problem})
		return
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError converts a standard error to a ProblemDetail and responds.
// Errors that are not already problems become a 500 without leaking their text.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail("The server encountered an unexpected error."))
}

// NotFound sends a 404 problem response.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(responder *Responder, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: responder,
		mappers:   mappers,
	}
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
