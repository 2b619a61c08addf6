package http

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// DocsInstance is the swag registry name of the API description.
const DocsInstance = "freight"

type apiDocs struct {
	json string
}

func (d apiDocs) ReadDoc() string { return d.json }

var registerDocsOnce sync.Once

// DocsHandler serves the Swagger UI for doc under /swagger/. The UI loads
// doc.json, which is the validated API description rendered as JSON.
func DocsHandler(doc *openapi3.T) (echo.HandlerFunc, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}

	// swag.Register panics on a second registration of the same name.
	registerDocsOnce.Do(func() {
		swag.Register(DocsInstance, apiDocs{json: string(raw)})
	})

	return echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(DocsInstance)), nil
}
