package http

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawOpenAPI []byte

var loadSwagger = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawOpenAPI)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
})

// GetSwagger returns the parsed and validated API contract served by this adapter.
func GetSwagger() (*openapi3.T, error) {
	return loadSwagger()
}

// rawSpec returns the embedded OpenAPI document.
func rawSpec() []byte {
	return rawOpenAPI
}

// validateBody checks a decoded JSON request body against a named component schema.
func validateBody(schemaName string, body any) error {
	doc, err := GetSwagger()
	if err != nil {
		return err
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref.Value == nil {
		return fmt.Errorf("schema %s not found", schemaName)
	}
	return ref.Value.VisitJSON(body)
}
