package router

import (
	"os"
	"path/filepath"

	"character-forge/backend/pkg/validator"
)

// AddOpenAPIValidation enables schema validation when the schema file is
// present. A missing file is not an error; handler-level validation still
// covers every endpoint.
func (r *Router) AddOpenAPIValidation(schemaPath string) {
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		r.Logger.Warn("OpenAPI schema file not found, skipping validation", "path", schemaPath)
		return
	}

	v, err := validator.NewOpenAPIValidator(schemaPath)
	if err != nil {
		r.Logger.Error("Failed to initialize OpenAPI validator", "error", err.Error())
		return
	}

	r.Engine.Use(v.Middleware())
	r.Logger.Info("OpenAPI validation enabled", "schema", schemaPath)

	schemaDir := filepath.Dir(schemaPath)
	r.Engine.Static("/api/docs", schemaDir)
}
