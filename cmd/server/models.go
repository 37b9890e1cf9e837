package main

import (
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/validation"
)

// API Response Models with Swagger annotations. The prediction body itself is
// adapter.Response.

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid request body"`
	Details string `json:"details,omitempty" example:"unexpected EOF"`
} // @name ErrorResponse

// ValidationErrorResponse lists every rejected field or rule
type ValidationErrorResponse struct {
	Error      string                 `json:"error" example:"validation failed"`
	Violations []validation.Violation `json:"violations"`
} // @name ValidationErrorResponse

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status" example:"healthy"`
	Model        string `json:"model" example:"telco-churn-logistic"`
	ModelVersion string `json:"model_version" example:"1.0.0"`
	Fields       int    `json:"fields" example:"19"`
} // @name HealthResponse

// CatalogResponse lists the input fields in model feature order
type CatalogResponse struct {
	Fields []catalog.FieldSpec `json:"fields"`
} // @name CatalogResponse
