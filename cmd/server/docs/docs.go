// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o cmd/server/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/catalog": {
            "get": {
                "description": "Returns every field in model feature order with its kind, constraint and default",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List input fields",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CatalogResponse"}}
                }
            }
        },
        "/api/v1/catalog/example": {
            "get": {
                "description": "Returns a valid /predict body built from the field defaults",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Example request",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/health": {
            "get": {
                "description": "Reports service status and the loaded model",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Validates a customer record and returns the churn prediction. The body is an object with all catalog fields; see /api/v1/catalog/example.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prediction"],
                "summary": "Predict churn",
                "parameters": [
                    {
                        "description": "Customer record",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ValidationErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "PredictRequest": {
            "type": "object",
            "example": {
                "gender": "Female",
                "SeniorCitizen": 1,
                "Partner": "No",
                "Dependents": "No",
                "tenure": 1,
                "PhoneService": "Yes",
                "MultipleLines": "No",
                "InternetService": "Fiber optic",
                "OnlineSecurity": "No",
                "OnlineBackup": "No",
                "DeviceProtection": "No",
                "TechSupport": "No",
                "StreamingTV": "Yes",
                "StreamingMovies": "Yes",
                "Contract": "Month-to-month",
                "PaperlessBilling": "Yes",
                "PaymentMethod": "Electronic check",
                "MonthlyCharges": 105.65,
                "TotalCharges": 105.65
            },
            "additionalProperties": true
        },
        "PredictResponse": {
            "type": "object",
            "properties": {
                "is_churner": {"type": "boolean", "example": true},
                "churn_probability": {"type": "number", "example": 0.83},
                "risk_level": {"type": "string", "enum": ["High", "Low"], "example": "High"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid request body"},
                "details": {"type": "string", "example": "unexpected EOF"}
            }
        },
        "Violation": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["field_constraint", "cross_field_consistency"]},
                "field": {"type": "string", "example": "InternetService"},
                "rule": {"type": "string", "example": "charges-consistency"},
                "message": {"type": "string", "example": "value \"Cable\" is not one of [\"DSL\" \"Fiber optic\" \"No\"]"}
            }
        },
        "ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "validation failed"},
                "violations": {"type": "array", "items": {"$ref": "#/definitions/Violation"}}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "model": {"type": "string", "example": "telco-churn-logistic"},
                "model_version": {"type": "string", "example": "1.0.0"},
                "fields": {"type": "integer", "example": 19}
            }
        },
        "FieldSpec": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "tenure"},
                "kind": {"type": "string", "enum": ["choice", "boolean", "numeric-range", "free-number"]},
                "widget": {"type": "string", "enum": ["dropdown", "radio", "checkbox", "slider", "number"]},
                "section": {"type": "string", "enum": ["Profile", "Services", "Billing"]},
                "options": {"type": "array", "items": {"type": "string"}},
                "min": {"type": "object"},
                "max": {"type": "object"},
                "slider_max": {"type": "number", "example": 72},
                "default": {}
            }
        },
        "CatalogResponse": {
            "type": "object",
            "properties": {
                "fields": {"type": "array", "items": {"$ref": "#/definitions/FieldSpec"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Telco Churn Prediction API",
	Description:      "Validated churn predictions for telco customers, plus an interactive form.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
