// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}
        },
        "/v1/auth/signup": {
            "post": {"tags": ["auth"], "summary": "Sign up a dealership", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Validation failed"}, "429": {"description": "Too many requests"}}}
        },
        "/v1/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}, "429": {"description": "Too many requests"}}}
        },
        "/v1/public/dealers/{slug}/vehicles": {
            "get": {"tags": ["public"], "summary": "List a dealer's published vehicles", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/v1/public/dealers/{slug}/sell-my-car": {
            "post": {"tags": ["public"], "summary": "Offer a vehicle to a dealer", "responses": {"202": {"description": "Accepted"}, "400": {"description": "Captcha failed"}, "422": {"description": "Validation failed"}, "429": {"description": "Too many requests"}}}
        },
        "/v1/public/dealers/{slug}/sourcing-requests": {
            "post": {"tags": ["public"], "summary": "Ask a dealer to find a vehicle", "responses": {"202": {"description": "Accepted"}, "400": {"description": "Captcha failed"}, "422": {"description": "Validation failed"}, "429": {"description": "Too many requests"}}}
        },
        "/v1/public/vehicles/{id}": {
            "get": {"tags": ["public"], "summary": "Get a published vehicle", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/v1/public/vehicles/{id}/leads": {
            "post": {"tags": ["public"], "summary": "Enquire about a published vehicle", "responses": {"202": {"description": "Accepted"}, "400": {"description": "Captcha failed"}, "422": {"description": "Validation failed"}, "429": {"description": "Too many requests"}}}
        },
        "/v1/users": {
            "get": {"tags": ["users"], "summary": "List users", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthenticated"}, "403": {"description": "Forbidden"}}},
            "post": {"tags": ["users"], "summary": "Create a user", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Validation failed"}}}
        },
        "/v1/users/{id}/role": {
            "patch": {"tags": ["users"], "summary": "Change a user's role", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}}
        },
        "/v1/users/{id}/active": {
            "patch": {"tags": ["users"], "summary": "Activate or deactivate a user", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}}
        },
        "/v1/dealer/settings": {
            "get": {"tags": ["dealer"], "summary": "Get dealership settings", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["dealer"], "summary": "Update dealership settings", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "422": {"description": "Validation failed"}}}
        },
        "/v1/vehicles": {
            "get": {"tags": ["vehicles"], "summary": "List inventory", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["vehicles"], "summary": "Add a vehicle", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Validation failed"}}}
        },
        "/v1/vehicles/{id}": {
            "get": {"tags": ["vehicles"], "summary": "Get a vehicle", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["vehicles"], "summary": "Replace a vehicle", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["vehicles"], "summary": "Delete a vehicle", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}}
        },
        "/v1/vehicles/{id}/status": {
            "patch": {"tags": ["vehicles"], "summary": "Change listing status", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}}
        },
        "/v1/leads": {
            "get": {"tags": ["leads"], "summary": "List leads", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/leads/{id}": {
            "get": {"tags": ["leads"], "summary": "Get a lead", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["leads"], "summary": "Delete a lead", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}}
        },
        "/v1/leads/{id}/status": {
            "patch": {"tags": ["leads"], "summary": "Move a lead through the pipeline", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Invalid transition"}}}
        },
        "/v1/sourcing-requests": {
            "get": {"tags": ["sourcing"], "summary": "List sourcing requests", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/sourcing-requests/{id}/status": {
            "patch": {"tags": ["sourcing"], "summary": "Update a sourcing request", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Invalid transition"}}}
        },
        "/v1/expenses": {
            "get": {"tags": ["expenses"], "summary": "List expenses", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["expenses"], "summary": "Record an expense", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "422": {"description": "Validation failed"}}}
        },
        "/v1/expenses/{id}": {
            "put": {"tags": ["expenses"], "summary": "Update an expense", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["expenses"], "summary": "Delete an expense", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}}
        },
        "/v1/reports/summary": {
            "get": {"tags": ["reports"], "summary": "Dealership summary report", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dealership API",
	Description:      "Inventory, leads, expenses and public dealer sites.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
