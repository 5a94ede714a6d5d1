package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GreatDay Recap API",
        "description": "HTTP trigger surface for the attendance recap service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Recap", "description": "Attendance recap runs"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/run": {
            "post": {
                "tags": ["Recap"],
                "summary": "Trigger a recap run",
                "parameters": [
                    {
                        "name": "mode",
                        "in": "query",
                        "required": true,
                        "type": "string",
                        "enum": ["daily", "weekly", "monthly"]
                    },
                    {
                        "name": "force",
                        "in": "query",
                        "required": false,
                        "type": "boolean"
                    },
                    {
                        "name": "X-API-Key",
                        "in": "header",
                        "required": false,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {"description": "Run outcome"},
                    "400": {"description": "Invalid mode"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
