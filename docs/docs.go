// Package docs holds the OpenAPI description served at /swagger. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/ads": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "List ad requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AdListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Submit an ad request",
                "parameters": [
                    {"type": "file", "description": "Listing photos (multiple files allowed)", "name": "images", "in": "formData", "required": true},
                    {"type": "string", "description": "Listing title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Listing description", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "Contact email, defaults to the account email", "name": "email", "in": "formData"},
                    {"type": "boolean", "description": "The user owns the rights to the photos", "name": "rights_accepted", "in": "formData", "required": true},
                    {"type": "boolean", "description": "The user accepts the terms of service", "name": "terms_accepted", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.SubmitAdResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ads/{ad_id}": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Get an ad request",
                "parameters": [{"type": "string", "description": "Ad request ID (UUID)", "name": "ad_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AdDetailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ads/{ad_id}/download": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["ads"],
                "summary": "Download results",
                "parameters": [{"type": "string", "description": "Ad request ID (UUID)", "name": "ad_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DownloadResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ai/chat": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Free form completion",
                "parameters": [{"description": "Prompt", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ChatRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CompletionResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ai/optimize-description": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Rewrite a listing description",
                "parameters": [{"description": "Listing", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OptimizeDescriptionRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CompletionResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ai/enhance-image": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["image/png"],
                "tags": ["ai"],
                "summary": "Enhance a listing photo",
                "parameters": [
                    {"type": "file", "description": "JPEG or PNG photo", "name": "image", "in": "formData", "required": true},
                    {"type": "string", "description": "Property type, e.g. villa", "name": "property_type", "in": "formData"},
                    {"type": "string", "description": "Room type, e.g. kitchen", "name": "room_type", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/contact": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Send a contact message",
                "parameters": [{"description": "Contact message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ContactRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ContactResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/plans": {
            "get": {
                "produces": ["application/json"],
                "tags": ["plans"],
                "summary": "List pricing plans",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "models.Notice": {
            "type": "object",
            "properties": {
                "level": {"type": "string", "example": "success"},
                "title": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "reason": {"type": "string", "example": "invalid_email"},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/models.Notice"}}
            }
        },
        "models.AdRequestResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string", "example": "in_progress"},
                "status_category": {"type": "string", "example": "pending"},
                "downloadable": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "models.AdImageResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "file_name": {"type": "string"},
                "original_image_url": {"type": "string"},
                "status": {"type": "string", "example": "uploaded"},
                "created_at": {"type": "string"}
            }
        },
        "models.AdListResponse": {
            "type": "object",
            "properties": {
                "ads": {"type": "array", "items": {"$ref": "#/definitions/models.AdRequestResponse"}}
            }
        },
        "models.AdDetailResponse": {
            "type": "object",
            "properties": {
                "ad": {"$ref": "#/definitions/models.AdRequestResponse"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/models.AdImageResponse"}}
            }
        },
        "models.SubmitAdResponse": {
            "type": "object",
            "properties": {
                "ad": {"$ref": "#/definitions/models.AdRequestResponse"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/models.AdImageResponse"}},
                "notices": {"type": "array", "items": {"$ref": "#/definitions/models.Notice"}},
                "prefill": {"type": "object", "properties": {"email": {"type": "string"}}}
            }
        },
        "models.DownloadResponse": {
            "type": "object",
            "properties": {
                "ad_request_id": {"type": "string"},
                "files": {"type": "array", "items": {"$ref": "#/definitions/models.AdImageResponse"}}
            }
        },
        "models.ChatRequest": {
            "type": "object",
            "required": ["prompt"],
            "properties": {
                "prompt": {"type": "string"},
                "system_prompt": {"type": "string"},
                "model": {"type": "string", "example": "gpt-4"},
                "max_tokens": {"type": "integer", "example": 500}
            }
        },
        "models.OptimizeDescriptionRequest": {
            "type": "object",
            "required": ["title", "description"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.CompletionResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "model": {"type": "string"},
                "usage": {
                    "type": "object",
                    "properties": {
                        "prompt_tokens": {"type": "integer"},
                        "completion_tokens": {"type": "integer"},
                        "total_tokens": {"type": "integer"}
                    }
                }
            }
        },
        "models.ContactRequest": {
            "type": "object",
            "required": ["name", "email", "message"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.ContactResponse": {
            "type": "object",
            "properties": {
                "notices": {"type": "array", "items": {"$ref": "#/definitions/models.Notice"}}
            }
        },
        "models.MeResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "email": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ImmobiliareGPT API",
	Description:      "Backend API for optimizing real estate listings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
