// Package docs contains the generated swagger specification.
// Regenerate with `make swagger-gen`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/completion": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Request an inline completion for a document snapshot",
                "parameters": [
                    {
                        "description": "Document snapshot at trigger time",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.CompletionRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.CompletionResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/accept": {
            "post": {
                "consumes": ["application/json"],
                "summary": "Report that a suggestion was inserted by the user",
                "parameters": [
                    {
                        "description": "Accepted text and insertion position",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.AcceptRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/profiles": {
            "get": {
                "produces": ["application/json"],
                "summary": "List configured profiles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.ProfilesResponse"}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add a profile",
                "parameters": [
                    {
                        "description": "Profile to add; id is minted when empty",
                        "name": "profile",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.Profile"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/types.Profile"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/v1/profiles/active": {
            "put": {
                "consumes": ["application/json"],
                "summary": "Select the active profile",
                "parameters": [
                    {
                        "description": "Profile id to activate; empty disables completions",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.ActiveProfileRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "summary": "Engine status and outcome counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.StatusResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "types.AcceptRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "position": {"$ref": "#/definitions/types.Position"}
            }
        },
        "types.ActiveProfileRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        },
        "types.CompletionRequest": {
            "type": "object",
            "properties": {
                "snapshot": {"$ref": "#/definitions/types.DocumentSnapshot"}
            }
        },
        "types.CompletionResponse": {
            "type": "object",
            "properties": {
                "suggestion": {"$ref": "#/definitions/types.Suggestion"}
            }
        },
        "types.DocumentSnapshot": {
            "type": "object",
            "properties": {
                "prefix": {"type": "string"},
                "suffix": {"type": "string"},
                "current_line": {"type": "string"},
                "path": {"type": "string"},
                "language": {"type": "string"},
                "version": {"type": "integer"},
                "cursor": {"$ref": "#/definitions/types.Position"},
                "suggest_visible": {"type": "boolean"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        },
        "types.Position": {
            "type": "object",
            "properties": {
                "line": {"type": "integer"},
                "col": {"type": "integer"}
            }
        },
        "types.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "kind": {"type": "string"},
                "base_url": {"type": "string"},
                "model": {"type": "string"},
                "credential_env": {"type": "string"}
            }
        },
        "types.ProfilesResponse": {
            "type": "object",
            "properties": {
                "profiles": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/types.Profile"}
                },
                "active_id": {"type": "string"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "active_profile": {"type": "string"},
                "current_request_id": {"type": "integer"},
                "generating": {"type": "boolean"},
                "resolved_total": {"type": "integer"},
                "filtered_total": {"type": "integer"},
                "superseded_total": {"type": "integer"},
                "cancelled_total": {"type": "integer"},
                "failed_total": {"type": "integer"},
                "no_profile_total": {"type": "integer"},
                "cache_hits_total": {"type": "integer"},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"}
            }
        },
        "types.Suggestion": {
            "type": "object",
            "properties": {
                "insert_text": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "completiond API",
	Description:      "HTTP API for the inline code completion daemon.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
