// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/api/v1/tasks/components": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Returns every registered file-processing task with its description and category.",
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "List task types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.listComponentsResp"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/tasks/settings/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Applies a JSON settings document to a task type and returns the persisted component as base64.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Encode task settings",
                "parameters": [
                    {"description": "Task type and settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.encodeReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.encodeResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Unknown task type", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/tasks/settings/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Restores a base64 component and returns its task type and settings.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Decode a component",
                "parameters": [
                    {"description": "Base64 component", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.decodeReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.decodeResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/tasks/runs": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Runs one task on one file and waits for the outcome. Pass run_id to be able to cancel the run from another request.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Run a task on a file",
                "parameters": [
                    {"description": "Task selection and file", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.processReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.processResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "403": {"description": "Component not licensed", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Run id already in flight", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "422": {"description": "Task failed", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/tasks/runs/{id}": {
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Requests cancellation of an in-flight run.",
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Cancel a run",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.cancelResp"}},
                    "404": {"description": "Run not found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the API is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "API is healthy", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/live": {
            "get": {
                "description": "Check if the API is alive",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {"200": {"description": "API is alive", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the API is ready to run tasks",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "API is ready", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Task routes are not configured", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "http.cancelResp": {
            "type": "object",
            "properties": {"run_id": {"type": "string"}, "status": {"type": "string"}}
        },
        "http.decodeReq": {
            "type": "object",
            "required": ["component"],
            "properties": {"component": {"type": "string"}}
        },
        "http.decodeResp": {
            "type": "object",
            "properties": {
                "configured": {"type": "boolean"},
                "description": {"type": "string"},
                "settings": {},
                "type_name": {"type": "string"}
            }
        },
        "http.encodeReq": {
            "type": "object",
            "required": ["type_name"],
            "properties": {"settings": {"type": "object"}, "type_name": {"type": "string"}}
        },
        "http.encodeResp": {
            "type": "object",
            "properties": {"component": {"type": "string"}, "configured": {"type": "boolean"}, "type_name": {"type": "string"}}
        },
        "http.listComponentsResp": {
            "type": "object",
            "properties": {"components": {"type": "array", "items": {"$ref": "#/definitions/task.ComponentInfo"}}}
        },
        "http.processReq": {
            "type": "object",
            "required": ["file_path"],
            "properties": {
                "action": {"type": "string"},
                "component": {"type": "string"},
                "file_path": {"type": "string"},
                "pages": {"type": "integer", "minimum": 0},
                "priority": {"type": "string", "enum": ["default", "low", "below_normal", "normal", "above_normal", "high"]},
                "run_id": {"type": "string"},
                "settings": {"type": "object"},
                "type_name": {"type": "string"}
            }
        },
        "http.processResp": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "duration_ms": {"type": "integer"},
                "file_id": {"type": "integer"},
                "file_name": {"type": "string"},
                "finished_at": {"type": "string", "format": "date-time"},
                "metadata": {"type": "object", "additionalProperties": {"type": "string"}},
                "result": {"type": "string", "enum": ["successful", "cancelled", "error"]},
                "run_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "data": {},
                "error_code": {"type": "integer"},
                "errors": {},
                "message": {"type": "string"}
            }
        },
        "task.ComponentInfo": {
            "type": "object",
            "properties": {"category": {"type": "string"}, "description": {"type": "string"}, "type_name": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "File Processing Tasks API",
	Description:      "Configure, persist and run file-processing tasks against the pipeline host.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
