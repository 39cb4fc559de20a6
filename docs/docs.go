// Package docs は API の OpenAPI 定義を swag に登録します。
// ハンドラーの注釈を変更したら `swag init -g cmd/api/main.go` で再生成してください。
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/v1/todos": {
            "get": {
                "description": "Returns every todo ordered by ascending id.",
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "List todos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TodoResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Create a todo",
                "parameters": [
                    {"description": "Todo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTodoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TodoResponse"}, "headers": {"Location": {"type": "string", "description": "/todos/{id}"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/v1/todos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Get a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Full replacement. The body id must equal the path id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Replace a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true},
                    {"description": "Todo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTodoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/v2/todos": {
            "get": {
                "description": "Returns every todo ordered by ascending id.",
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "List todos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TodoResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Create a todo",
                "parameters": [
                    {"description": "Todo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTodoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TodoResponse"}, "headers": {"Location": {"type": "string", "description": "/todos/{id}"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/v2/todos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Get a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Full replacement. The body id must equal the path id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Replace a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true},
                    {"description": "Todo", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTodoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TodoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["todos"],
                "summary": "Delete a todo",
                "parameters": [
                    {"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateTodoRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "isCompleted": {"type": "boolean"},
                "title": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "dto.TodoResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "isCompleted": {"type": "boolean"},
                "title": {"type": "string"}
            }
        },
        "dto.UpdateTodoRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "isCompleted": {"type": "boolean"},
                "title": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Todo Service API",
	Description:      "CRUD API for todo items, served identically under /v1 and /v2.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
