// Package docs registers the OpenAPI document served at /swagger. It is
// maintained by hand alongside the handler annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate a staff member",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Set a password from an invitation or reset link",
                "parameters": [
                    {"description": "Token and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.okResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/shifts/{id}/assign": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shifts"],
                "summary": "Assign workers to a shift",
                "parameters": [
                    {"type": "string", "description": "Shift id", "name": "id", "in": "path", "required": true},
                    {"description": "Workers to assign", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.assignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.assignResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["shifts"],
                "summary": "Remove workers from a shift",
                "parameters": [
                    {"type": "string", "description": "Shift id", "name": "id", "in": "path", "required": true},
                    {"description": "Workers to remove", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.assignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.okResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/notifications/shift-assigned": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Notify workers that they were assigned to a shift",
                "parameters": [
                    {"description": "Shift and workers", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.shiftAssignedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.notifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.notifyResponse"}}
                }
            }
        },
        "/notifications/shift-updated": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Notify every assignee that their shift changed",
                "parameters": [
                    {"description": "Shift and changed fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.shiftUpdatedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.notifyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.notifyResponse"}}
                }
            }
        },
        "/workers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["workers"],
                "summary": "Create or reactivate a worker",
                "parameters": [
                    {"description": "Worker details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createWorkerRequest"}}
                ],
                "responses": {
                    "200": {"description": "reactivated", "schema": {"$ref": "#/definitions/handler.workerResponse"}},
                    "201": {"description": "created", "schema": {"$ref": "#/definitions/handler.workerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.DispatchOutcome": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message_id": {"type": "string"},
                "recipient_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "domain.Profile": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "id": {"type": "string"},
                "is_active": {"type": "boolean"},
                "pay_rate": {"type": "number"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "sms_opt_in": {"type": "boolean"}
            }
        },
        "handler.assignRequest": {
            "type": "object",
            "required": ["employee_ids"],
            "properties": {
                "employee_ids": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "handler.assignResponse": {
            "type": "object",
            "properties": {
                "added": {"type": "array", "items": {"type": "string"}},
                "notifications": {"type": "string"},
                "ok": {"type": "boolean"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.DispatchOutcome"}},
                "sent": {"type": "integer"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.Profile"}
            }
        },
        "handler.createWorkerRequest": {
            "type": "object",
            "required": ["email", "full_name"],
            "properties": {
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "pay_rate": {"type": "number", "minimum": 0},
                "phone": {"type": "string"},
                "redirect_url": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "employee"]},
                "send_invite": {"type": "boolean"},
                "sms_opt_in": {"type": "boolean"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.fieldChangeRequest": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.notifyResponse": {
            "type": "object",
            "properties": {
                "duplicate": {"type": "boolean"},
                "error": {"type": "string"},
                "failed": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.DispatchOutcome"}},
                "sent": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        },
        "handler.okResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "handler.setPasswordRequest": {
            "type": "object",
            "required": ["password", "token", "type"],
            "properties": {
                "password": {"type": "string", "minLength": 8},
                "token": {"type": "string"},
                "type": {"type": "string", "enum": ["invite", "reset"]}
            }
        },
        "handler.shiftAssignedRequest": {
            "type": "object",
            "required": ["employee_ids", "shift_id"],
            "properties": {
                "employee_ids": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "shift_id": {"type": "string"}
            }
        },
        "handler.shiftUpdatedRequest": {
            "type": "object",
            "required": ["changes", "shift_id"],
            "properties": {
                "changes": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.fieldChangeRequest"}},
                "shift_id": {"type": "string"}
            }
        },
        "handler.workerResponse": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "id": {"type": "string"},
                "invite_sent": {"type": "boolean"},
                "is_active": {"type": "boolean"},
                "pay_rate": {"type": "number"},
                "phone": {"type": "string"},
                "reactivated": {"type": "boolean"},
                "role": {"type": "string"},
                "sms_opt_in": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Crew Scheduler API",
	Description:      "Shift assignment, crew notifications and worker provisioning.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
