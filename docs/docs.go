// Package docs holds the Swagger document served at /swagger/. It is kept in
// step with the @Summary annotations on the handlers in internal/api by hand;
// `swag init -g cmd/server/main.go` writes an equivalent file.
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
        "/api/chat": {
            "post": {
                "description": "Forwards the full history to the configured provider and returns one reply.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Chat"
                ],
                "summary": "Send a conversation",
                "parameters": [
                    {
                        "description": "Conversation",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.ChatRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.MessageResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/env-debug": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Environment status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {}
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Echo test",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {}
                        }
                    }
                }
            }
        },
        "/api/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Auth"
                ],
                "summary": "Log in",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/runs": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Runs"
                ],
                "summary": "Start a run",
                "parameters": [
                    {
                        "description": "Suite to run",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.StartRunRequest"
                        }
                    }
                ],
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/service.RunStatus"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "a run is already in progress",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/runs/current": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Runs"
                ],
                "summary": "Current run",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.RunStatus"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Runs"
                ],
                "summary": "Cancel the run",
                "responses": {
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/service.RunStatus"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/runs/stream": {
            "get": {
                "tags": [
                    "Runs"
                ],
                "summary": "Stream run progress",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session token for browsers that cannot set headers",
                        "name": "token",
                        "in": "query"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    }
                }
            }
        },
        "/api/suites": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Suites"
                ],
                "summary": "List suites",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/store.SuiteSummary"
                            }
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Suites"
                ],
                "summary": "Create a suite",
                "parameters": [
                    {
                        "description": "Suite to create",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CreateSuiteRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/suite.Suite"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/suites/import": {
            "post": {
                "description": "Body is a JSON array of cases or a YAML document. Format comes from ?format or Content-Type.",
                "consumes": [
                    "application/json",
                    "application/x-yaml"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Suites"
                ],
                "summary": "Import a dataset",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Suite name",
                        "name": "name",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "json or yaml",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/suite.Suite"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/suites/{suiteID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Suites"
                ],
                "summary": "Get a suite",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Suite ID",
                        "name": "suiteID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/suite.Suite"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/suites/{suiteID}/export": {
            "get": {
                "produces": [
                    "application/json",
                    "application/x-yaml"
                ],
                "tags": [
                    "Suites"
                ],
                "summary": "Export a suite",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Suite ID",
                        "name": "suiteID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "json (default) or yaml",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dataset.Set"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/api/test": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Chat"
                ],
                "summary": "Run the assistant probe",
                "parameters": [
                    {
                        "description": "Message",
                        "name": "body",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/api.AssistantTestRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.MessageResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/api.MessageResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "System"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.AssistantTestRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string",
                    "example": "run the test"
                }
            }
        },
        "api.ChatRequest": {
            "type": "object",
            "properties": {
                "messages": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/api.ChatMessage"
                    }
                }
            }
        },
        "api.ChatMessage": {
            "type": "object",
            "properties": {
                "id": {},
                "sender": {
                    "type": "string",
                    "example": "user"
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "api.CreateSuiteRequest": {
            "type": "object",
            "properties": {
                "cases": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/testcase.TestCase"
                    }
                },
                "name": {
                    "type": "string",
                    "example": "smoke"
                }
            }
        },
        "api.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "admin@example.com"
                },
                "password": {
                    "type": "string",
                    "example": "test123"
                }
            }
        },
        "api.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "api.StartRunRequest": {
            "type": "object",
            "properties": {
                "suite_id": {
                    "type": "string",
                    "example": "a1b2c3d4e5f6g7h8"
                }
            }
        },
        "dataset.Set": {
            "type": "object",
            "properties": {
                "cases": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/testcase.TestCase"
                    }
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "report.Summary": {
            "type": "object",
            "properties": {
                "avg_keyword_coverage": {
                    "type": "number"
                },
                "avg_text_similarity": {
                    "type": "number"
                },
                "cases": {
                    "type": "integer"
                },
                "errors": {
                    "type": "integer"
                },
                "fair": {
                    "type": "integer"
                },
                "good": {
                    "type": "integer"
                },
                "poor": {
                    "type": "integer"
                }
            }
        },
        "runner.Progress": {
            "type": "object",
            "properties": {
                "completed": {
                    "type": "integer"
                },
                "index": {
                    "type": "integer"
                },
                "outcomes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/testcase.Outcome"
                    }
                },
                "state": {
                    "type": "string",
                    "example": "running"
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "service.RunStatus": {
            "type": "object",
            "properties": {
                "progress": {
                    "$ref": "#/definitions/runner.Progress"
                },
                "run_id": {
                    "type": "string"
                },
                "started_at": {
                    "type": "string"
                },
                "suite_id": {
                    "type": "string"
                },
                "suite_name": {
                    "type": "string"
                },
                "summary": {
                    "$ref": "#/definitions/report.Summary"
                }
            }
        },
        "store.SuiteSummary": {
            "type": "object",
            "properties": {
                "case_count": {
                    "type": "integer"
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "suite.Case": {
            "type": "object",
            "properties": {
                "correct_answer": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "keywords": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "question": {
                    "type": "string"
                }
            }
        },
        "suite.Suite": {
            "type": "object",
            "properties": {
                "cases": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/suite.Case"
                    }
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "testcase.Outcome": {
            "type": "object",
            "properties": {
                "ai_response": {
                    "type": "string"
                },
                "error": {
                    "type": "boolean"
                },
                "keyword_coverage": {
                    "type": "integer"
                },
                "question": {
                    "type": "string"
                },
                "text_similarity": {
                    "type": "integer"
                }
            }
        },
        "testcase.TestCase": {
            "type": "object",
            "properties": {
                "correct_answer": {
                    "type": "string"
                },
                "keywords": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "question": {
                    "type": "string"
                }
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

// SwaggerInfo is registered with swag under the default instance name.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ChatProbe API",
	Description:      "Chatbot proxy and answer-quality regression runner.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
