// Package docs holds the Swagger 2.0 document served at /swagger for the v1 API.
// Paths mirror the swag annotations on the handlers in internal/handlers;
// regenerate with `swag init -g cmd/easyconnect/main.go -o cmd/docs`.
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
        "/attendances": {
            "get": {
                "description": "Reviewers may list any user; everyone else only sees their own punches.",
                "parameters": [
                    {
                        "description": "User filter",
                        "in": "query",
                        "name": "userID",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Status filter",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "default": 20,
                        "description": "Page size",
                        "in": "query",
                        "name": "limit",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Continuation token",
                        "in": "query",
                        "name": "nextToken",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List punches",
                "tags": [
                    "attendances"
                ]
            }
        },
        "/attendances/punch": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Records a punch for the caller. Punches must alternate, starting with check_in.",
                "parameters": [
                    {
                        "description": "Punch",
                        "in": "body",
                        "name": "punch",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Punch out of sequence",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Check in or check out",
                "tags": [
                    "attendances"
                ]
            }
        },
        "/attendances/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Attendance ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Punch of another user",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Punch not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get a punch",
                "tags": [
                    "attendances"
                ]
            }
        },
        "/attendances/{id}/{action}": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Attendance ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Comment or rejection reason",
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Punch already reviewed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Role not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Approve or reject a punch",
                "tags": [
                    "attendances"
                ]
            }
        },
        "/auth/login": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Authenticates a user by username and password and returns a JWT token",
                "parameters": [
                    {
                        "description": "Login Credentials",
                        "in": "body",
                        "name": "credentials",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Invalid input",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "401": {
                        "description": "Authentication failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "summary": "Login user",
                "tags": [
                    "auth"
                ]
            }
        },
        "/bordereaux": {
            "get": {
                "parameters": [
                    {
                        "description": "Status as integer or label",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "default": 20,
                        "description": "Page size",
                        "in": "query",
                        "name": "limit",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Continuation token",
                        "in": "query",
                        "name": "nextToken",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List bordereaux",
                "tags": [
                    "bordereaux"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Creates a bordereau awaiting validation. VAT defaults to 20%.",
                "parameters": [
                    {
                        "description": "Bordereau with its items",
                        "in": "body",
                        "name": "bordereau",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "409": {
                        "description": "Reference already used",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "422": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create a bordereau",
                "tags": [
                    "bordereaux"
                ]
            }
        },
        "/bordereaux/{id}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Bordereau ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Bordereau can no longer be deleted",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Bordereau not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Delete a bordereau",
                "tags": [
                    "bordereaux"
                ]
            },
            "get": {
                "parameters": [
                    {
                        "description": "Bordereau ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Bordereau not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get a bordereau",
                "tags": [
                    "bordereaux"
                ]
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "description": "Replaces header and items. Only allowed while the bordereau awaits validation.",
                "parameters": [
                    {
                        "description": "Bordereau ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Bordereau with its items",
                        "in": "body",
                        "name": "bordereau",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Bordereau can no longer be edited",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "409": {
                        "description": "Concurrent modification",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Update a bordereau",
                "tags": [
                    "bordereaux"
                ]
            }
        },
        "/bordereaux/{id}/{action}": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Bordereau ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Rejection reason",
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Transition not allowed from the current status",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Role not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Validate or reject a bordereau",
                "tags": [
                    "bordereaux"
                ]
            }
        },
        "/device-tokens": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List the caller's push tokens",
                "tags": [
                    "device-tokens"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Token",
                        "in": "body",
                        "name": "token",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Register a push token for the caller",
                "tags": [
                    "device-tokens"
                ]
            }
        },
        "/device-tokens/{token}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Token",
                        "in": "path",
                        "name": "token",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Token not registered for the caller",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Remove a push token of the caller",
                "tags": [
                    "device-tokens"
                ]
            }
        },
        "/installments/overdue": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Overdue installments",
                "tags": [
                    "installments"
                ]
            }
        },
        "/installments/upcoming": {
            "get": {
                "parameters": [
                    {
                        "default": 7,
                        "description": "Look-ahead in days",
                        "in": "query",
                        "name": "days",
                        "required": false,
                        "type": "integer"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Installments due soon",
                "tags": [
                    "installments"
                ]
            }
        },
        "/installments/{id}/pay": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Paying the last pending installment completes the schedule.",
                "parameters": [
                    {
                        "description": "Installment ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Notes",
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Schedule not active or installment already paid",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mark an installment paid",
                "tags": [
                    "installments"
                ]
            }
        },
        "/interviews": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Interview",
                        "in": "body",
                        "name": "interview",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Schedule an interview",
                "tags": [
                    "interviews"
                ]
            }
        },
        "/interviews/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Interview ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Interview not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get an interview",
                "tags": [
                    "interviews"
                ]
            }
        },
        "/interviews/{id}/cancel": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Interview ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Reason",
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Interview is not scheduled",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Cancel an interview",
                "tags": [
                    "interviews"
                ]
            }
        },
        "/interviews/{id}/complete": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Interview ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Feedback",
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Interview is not scheduled",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Complete an interview",
                "tags": [
                    "interviews"
                ]
            }
        },
        "/interviews/{id}/reschedule": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Interview ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "New slot",
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Interview is not scheduled",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Move an interview to another slot",
                "tags": [
                    "interviews"
                ]
            }
        },
        "/invoices": {
            "get": {
                "parameters": [
                    {
                        "description": "Status filter",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "default": 20,
                        "description": "Page size",
                        "in": "query",
                        "name": "limit",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Continuation token",
                        "in": "query",
                        "name": "nextToken",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List invoices",
                "tags": [
                    "invoices"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Invoice details",
                        "in": "body",
                        "name": "invoice",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "409": {
                        "description": "Invoice number already used",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "422": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create an invoice",
                "tags": [
                    "invoices"
                ]
            }
        },
        "/invoices/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Invoice not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get an invoice",
                "tags": [
                    "invoices"
                ]
            }
        },
        "/invoices/{id}/pay": {
            "post": {
                "parameters": [
                    {
                        "description": "Invoice ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Invoice already paid",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Mark an invoice paid",
                "tags": [
                    "invoices"
                ]
            }
        },
        "/payment-schedules": {
            "get": {
                "parameters": [
                    {
                        "description": "Status filter",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "default": 20,
                        "description": "Page size",
                        "in": "query",
                        "name": "limit",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Continuation token",
                        "in": "query",
                        "name": "nextToken",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List payment schedules",
                "tags": [
                    "payment-schedules"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "End date defaults to the due date of the last installment.",
                "parameters": [
                    {
                        "description": "Schedule",
                        "in": "body",
                        "name": "schedule",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "422": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create a payment schedule",
                "tags": [
                    "payment-schedules"
                ]
            }
        },
        "/payment-schedules/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Role not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Schedule statistics",
                "tags": [
                    "payment-schedules"
                ]
            }
        },
        "/payment-schedules/{id}": {
            "delete": {
                "parameters": [
                    {
                        "description": "Schedule ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Only admins may delete schedules",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Delete a payment schedule",
                "tags": [
                    "payment-schedules"
                ]
            },
            "get": {
                "parameters": [
                    {
                        "description": "Schedule ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Schedule not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get a payment schedule with its installments",
                "tags": [
                    "payment-schedules"
                ]
            }
        },
        "/payment-schedules/{id}/generate": {
            "post": {
                "description": "Allowed once per schedule.",
                "parameters": [
                    {
                        "description": "Schedule ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Installments already generated",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Generate the installments of a schedule",
                "tags": [
                    "payment-schedules"
                ]
            }
        },
        "/payment-schedules/{id}/{action}": {
            "post": {
                "parameters": [
                    {
                        "description": "Schedule ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Transition not allowed from the current status",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Pause, resume or cancel a schedule",
                "tags": [
                    "payment-schedules"
                ]
            }
        },
        "/payments": {
            "get": {
                "description": "Newest first, keyset paginated.",
                "parameters": [
                    {
                        "description": "Status filter",
                        "in": "query",
                        "name": "status",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "description": "Invoice filter",
                        "in": "query",
                        "name": "invoiceID",
                        "required": false,
                        "type": "string"
                    },
                    {
                        "default": 20,
                        "description": "Page size",
                        "in": "query",
                        "name": "limit",
                        "required": false,
                        "type": "integer"
                    },
                    {
                        "description": "Continuation token",
                        "in": "query",
                        "name": "nextToken",
                        "required": false,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "List payments",
                "tags": [
                    "payments"
                ]
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Creates a draft payment. Monthly payments get a payment schedule in the same transaction.",
                "parameters": [
                    {
                        "description": "Payment details",
                        "in": "body",
                        "name": "payment",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Invalid input format",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Role not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "422": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Create a payment",
                "tags": [
                    "payments"
                ]
            }
        },
        "/payments/{id}": {
            "get": {
                "parameters": [
                    {
                        "description": "Payment ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Payment not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Get a payment",
                "tags": [
                    "payments"
                ]
            }
        },
        "/payments/{id}/{action}": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "submit, approve, validate, reject, pay or reactivate. Approve, validate and pay also settle the linked invoice; rejecting an approved payment reopens it.",
                "parameters": [
                    {
                        "description": "Payment ID",
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "description": "Comment or rejection reason",
                        "in": "body",
                        "name": "body",
                        "required": false,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Transition not allowed from the current status",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Role not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "409": {
                        "description": "Concurrent modification",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Change the status of a payment",
                "tags": [
                    "payments"
                ]
            }
        },
        "/transitions": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "description": "Runs the guarded transition for entityType/entityID and returns the updated entity.",
                "parameters": [
                    {
                        "description": "Transition",
                        "in": "body",
                        "name": "transition",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "400": {
                        "description": "Transition not allowed from the current status",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "403": {
                        "description": "Role not allowed",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "404": {
                        "description": "Entity not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    },
                    "409": {
                        "description": "Concurrent update",
                        "schema": {
                            "$ref": "#/definitions/handlers.Response"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "summary": "Apply a status action to any entity",
                "tags": [
                    "transitions"
                ]
            }
        }
    },
    "definitions": {
        "handlers.Response": {
            "properties": {
                "data": {},
                "errors": {
                    "additionalProperties": {
                        "type": "string"
                    },
                    "type": "object"
                },
                "message": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            },
            "type": "object"
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [
        {
            "BearerAuth": []
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EasyConnect API",
	Description:      "Business management backend: payments, invoices, schedules, bordereaux, attendance and interviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
