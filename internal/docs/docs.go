// Package docs registers the API document generated from the handler
// annotations (swag init -g cmd/server/main.go -o internal/docs).
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
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/auth/learners": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Enroll a learner and issue a learner token",
                "parameters": [
                    {"description": "learner", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.EnrollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.EnrollResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/quizzes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Append a question to a lesson",
                "parameters": [
                    {"description": "question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.QuestionInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.LessonQuestion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/quizzes/lesson/{lessonId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Questions of a lesson quiz, in order",
                "parameters": [
                    {"type": "string", "description": "lesson id", "name": "lessonId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.LessonQuestion"}}}
                }
            }
        },
        "/quizzes/lesson/{lessonId}/order": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reorder a lesson's questions",
                "parameters": [
                    {"type": "string", "description": "lesson id", "name": "lessonId", "in": "path", "required": true},
                    {"description": "every question id, in the new order", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ReorderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.LessonQuestion"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/quizzes/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quizzes"],
                "summary": "Grade a complete set of answers",
                "parameters": [
                    {"description": "answers by question id", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ScoreResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{questionId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Replace a question",
                "parameters": [
                    {"type": "string", "description": "question id", "name": "questionId", "in": "path", "required": true},
                    {"description": "question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.QuestionInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LessonQuestion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Delete a question",
                "parameters": [
                    {"type": "string", "description": "question id", "name": "questionId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/lessons/{lessonId}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Lessons with a quiz require a passing attempt first.",
                "produces": ["application/json"],
                "tags": ["learners"],
                "summary": "Mark a lesson complete",
                "parameters": [
                    {"type": "string", "description": "lesson id", "name": "lessonId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LessonProgress"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/lessons/{lessonId}/attempts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Every attempt at a lesson, newest first",
                "parameters": [
                    {"type": "string", "description": "lesson id", "name": "lessonId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Attempt"}}}
                }
            }
        },
        "/lessons/{lessonId}/leaderboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Best score per learner",
                "parameters": [
                    {"type": "string", "description": "lesson id", "name": "lessonId", "in": "path", "required": true},
                    {"type": "integer", "description": "rows to return (default 10)", "name": "top", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.BoardEntry"}}}
                }
            }
        },
        "/me/attempts/{lessonId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["learners"],
                "summary": "The caller's attempts at a lesson, newest first",
                "parameters": [
                    {"type": "string", "description": "lesson id", "name": "lessonId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Attempt"}}}
                }
            }
        },
        "/me/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["learners"],
                "summary": "Lessons the caller has completed",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.LessonProgress"}}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "model.Attempt": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lessonId": {"type": "string"},
                "learnerId": {"type": "string"},
                "learnerName": {"type": "string"},
                "answers": {"type": "object", "additionalProperties": {"type": "string"}},
                "score": {"type": "integer"},
                "totalQuestions": {"type": "integer"},
                "correctAnswers": {"type": "integer"},
                "passed": {"type": "boolean"},
                "questionResults": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "submittedAt": {"type": "string"}
            }
        },
        "model.BoardEntry": {
            "type": "object",
            "properties": {
                "learnerId": {"type": "string"},
                "name": {"type": "string"},
                "score": {"type": "integer"},
                "rank": {"type": "integer"}
            }
        },
        "model.EnrollRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 80},
                "email": {"type": "string"}
            }
        },
        "model.EnrollResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "learnerId": {"type": "string"}
            }
        },
        "model.LessonProgress": {
            "type": "object",
            "properties": {
                "learnerId": {"type": "string"},
                "lessonId": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "model.LessonQuestion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lessonId": {"type": "string"},
                "position": {"type": "integer"},
                "questionText": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "correctAnswer": {"type": "string"},
                "explanation": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "adminId": {"type": "string"}
            }
        },
        "model.QuestionInput": {
            "type": "object",
            "required": ["correctAnswer", "lessonId", "options", "questionText"],
            "properties": {
                "lessonId": {"type": "string"},
                "questionText": {"type": "string"},
                "options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
                "correctAnswer": {"type": "string"},
                "explanation": {"type": "string"}
            }
        },
        "model.ReorderRequest": {
            "type": "object",
            "required": ["questionIds"],
            "properties": {
                "questionIds": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "model.ScoreResult": {
            "type": "object",
            "properties": {
                "attemptId": {"type": "string"},
                "score": {"type": "integer"},
                "totalQuestions": {"type": "integer"},
                "correctAnswers": {"type": "integer"},
                "passed": {"type": "boolean"},
                "questionResults": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "model.SubmitRequest": {
            "type": "object",
            "required": ["answers", "lessonId"],
            "properties": {
                "lessonId": {"type": "string"},
                "answers": {"type": "object", "additionalProperties": {"type": "string"}}
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Lesson Quiz API",
	Description:      "Lesson quizzes: questions, server-side grading and lesson completion.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
