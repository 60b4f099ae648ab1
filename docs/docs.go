// Package docs holds the OpenAPI description served at /swagger.
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
        "/predict_report": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scoring"],
                "summary": "Score a day of habits",
                "parameters": [
                    {
                        "description": "Habit input",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.HabitInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ScoreResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account and its profile",
                "parameters": [
                    {
                        "description": "Credentials and names",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.userResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/user-data": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Store a scored day of habits",
                "parameters": [
                    {
                        "description": "Habits and scores",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.userDataRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.DataPoint"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/analytics/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "30-day analytics summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AnalyticsOverview"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.HabitInput": {
            "type": "object",
            "properties": {
                "daily_screen_time_hours": {"type": "number"},
                "sleep_duration_hours": {"type": "number"},
                "stress_level": {"type": "number"},
                "sleep_quality": {"type": "number"},
                "physical_activity_hours_per_week": {"type": "number"},
                "social_media_hours": {"type": "number"},
                "gaming_hours": {"type": "number"},
                "entertainment_hours": {"type": "number"},
                "work_related_hours": {"type": "number"}
            }
        },
        "domain.ScoreResponse": {
            "type": "object",
            "properties": {
                "risk_level": {"type": "number"},
                "mood_rating": {"type": "number"},
                "dominant_category": {"type": "string"},
                "cluster_label": {"type": "string"}
            }
        },
        "domain.DataPoint": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "daily_screen_time_hours": {"type": "number"},
                "sleep_duration_hours": {"type": "number"},
                "stress_level": {"type": "number"},
                "sleep_quality": {"type": "number"},
                "physical_activity_hours_per_week": {"type": "number"},
                "social_media_hours": {"type": "number"},
                "gaming_hours": {"type": "number"},
                "entertainment_hours": {"type": "number"},
                "work_related_hours": {"type": "number"},
                "risk_level": {"type": "string"},
                "mood_rating": {"type": "number"},
                "cluster_label": {"type": "string"}
            }
        },
        "domain.AnalyticsOverview": {
            "type": "object",
            "properties": {
                "average_screen_time": {"type": "number"},
                "average_mood": {"type": "number"},
                "average_sleep": {"type": "number"},
                "risk_level_distribution": {"type": "object", "additionalProperties": {"type": "integer"}},
                "most_common_cluster": {"type": "string"},
                "screen_time_trend": {"type": "array", "items": {"type": "object"}},
                "category_distribution": {"type": "object"}
            }
        },
        "http.registerRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"}
            }
        },
        "http.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "http.userResponse": {
            "type": "object",
            "properties": {
                "uid": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "provider": {"type": "string"},
                "displayName": {"type": "string"}
            }
        },
        "http.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/http.userResponse"}
            }
        },
        "http.userDataRequest": {
            "type": "object",
            "required": ["mood_rating"],
            "properties": {
                "daily_screen_time_hours": {"type": "number"},
                "sleep_duration_hours": {"type": "number"},
                "stress_level": {"type": "number"},
                "sleep_quality": {"type": "number"},
                "risk_level": {"type": "string"},
                "mood_rating": {"type": "number"},
                "cluster_label": {"type": "string"}
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
	Title:            "ScreenAware API",
	Description:      "Habit scoring, accounts and analytics for ScreenAware.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
