// Package docs 註冊 /swagger/* 使用的 OpenAPI 文件。
// 內容對應 handler 上的 swag 註解，修改路由時一併更新；router 的測試會比對兩者。
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
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Log in",
				"description": "使用 Email 與密碼登入，回傳存取令牌",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "登入資料",
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
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Log out",
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.MessageResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/signup": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Sign up",
				"description": "建立新帳號 (Email 會自動轉小寫)；Email 已存在時回傳 409",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "帳號資料",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.SignupRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/api.MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/user": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.UserResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"422": {
						"description": "Unprocessable Entity",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/dashboard/responses": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"dashboard"
				],
				"summary": "List responses",
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "頁碼",
						"name": "page",
						"in": "query",
						"default": 1
					},
					{
						"type": "integer",
						"description": "每頁筆數",
						"name": "per_page",
						"in": "query",
						"default": 10
					},
					{
						"type": "string",
						"description": "職缺",
						"name": "role",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.ResponsesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/dashboard/stats": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"dashboard"
				],
				"summary": "Dashboard stats",
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.StatsResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/evaluate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"practice"
				],
				"summary": "Evaluate answer",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "題目與作答",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.EvaluateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.EvaluateResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
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
					"health"
				],
				"summary": "Health check",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.HealthResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/api.HealthResponse"
						}
					}
				}
			}
		},
		"/mcq/check/{id}": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"mcq"
				],
				"summary": "Check MCQ answer",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"type": "integer",
						"description": "題目 ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "作答字母",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.CheckAnswerRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.CheckAnswerResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/mcq/generate": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"mcq"
				],
				"summary": "Generate MCQ",
				"description": "回傳模型產生的原始文字",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "職缺與主題",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.GenerateMCQRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.GeneratedMCQResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/mcq/{role}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"mcq"
				],
				"summary": "List MCQs",
				"parameters": [
					{
						"type": "string",
						"description": "職缺",
						"name": "role",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"description": "頁碼",
						"name": "page",
						"in": "query",
						"default": 1
					},
					{
						"type": "integer",
						"description": "每頁筆數",
						"name": "per_page",
						"in": "query",
						"default": 10
					},
					{
						"type": "string",
						"description": "主題",
						"name": "topic",
						"in": "query"
					},
					{
						"type": "string",
						"description": "難度",
						"name": "difficulty",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.MCQListResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/mcq/{role}/topics": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"mcq"
				],
				"summary": "List MCQ topics",
				"parameters": [
					{
						"type": "string",
						"description": "職缺",
						"name": "role",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.TopicsResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/questions": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"practice"
				],
				"summary": "Generate interview question",
				"description": "role 省略時為 SDE",
				"parameters": [
					{
						"type": "string",
						"description": "職缺",
						"name": "role",
						"in": "query",
						"default": "SDE"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.QuestionResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/roadmap/{role}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"roadmap"
				],
				"summary": "Get roadmap",
				"parameters": [
					{
						"type": "string",
						"description": "職缺",
						"name": "role",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.RoadmapResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/change-password": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"summary": "Change password",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "目前密碼與新密碼",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.ChangePasswordRequest"
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
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/details": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"summary": "User details",
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.UserDetailsResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		},
		"/user/profile": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"summary": "Get profile",
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.UserResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"summary": "Update profile",
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"ApiKeyAuth": []
					}
				],
				"parameters": [
					{
						"description": "可修改的欄位",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/api.UpdateProfileRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/api.UpdateProfileResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/api.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"api.ChangePasswordRequest": {
			"type": "object",
			"required": [
				"currentPassword",
				"newPassword"
			],
			"properties": {
				"currentPassword": {
					"type": "string"
				},
				"newPassword": {
					"type": "string"
				}
			}
		},
		"api.CheckAnswerRequest": {
			"type": "object",
			"required": [
				"answer"
			],
			"properties": {
				"answer": {
					"type": "string",
					"example": "B"
				}
			}
		},
		"api.CheckAnswerResponse": {
			"type": "object",
			"properties": {
				"correct": {
					"type": "boolean"
				},
				"correct_answer": {
					"type": "string",
					"example": "B"
				},
				"explanation": {
					"type": "string"
				}
			}
		},
		"api.DetailStats": {
			"type": "object",
			"properties": {
				"total_responses": {
					"type": "integer"
				},
				"roles_practiced": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.RoleStat"
					}
				},
				"latest_practice": {
					"type": "string"
				},
				"recent_responses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.RecentResponse"
					}
				}
			}
		},
		"api.ErrorResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "invalid email or password",
					"description": "message 錯誤描述"
				},
				"code": {
					"type": "string",
					"example": "auth_error",
					"description": "code 穩定的錯誤碼，供前端分支判斷"
				}
			}
		},
		"api.EvaluateRequest": {
			"type": "object",
			"required": [
				"answer",
				"question"
			],
			"properties": {
				"question": {
					"type": "string"
				},
				"answer": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"example": "SDE"
				}
			}
		},
		"api.EvaluateResponse": {
			"type": "object",
			"properties": {
				"feedback": {
					"type": "string"
				}
			}
		},
		"api.GenerateMCQRequest": {
			"type": "object",
			"required": [
				"role",
				"topic"
			],
			"properties": {
				"role": {
					"type": "string",
					"example": "software-engineer"
				},
				"topic": {
					"type": "string",
					"example": "Algorithms"
				}
			}
		},
		"api.GeneratedMCQResponse": {
			"type": "object",
			"properties": {
				"question": {
					"type": "string"
				}
			}
		},
		"api.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string",
					"example": "healthy"
				},
				"timestamp": {
					"type": "string"
				}
			}
		},
		"api.LoginRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string",
					"example": "ann@example.com"
				},
				"password": {
					"type": "string",
					"example": "pw123456"
				}
			}
		},
		"api.LoginResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/api.UserResponse"
				}
			}
		},
		"api.MCQItem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"question": {
					"type": "string"
				},
				"options": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				},
				"topic": {
					"type": "string"
				},
				"difficulty": {
					"type": "string",
					"example": "easy"
				}
			}
		},
		"api.MCQListResponse": {
			"type": "object",
			"properties": {
				"mcqs": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.MCQItem"
					}
				},
				"total": {
					"type": "integer"
				},
				"pages": {
					"type": "integer"
				},
				"current_page": {
					"type": "integer"
				}
			}
		},
		"api.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "User created successfully"
				}
			}
		},
		"api.QuestionResponse": {
			"type": "object",
			"properties": {
				"question": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"example": "SDE"
				}
			}
		},
		"api.RecentActivity": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"question": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"api.RecentResponse": {
			"type": "object",
			"properties": {
				"question": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"api.ResponseItem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"question": {
					"type": "string"
				},
				"answer": {
					"type": "string"
				},
				"feedback": {
					"type": "string"
				},
				"role": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"api.ResponsesResponse": {
			"type": "object",
			"properties": {
				"responses": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.ResponseItem"
					}
				},
				"total": {
					"type": "integer"
				},
				"pages": {
					"type": "integer"
				},
				"current_page": {
					"type": "integer"
				}
			}
		},
		"api.RoadmapResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"role": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"topics": {
					"type": "object",
					"additionalProperties": {
						"$ref": "#/definitions/api.TopicResponse"
					}
				},
				"resources": {
					"type": "object",
					"additionalProperties": {
						"type": "array",
						"items": {
							"type": "string"
						}
					}
				}
			}
		},
		"api.RoleStat": {
			"type": "object",
			"properties": {
				"role": {
					"type": "string",
					"example": "SDE"
				},
				"count": {
					"type": "integer",
					"example": 3
				}
			}
		},
		"api.SignupRequest": {
			"type": "object",
			"required": [
				"email",
				"name",
				"password"
			],
			"properties": {
				"name": {
					"type": "string",
					"example": "Ann"
				},
				"email": {
					"type": "string",
					"example": "ann@example.com"
				},
				"password": {
					"type": "string",
					"example": "pw123456"
				}
			}
		},
		"api.StatsResponse": {
			"type": "object",
			"properties": {
				"total_responses": {
					"type": "integer"
				},
				"role_stats": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.RoleStat"
					}
				},
				"recent_activity": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/api.RecentActivity"
					}
				}
			}
		},
		"api.TopicResponse": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"items": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"api.TopicsResponse": {
			"type": "object",
			"properties": {
				"topics": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"api.UpdateProfileRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "Annie"
				}
			}
		},
		"api.UpdateProfileResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string",
					"example": "Profile updated successfully"
				},
				"user": {
					"$ref": "#/definitions/api.UserResponse"
				}
			}
		},
		"api.UserDetail": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"joined_date": {
					"type": "string"
				}
			}
		},
		"api.UserDetailsResponse": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/api.UserDetail"
				},
				"stats": {
					"$ref": "#/definitions/api.DetailStats"
				}
			}
		},
		"api.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 1
				},
				"name": {
					"type": "string",
					"example": "Ann"
				},
				"email": {
					"type": "string",
					"example": "ann@example.com"
				}
			}
		}
	},
	"securityDefinitions": {
		"ApiKeyAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:		  "1.0",
	Host:			 "localhost:8080",
	BasePath:		 "/api",
	Schemes:		  []string{},
	Title:			"NextHire API",
	Description:	  "NextHire 面試練習平台後端 API 文件",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:		"{{",
	RightDelim:	   "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
