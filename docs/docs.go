// Package docs holds the OpenAPI document served under /swagger.
//
// Regenerate with: swag init -g cmd/server/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/mealshare/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Core"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/tags": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List tags",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/ingredients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Search ingredients",
                "parameters": [
                    {"type": "string", "description": "Name prefix", "name": "name", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recipes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recipes"],
                "summary": "List recipes",
                "parameters": [
                    {"type": "integer", "default": 1, "maximum": 1000000, "description": "1-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Tag slugs", "name": "tags", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "collectionFormat": "multi", "description": "Author IDs", "name": "author", "in": "query"},
                    {"type": "integer", "description": "Only the caller's favorites (1/0)", "name": "is_favorited", "in": "query"},
                    {"type": "integer", "description": "Only recipes in the caller's cart (1/0)", "name": "is_in_shopping_cart", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recipes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Recipes"],
                "summary": "Get a recipe",
                "parameters": [
                    {"type": "integer", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recipes/{id}/shopping_cart": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Shopping cart"],
                "summary": "Add a recipe to the shopping cart",
                "parameters": [
                    {"type": "integer", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Already in the cart", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown recipe", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Shopping cart"],
                "summary": "Remove a recipe from the shopping cart",
                "parameters": [
                    {"type": "integer", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not in the cart", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recipes/{id}/favorite": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Add a recipe to favorites",
                "parameters": [
                    {"type": "integer", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Already a favorite", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown recipe", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Favorites"],
                "summary": "Remove a recipe from favorites",
                "parameters": [
                    {"type": "integer", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not a favorite", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recipes/shopping_list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Shopping cart"],
                "summary": "Get the aggregated shopping list",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Store circuit open", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/recipes/download_shopping_cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["Shopping cart"],
                "summary": "Download the shopping list PDF",
                "responses": {
                    "200": {"description": "shopping_list.pdf", "schema": {"type": "file"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "429": {"description": "Render limiter exhausted", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "500": {"description": "RENDER_ERROR or DATABASE_ERROR", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Store circuit open", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {},
                "request_id": {"type": "string"}
            }
        },
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT issued by the account service, sent as 'Bearer <token>' or in the token cookie.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Mealshare API",
	Description:      "Recipe catalog, per-user shopping carts and favorites, and printable shopping lists.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
