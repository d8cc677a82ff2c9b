// Package docs registers the store API description served at /swagger/*.
// Regenerate with `swag init -g cmd/main.go` after changing handler annotations.
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
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "parameters": [
                    {"type": "array", "items": {"type": "integer"}, "name": "ids", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "customerIds", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/converters.OrderResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Create an order",
                "parameters": [
                    {"description": "Order; status defaults to Pending", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/converters.OrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/converters.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/converters.OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "put": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Update an order",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/converters.OrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/converters.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["orders"],
                "summary": "Delete an order",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/order-items": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List order lines",
                "parameters": [
                    {"type": "array", "items": {"type": "integer"}, "name": "orderIds", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "productIds", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/converters.OrderItemResponse"}}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "array", "items": {"type": "integer"}, "name": "ids", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "brandIds", "in": "query"},
                    {"type": "array", "items": {"type": "integer"}, "name": "categoryIds", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/converters.ProductResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [{"name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/converters.ProductRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/converters.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboardsvc.Summary"}}
                }
            }
        }
    },
    "definitions": {
        "converters.OrderRequest": {
            "type": "object",
            "properties": {
                "customerId": {"type": "integer"},
                "status": {"type": "string", "enum": ["Pending", "Processing", "Shipped", "Delivered", "Cancelled"]},
                "productIds": {"type": "array", "items": {"type": "integer"}},
                "quantities": {"type": "array", "items": {"type": "integer"}},
                "version": {"type": "integer"}
            }
        },
        "converters.OrderItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "orderId": {"type": "integer"},
                "productId": {"type": "integer"},
                "productName": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPriceCents": {"type": "integer"},
                "lineTotalCents": {"type": "integer"},
                "unitPrice": {"type": "string"},
                "lineTotal": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "converters.OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "customerId": {"type": "integer"},
                "customerName": {"type": "string"},
                "orderDate": {"type": "string"},
                "status": {"type": "string"},
                "totalCents": {"type": "integer"},
                "total": {"type": "string"},
                "version": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"},
                "orderItems": {"type": "array", "items": {"$ref": "#/definitions/converters.OrderItemResponse"}}
            }
        },
        "converters.ProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "string"},
                "priceCents": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "color": {"type": "string"},
                "brandId": {"type": "integer"},
                "categoryId": {"type": "integer"}
            }
        },
        "converters.ProductResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "priceCents": {"type": "integer"},
                "price": {"type": "string"},
                "imageUrl": {"type": "string"},
                "color": {"type": "string"},
                "brandId": {"type": "integer"},
                "brandName": {"type": "string"},
                "categoryId": {"type": "integer"},
                "categoryName": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dashboardsvc.Summary": {
            "type": "object",
            "properties": {
                "categories": {"type": "integer"},
                "brands": {"type": "integer"},
                "products": {"type": "integer"},
                "customers": {"type": "integer"},
                "orders": {"type": "integer"}
            }
        },
        "errs.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/errs.FieldError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Store API",
	Description:      "Catalog, customers and orders of the store back office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
