// Package docs holds the Swagger document served at /swagger in non-production builds.
// Regenerate with: swag init -g cmd/spendwise_backend/main.go -o cmd/docs
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
        "/convert": {
            "get": {
                "description": "Never fails on missing rates; the tier field tells which fallback produced the result",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Convert an amount between currencies",
                "parameters": [
                    {"type": "string", "description": "Amount to convert", "name": "amount", "in": "query", "required": true},
                    {"type": "string", "description": "Source currency code", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "Target currency code, defaults to the active currency", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/currency/active": {
            "get": {
                "produces": ["application/json"],
                "tags": ["currency"],
                "summary": "Get the active display currency",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ActiveCurrencyResponse"}}
                }
            },
            "put": {
                "description": "Probes that amounts can be converted into the new currency before persisting it",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["currency"],
                "summary": "Change the active display currency",
                "parameters": [
                    {"description": "New currency", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChangeCurrencyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ActiveCurrencyResponse"}},
                    "400": {"description": "Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to change currency", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Exchange rates unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/currency/detect": {
            "get": {
                "description": "Uses the locale query parameter, or the first Accept-Language entry when it is absent",
                "produces": ["application/json"],
                "tags": ["currency"],
                "summary": "Guess a currency from a locale",
                "parameters": [
                    {"type": "string", "description": "BCP 47 locale, e.g. de-CH", "name": "locale", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DetectCurrencyResponse"}}
                }
            }
        },
        "/rates/{base}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Show the rate table served for a base currency",
                "parameters": [
                    {"maxLength": 3, "minLength": 3, "type": "string", "description": "Base currency code", "name": "base", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RatesResponse"}},
                    "400": {"description": "Invalid currency code", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.ActiveCurrencyResponse": {
            "type": "object",
            "properties": {
                "changedAt": {"type": "string"},
                "currencyCode": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "dto.ChangeCurrencyRequest": {
            "type": "object",
            "required": ["currencyCode"],
            "properties": {
                "currencyCode": {"type": "string"}
            }
        },
        "dto.ConversionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "convertedAmount": {"type": "number"},
                "formatted": {"type": "string"},
                "from": {"type": "string"},
                "tier": {"type": "string"},
                "to": {"type": "string"}
            }
        },
        "dto.DetectCurrencyResponse": {
            "type": "object",
            "properties": {
                "currencyCode": {"type": "string"},
                "locale": {"type": "string"}
            }
        },
        "dto.RatesResponse": {
            "type": "object",
            "properties": {
                "base": {"type": "string"},
                "rates": {"type": "object", "additionalProperties": {"type": "number"}},
                "requestedBase": {"type": "string"},
                "source": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SpendWise Currency API",
	Description:      "Currency conversion, rate cache and display currency for SpendWise.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
