// Package docs registra la especificación OpenAPI servida en /swagger.
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
                "tags": ["auth"],
                "summary": "Inicia sesión en una organización",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "Token y sesión"}, "401": {"description": "Credenciales inválidas"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Registra un usuario pendiente de aprobación",
                "responses": {"201": {"description": "Token y sesión"}, "409": {"description": "Correo registrado"}}
            }
        },
        "/setup/bootstrap": {
            "post": {
                "tags": ["setup"],
                "summary": "Crea la organización, su administrador y el primer producto",
                "responses": {"201": {"description": "Instalación creada"}, "403": {"description": "Clave inválida"}}
            }
        },
        "/me": {
            "get": {
                "tags": ["me"],
                "summary": "Sesión actual",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Sesión"}}
            }
        },
        "/products": {
            "get": {
                "tags": ["products"],
                "summary": "Productos disponibles para el usuario",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Catálogo"}}
            }
        },
        "/investments/open": {
            "post": {
                "tags": ["investments"],
                "summary": "Abre una cuenta de inversión",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Cuenta existente"}, "201": {"description": "Cuenta creada"}}
            }
        },
        "/investments/{id}/contribute": {
            "post": {
                "tags": ["investments"],
                "summary": "Registra un aporte y su rendimiento",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Aporte registrado"}, "400": {"description": "Monto inválido"}}
            }
        },
        "/transactions": {
            "get": {
                "tags": ["transactions"],
                "summary": "Movimientos del usuario, del más reciente al más antiguo",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Página de movimientos"}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["dashboard"],
                "summary": "Resumen del portafolio",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Tablero"}}
            }
        },
        "/withdrawals": {
            "get": {
                "tags": ["withdrawals"],
                "summary": "Retiros en proceso por producto",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Retiros"}}
            },
            "post": {
                "tags": ["withdrawals"],
                "summary": "Solicita un retiro",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/WithdrawalRequest"}}],
                "responses": {"201": {"description": "Retiro en proceso"}, "400": {"description": "Retiro rechazado"}, "403": {"description": "Límite alcanzado"}}
            }
        },
        "/withdrawals/{id}/cancel": {
            "post": {
                "tags": ["withdrawals"],
                "summary": "Cancela un retiro en proceso",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Retiro cancelado"}, "409": {"description": "El retiro ya no está en proceso"}}
            }
        },
        "/admin/withdrawals/{id}/apply": {
            "post": {
                "tags": ["admin"],
                "summary": "Aplica un retiro en proceso",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Retiro aplicado"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["tenantCode", "email", "password"],
            "properties": {
                "tenantCode": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "WithdrawalRequest": {
            "type": "object",
            "required": ["productId", "amount"],
            "properties": {
                "productId": {"type": "string"},
                "amount": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Azell API",
	Description:      "Portal de inversiones: catálogo, aportes, retiros y tablero.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
