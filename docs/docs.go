// Package docs registers the Swagger spec for the API.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user and their household organization"
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with email and password"
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Clear the session cookie"
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Get the authenticated user"
            }
        },
        "/categories": {
            "get": {
                "tags": ["categories"],
                "summary": "List the organization's categories grouped by type"
            },
            "post": {
                "tags": ["categories"],
                "summary": "Create a category"
            }
        },
        "/categories/{id}": {
            "patch": {
                "tags": ["categories"],
                "summary": "Rename a category"
            },
            "delete": {
                "tags": ["categories"],
                "summary": "Delete a category"
            }
        },
        "/transactions": {
            "get": {
                "tags": ["transactions"],
                "summary": "List the organization's transactions, newest first"
            },
            "post": {
                "tags": ["transactions"],
                "summary": "Create a transaction"
            }
        },
        "/transactions/{id}": {
            "get": {
                "tags": ["transactions"],
                "summary": "Get a transaction by ID"
            },
            "patch": {
                "tags": ["transactions"],
                "summary": "Update a transaction"
            },
            "delete": {
                "tags": ["transactions"],
                "summary": "Delete a transaction"
            }
        },
        "/imports": {
            "post": {
                "tags": ["imports"],
                "summary": "Parse an uploaded bank statement into transactions"
            }
        },
        "/imports/confirm": {
            "post": {
                "tags": ["imports"],
                "summary": "Save categorized transactions from a parsed statement"
            }
        },
        "/invitations": {
            "post": {
                "tags": ["invitations"],
                "summary": "Create an invitation token for the caller's organization"
            }
        },
        "/invitations/{token}": {
            "get": {
                "tags": ["invitations"],
                "summary": "Look up which organization an invitation opens"
            }
        },
        "/invitations/{token}/accept": {
            "post": {
                "tags": ["invitations"],
                "summary": "Join an organization through an invitation"
            }
        },
        "/balance": {
            "get": {
                "tags": ["balance"],
                "summary": "Get per-member balances and the outstanding shared debt"
            }
        },
        "/balance/settle": {
            "post": {
                "tags": ["balance"],
                "summary": "Record a settlement checkpoint"
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
	Title:            "Hogarfin API",
	Description:      "Household finance backend: bank statement imports, shared transactions and debt settlement.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
