// Package docs is the swagger document served at /swagger/index.html.
// Regenerate with: swag init -g internal/features/giveaway/delivery/http/handler.go
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
        "/giveaways/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["giveaways"],
                "summary": "Get a giveaway",
                "parameters": [
                    {"type": "string", "description": "Giveaway slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Giveaway"}},
                    "404": {"description": "Giveaway not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/projects/{slug}/giveaways": {
            "put": {
                "security": [{"SessionToken": []}],
                "description": "Creates a standalone giveaway, or one collab giveaway per target project (plus a private team giveaway when teamSpots > 0)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["giveaways"],
                "summary": "Create a giveaway",
                "parameters": [
                    {"type": "string", "description": "Project slug", "name": "slug", "in": "path", "required": true},
                    {"description": "Giveaway", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GiveawayUpsertRequest"}}
                ],
                "responses": {
                    "200": {"description": "Created giveaway (the last one for multi-target collabs)", "schema": {"$ref": "#/definitions/models.Giveaway"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Not authenticated", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Not allowed to manage giveaways", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Project not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SessionToken": []}],
                "description": "Updates the giveaway named by id. Rules contributed by the collab partner cannot be removed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["giveaways"],
                "summary": "Edit a giveaway",
                "parameters": [
                    {"type": "string", "description": "Project slug", "name": "slug", "in": "path", "required": true},
                    {"description": "Giveaway with id", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GiveawayUpsertRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated giveaway", "schema": {"$ref": "#/definitions/models.Giveaway"}},
                    "400": {"description": "Validation failed or partner rule removed", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "401": {"description": "Not authenticated", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "403": {"description": "Not allowed to manage giveaways", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Project or giveaway not found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.GiveawayUpsertRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string", "example": "Alpha x Beta"},
                "description": {"type": "string"},
                "bannerImage": {"type": "string"},
                "type": {"type": "string", "example": "RAFFLE"},
                "maxWinners": {"type": "integer", "example": 10},
                "endsAt": {"type": "string"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/models.SwaggerRule"}},
                "settings": {"$ref": "#/definitions/models.GiveawaySettings"},
                "discordRoleId": {"type": "string"},
                "paymentToken": {"$ref": "#/definitions/models.PaymentToken"},
                "paymentTokenAmount": {"type": "string"},
                "collabType": {"type": "string", "example": "GIVE_SPOTS"},
                "collabProjectIds": {"type": "array", "items": {"type": "string"}},
                "collabProjectId": {"type": "string"},
                "collabDuration": {"type": "integer", "example": 24},
                "collabRequestDeadline": {"type": "string"},
                "teamSpots": {"type": "integer"}
            }
        },
        "models.ErrorResponse": {
            "description": "Error payload returned by every failing endpoint",
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "End Date must be in the future"},
                "code": {"type": "string", "example": "VALIDATION_ERROR"},
                "request_id": {"type": "string"}
            }
        },
        "models.Giveaway": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "slug": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "bannerImage": {"type": "string"},
                "type": {"type": "string"},
                "status": {"type": "string"},
                "rules": {"type": "array", "items": {"$ref": "#/definitions/models.SwaggerRule"}},
                "collabType": {"type": "string"},
                "maxWinners": {"type": "integer"},
                "collabDuration": {"type": "integer"},
                "collabRequestDeadline": {"type": "string"},
                "endsAt": {"type": "string"},
                "discordRoleId": {"type": "string"},
                "network": {"type": "string"},
                "paymentToken": {"$ref": "#/definitions/models.PaymentToken"},
                "paymentTokenAmount": {"type": "string"},
                "settings": {"$ref": "#/definitions/models.GiveawaySettings"},
                "projectId": {"type": "string"},
                "collabProjectId": {"type": "string"},
                "ownerId": {"type": "string"},
                "parentId": {"type": "string"},
                "discordChannelId": {"type": "string"},
                "discordMessageId": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.GiveawaySettings": {
            "type": "object",
            "properties": {
                "private": {"type": "boolean"},
                "preventDuplicateIps": {"type": "boolean"},
                "overrideRoleId": {"type": "string"},
                "multipleCollabProjects": {"type": "boolean"}
            }
        },
        "models.PaymentToken": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "tokenAddress": {"type": "string"},
                "network": {"type": "string"}
            }
        },
        "models.SwaggerRule": {
            "description": "Entry rule; exactly one payload object matching type is present",
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["DISCORD_GUILD", "DISCORD_ROLE", "TWITTER_FRIENDSHIP", "TWITTER_TWEET", "MINIMUM_BALANCE", "OWN_NFT"]},
                "discordGuildRule": {"type": "object"},
                "discordRoleRule": {"type": "object"},
                "twitterFriendshipRule": {"type": "object"},
                "twitterTweetRule": {"type": "object"},
                "minimumBalanceRule": {"type": "object"},
                "ownNftRule": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "SessionToken": {
            "description": "Bearer session token",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Atlas3 Giveaway API",
	Description:      "Collab giveaway composer of the Atlas3 platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
