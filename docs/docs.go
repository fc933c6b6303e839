// Package docs holds the OpenAPI document served under /swagger. Keep it in
// step with the handler annotations.
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
        "/api/albums/by-artist": {
            "get": {
                "produces": ["application/json"],
                "tags": ["albums"],
                "summary": "Album counts per release year for one artist",
                "parameters": [
                    {"type": "string", "description": "Artist name", "name": "artist", "in": "query", "required": true},
                    {"type": "integer", "default": 0, "description": "Zero-based page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size (1-100)", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Page-model_AlbumStatsByArtist"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/albums/by-year": {
            "get": {
                "produces": ["application/json"],
                "tags": ["albums"],
                "summary": "Album counts per release year",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Zero-based page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size (1-100)", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Page-model_AlbumStatsByYear"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/songs/datasets": {
            "post": {
                "description": "Stores the file in object storage, then ingests the stored copy.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["ingestion"],
                "summary": "Upload and ingest an NDJSON dataset",
                "parameters": [
                    {"type": "file", "description": "NDJSON dataset", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommonResponse-model_IngestionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/songs/ingest": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ingestion"],
                "summary": "Ingest the configured song dataset",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommonResponse-model_IngestionResult"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/songs/{id}": {
            "get": {
                "description": "Returns a song with its artists and like count. Served from the cache when present.",
                "produces": ["application/json"],
                "tags": ["songs"],
                "summary": "Get a song",
                "parameters": [
                    {"type": "integer", "description": "Song ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SongDetail"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/songs/{songId}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Like a song",
                "parameters": [
                    {"type": "integer", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"type": "integer", "description": "Acting user", "name": "User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommonResponse-model_SongLikeAck"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/songs/{songId}/unlike": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Remove a like",
                "parameters": [
                    {"type": "integer", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"type": "integer", "description": "Acting user", "name": "User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CommonResponse-model_SongLikeAck"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CommonResponse-model_IngestionResult": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "payload": {"$ref": "#/definitions/model.IngestionResult"},
                "success": {"type": "boolean"}
            }
        },
        "handler.CommonResponse-model_SongLikeAck": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "payload": {"$ref": "#/definitions/model.SongLikeAck"},
                "success": {"type": "boolean"}
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"},
                "path": {"type": "string"},
                "status": {"type": "integer"},
                "violations": {"type": "array", "items": {"$ref": "#/definitions/validation.Violation"}}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "model.AlbumStatsByArtist": {
            "type": "object",
            "properties": {
                "albumCount": {"type": "integer"},
                "artist": {"type": "string"},
                "releaseYear": {"type": "integer"}
            }
        },
        "model.AlbumStatsByYear": {
            "type": "object",
            "properties": {
                "albumCount": {"type": "integer"},
                "releaseYear": {"type": "integer"}
            }
        },
        "model.IngestionResult": {
            "type": "object",
            "properties": {
                "failureCount": {"type": "integer"},
                "successCount": {"type": "integer"}
            }
        },
        "model.Page-model_AlbumStatsByArtist": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/model.AlbumStatsByArtist"}},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "model.Page-model_AlbumStatsByYear": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"$ref": "#/definitions/model.AlbumStatsByYear"}},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "totalElements": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "model.SongDetail": {
            "type": "object",
            "properties": {
                "album": {"type": "string"},
                "artists": {"type": "array", "items": {"type": "string"}},
                "explicit": {"type": "boolean"},
                "genre": {"type": "string"},
                "id": {"type": "integer"},
                "isrc": {"type": "string"},
                "likeCount": {"type": "integer"},
                "popularity": {"type": "integer"},
                "releaseDate": {"type": "string"},
                "releaseYear": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "model.SongLikeAck": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "songId": {"type": "integer"}
            }
        },
        "validation.Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "rule": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Song Aggregator API",
	Description:      "Song catalogue, likes and album statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
