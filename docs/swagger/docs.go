// Package swagger holds the OpenAPI document served under /swagger.
package swagger

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
        "/integrity": {
            "get": {
                "description": "Hashes every installed archive and compares it with the catalog hash of the same version. This operation may take a long time.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrity"
                ],
                "summary": "Verify Installed Archives",
                "responses": {
                    "200": {
                        "description": "Archive Report",
                        "schema": {
                            "$ref": "#/definitions/integrity.Report"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/integrity/mirror": {
            "get": {
                "description": "Lists installed archives missing from the mirror bucket. Optionally uploads them.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrity"
                ],
                "summary": "Check Mirror",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Upload missing archives",
                        "name": "fix",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Mirror Report",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/integrity/schema": {
            "get": {
                "description": "Checks if the download history table has every expected column.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "integrity"
                ],
                "summary": "Check History Schema",
                "responses": {
                    "200": {
                        "description": "Schema Report",
                        "schema": {
                            "$ref": "#/definitions/integrity.SchemaReport"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/updates": {
            "get": {
                "description": "Scans the installed mods and reconciles each against the mod portal.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "updates"
                ],
                "summary": "Check For Updates",
                "responses": {
                    "200": {
                        "description": "Check Report",
                        "schema": {
                            "$ref": "#/definitions/updates.Report"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/updates/changelog/{name}": {
            "get": {
                "description": "Lists changelog entries newer than the installed release.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "updates"
                ],
                "summary": "Mod Changelog",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Mod name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Changelog",
                        "schema": {
                            "$ref": "#/definitions/updates.ChangelogView"
                        }
                    },
                    "404": {
                        "description": "Unknown Mod",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/updates/history/{name}": {
            "get": {
                "description": "Lists recorded download attempts, newest first.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "updates"
                ],
                "summary": "Download History",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Mod name",
                        "name": "name",
                        "in": "path",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "description": "Maximum records",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "History",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/updates.DownloadRecord"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/updates/mirror/{name}": {
            "get": {
                "description": "Lists archives of a mod held in object storage.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "updates"
                ],
                "summary": "Mirrored Archives",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Mod name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Mirror Listing",
                        "schema": {
                            "$ref": "#/definitions/updates.MirrorListing"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/updates/sync": {
            "post": {
                "description": "Downloads, verifies and mirrors every available update.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "updates"
                ],
                "summary": "Sync Mods",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Only report updates",
                        "name": "dry_run",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Sync Report",
                        "schema": {
                            "$ref": "#/definitions/updates.Report"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "changelog.Entry": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "raw": {
                    "type": "string"
                },
                "sections": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/changelog.Section"
                    }
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "changelog.Section": {
            "type": "object",
            "properties": {
                "lines": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "integrity.ArchiveCheck": {
            "type": "object",
            "properties": {
                "catalog_sha1": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "file_name": {
                    "type": "string"
                },
                "local_sha1": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/integrity.Status"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "integrity.Report": {
            "type": "object",
            "properties": {
                "archives": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/integrity.ArchiveCheck"
                    }
                },
                "scan_failures": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "summary": {
                    "$ref": "#/definitions/integrity.Summary"
                }
            }
        },
        "integrity.SchemaReport": {
            "type": "object",
            "properties": {
                "missing": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "integrity.Status": {
            "type": "string",
            "enum": [
                "ok",
                "mismatch",
                "unknown_version",
                "not_found",
                "failed"
            ],
            "x-enum-varnames": [
                "StatusOK",
                "StatusMismatch",
                "StatusUnknownVersion",
                "StatusNotFound",
                "StatusFailed"
            ]
        },
        "integrity.Summary": {
            "type": "object",
            "properties": {
                "failed": {
                    "type": "integer"
                },
                "mismatched": {
                    "type": "integer"
                },
                "not_found": {
                    "type": "integer"
                },
                "ok": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "unknown": {
                    "type": "integer"
                }
            }
        },
        "models.Release": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "download_url": {
                    "type": "string"
                },
                "file_name": {
                    "type": "string"
                },
                "game_version": {
                    "type": "string"
                },
                "released_at": {
                    "type": "string"
                },
                "sha1": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "storage.Object": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "last_modified": {
                    "type": "string"
                },
                "size": {
                    "type": "integer"
                }
            }
        },
        "updates.ChangelogView": {
            "type": "object",
            "properties": {
                "current": {
                    "type": "string"
                },
                "entries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/changelog.Entry"
                    }
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "updates.Check": {
            "type": "object",
            "properties": {
                "current": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "incomparable": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "name": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/updates.Status"
                },
                "target": {
                    "$ref": "#/definitions/models.Release"
                },
                "versions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "updates.Download": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "mirror_key": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "path": {
                    "type": "string"
                },
                "sha1": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/updates.Status"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "updates.DownloadRecord": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "file_name": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "mirror_key": {
                    "type": "string"
                },
                "mod_name": {
                    "type": "string"
                },
                "run_id": {
                    "type": "string"
                },
                "sha1": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "updates.MirrorListing": {
            "type": "object",
            "properties": {
                "enabled": {
                    "type": "boolean"
                },
                "objects": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/storage.Object"
                    }
                }
            }
        },
        "updates.Report": {
            "type": "object",
            "properties": {
                "checks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/updates.Check"
                    }
                },
                "downloads": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/updates.Download"
                    }
                },
                "dry_run": {
                    "type": "boolean"
                },
                "finished_at": {
                    "type": "string"
                },
                "run_id": {
                    "type": "string"
                },
                "scan_failures": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "started_at": {
                    "type": "string"
                },
                "summary": {
                    "$ref": "#/definitions/updates.Summary"
                }
            }
        },
        "updates.Status": {
            "type": "string",
            "enum": [
                "up_to_date",
                "update_available",
                "not_found",
                "failed",
                "downloaded",
                "unverified",
                "mismatch"
            ],
            "x-enum-varnames": [
                "StatusUpToDate",
                "StatusUpdateAvailable",
                "StatusNotFound",
                "StatusFailed",
                "StatusDownloaded",
                "StatusUnverified",
                "StatusMismatch"
            ]
        },
        "updates.Summary": {
            "type": "object",
            "properties": {
                "downloaded": {
                    "type": "integer"
                },
                "failed": {
                    "type": "integer"
                },
                "mismatched": {
                    "type": "integer"
                },
                "not_found": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "unverified": {
                    "type": "integer"
                },
                "up_to_date": {
                    "type": "integer"
                },
                "updates": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "mod-sync API",
	Description:      "API for checking, downloading and verifying Factorio mods.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
