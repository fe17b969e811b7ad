// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/predict": {
            "post": {
                "description": "Align a raw request to the model features and return the approval probability and class",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scoring"],
                "summary": "Score a financing request",
                "parameters": [
                    {
                        "description": "Raw financing request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/importa": {
            "post": {
                "description": "Fetch requests from the import source, score the new ones and store them",
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Import financing requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ImportResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/richieste": {
            "get": {
                "description": "Range filters use <field>_min / <field>_max, categorical filters use the field name",
                "produces": ["application/json"],
                "tags": ["requests"],
                "summary": "List stored financing requests",
                "parameters": [
                    {"type": "number", "description": "Minimum age", "name": "Eta_min", "in": "query"},
                    {"type": "number", "description": "Maximum age", "name": "Eta_max", "in": "query"},
                    {"type": "number", "description": "Minimum amount requested", "name": "ImportoRichiesto_min", "in": "query"},
                    {"type": "number", "description": "Maximum amount requested", "name": "ImportoRichiesto_max", "in": "query"},
                    {"type": "number", "description": "Minimum approval probability", "name": "ProbabilitaFinanziamentoApprovato_min", "in": "query"},
                    {"type": "string", "description": "Sex", "name": "Sesso", "in": "query"},
                    {"type": "string", "description": "Education", "name": "TitoloStudio", "in": "query"},
                    {"type": "string", "description": "Real estate", "name": "InformazioniImmobile", "in": "query"},
                    {"type": "string", "description": "Purpose", "name": "ScopoFinanziamento", "in": "query"},
                    {"type": "string", "description": "Prior default", "name": "InadempienzeFinanziamentiPrecedenti", "in": "query"},
                    {"type": "integer", "description": "Maximum number of rows", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.FinancingRequest"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/richieste/export": {
            "get": {
                "description": "Same filters as the list endpoint; limit is ignored",
                "produces": [
                    "text/csv",
                    "application/json",
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": ["requests"],
                "summary": "Export stored financing requests",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv, json or excel", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/statistiche": {
            "get": {
                "description": "Only the Sesso, TitoloStudio, InformazioniImmobile and ScopoFinanziamento filters apply",
                "produces": ["application/json"],
                "tags": ["requests"],
                "summary": "Aggregate report over stored requests",
                "parameters": [
                    {"type": "string", "description": "Sex", "name": "Sesso", "in": "query"},
                    {"type": "string", "description": "Education", "name": "TitoloStudio", "in": "query"},
                    {"type": "string", "description": "Real estate", "name": "InformazioniImmobile", "in": "query"},
                    {"type": "string", "description": "Purpose", "name": "ScopoFinanziamento", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/query.Report"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and database reachability",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "dto.PredictResponse": {
            "type": "object",
            "properties": {
                "classe_prevista": {"type": "string"},
                "probabilita_approvazione": {"type": "number"}
            }
        },
        "dto.ImportFailure": {
            "type": "object",
            "properties": {
                "RichiestaFinanziamentoID": {"type": "integer"},
                "errore": {"type": "string"},
                "indice": {"type": "integer"}
            }
        },
        "dto.ImportResponse": {
            "type": "object",
            "properties": {
                "errori": {"type": "array", "items": {"$ref": "#/definitions/dto.ImportFailure"}},
                "import_id": {"type": "string"},
                "importati": {"type": "integer"},
                "saltati": {"type": "integer"}
            }
        },
        "models.FinancingRequest": {
            "type": "object",
            "properties": {
                "RichiestaFinanziamentoID": {"type": "integer"},
                "Eta": {"type": "number"},
                "Sesso": {"type": "string"},
                "TitoloStudio": {"type": "string"},
                "RedditoLordoUltimoAnno": {"type": "number"},
                "AnniEsperienzaLavorativa": {"type": "number"},
                "InformazioniImmobile": {"type": "string"},
                "ImportoRichiesto": {"type": "number"},
                "ScopoFinanziamento": {"type": "string"},
                "TassoInteresseFinanziamento": {"type": "number"},
                "ImportoRichiestoDivisoReddito": {"type": "number"},
                "DurataDellaStoriaCreditiziaInAnni": {"type": "number"},
                "AffidabilitàCreditizia": {"type": "number"},
                "InadempienzeFinanziamentiPrecedenti": {"type": "string"},
                "ProbabilitaFinanziamentoApprovato": {"type": "number"}
            }
        },
        "query.Report": {
            "type": "object",
            "properties": {
                "totale_richieste": {"type": "integer"},
                "importo_totale": {"type": "number"},
                "importo_medio": {"type": "number"},
                "approvate": {"type": "integer"},
                "percentuale_approvate": {"type": "number"},
                "importo_medio_sesso": {"type": "object", "additionalProperties": {"type": "number"}},
                "importo_medio_approvato_sesso": {"type": "object", "additionalProperties": {"type": "number"}},
                "importo_medio_titolo": {"type": "object", "additionalProperties": {"type": "number"}},
                "importo_medio_approvato_titolo": {"type": "object", "additionalProperties": {"type": "number"}},
                "top10_importi": {"type": "array", "items": {"$ref": "#/definitions/models.FinancingRequest"}},
                "sesso_counts": {"type": "object", "additionalProperties": {"type": "integer"}},
                "immobile_importi": {"type": "object", "additionalProperties": {"type": "number"}},
                "titolo_importi": {"type": "object", "additionalProperties": {"type": "number"}},
                "scopo_importi": {"type": "object", "additionalProperties": {"type": "number"}},
                "scopo_counts": {"type": "object", "additionalProperties": {"type": "integer"}}
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
	Title:            "Loan Scorer API",
	Description:      "Scoring, import and reporting of loan financing requests",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
