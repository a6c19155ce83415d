package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Mentor Insight API",
        "description": "Mentor-facing analytics gateway with mock-data fallback",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Dashboard", "description": "Aggregated mentor overview"},
        {"name": "Reports", "description": "Learner roster, selection and certificate decisions"},
        {"name": "Exports", "description": "CSV, PDF and feedback report generation"},
        {"name": "Progress", "description": "Tracked students, course insights and feedback mail"}
    ],
    "paths": {
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Mentor dashboard overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/refresh": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Drop cached dashboard data and regenerate",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "Reports page payload",
                "parameters": [
                    {"name": "refresh", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/learners": {
            "get": {
                "tags": ["Reports"],
                "summary": "Filtered learner list",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "batchId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/learners/{id}/approve": {
            "post": {
                "tags": ["Reports"],
                "summary": "Approve certificate",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown learner"}
                }
            }
        },
        "/reports/learners/{id}/reject": {
            "post": {
                "tags": ["Reports"],
                "summary": "Reject certificate",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown learner"}
                }
            }
        },
        "/reports/learners/{id}/certificate": {
            "get": {
                "tags": ["Reports"],
                "summary": "Certificate path for an eligible learner",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown learner"},
                    "412": {"description": "Learner not eligible"}
                }
            }
        },
        "/reports/selection": {
            "get": {
                "tags": ["Reports"],
                "summary": "Current selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Reports"],
                "summary": "Clear selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/selection/{id}/toggle": {
            "post": {
                "tags": ["Reports"],
                "summary": "Toggle one learner in the selection",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/selection/select-all": {
            "post": {
                "tags": ["Reports"],
                "summary": "Replace selection with every visible learner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/exports/learners/csv": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export every learner as CSV",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/exports/selected/csv": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export selected learners as CSV",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No learners selected"}
                }
            }
        },
        "/reports/exports/selected/pdf": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export selected learners as PDF",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No learners selected"}
                }
            }
        },
        "/reports/exports/batches/{id}/csv": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export one batch as CSV",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing batch or empty roster"}
                }
            }
        },
        "/reports/exports/batches/{id}/feedback": {
            "post": {
                "tags": ["Exports"],
                "summary": "Generate batch feedback report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing batch or empty roster"}
                }
            }
        },
        "/reports/exports/learners/{id}/feedback": {
            "post": {
                "tags": ["Exports"],
                "summary": "Generate individual feedback report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown learner"}
                }
            }
        },
        "/reports/export/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a generated report",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "File stream"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        },
        "/progress/students": {
            "get": {
                "tags": ["Progress"],
                "summary": "Tracked students with filters and summary",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/progress/courses/{name}": {
            "get": {
                "tags": ["Progress"],
                "summary": "Engagement and activity insight for one course",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown course"}
                }
            }
        },
        "/progress/students/{id}/feedback": {
            "post": {
                "tags": ["Progress"],
                "summary": "Send feedback mail to a tracked student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown student"},
                    "422": {"description": "Invalid payload"}
                }
            }
        }
    },
    "definitions": {
        "Learner": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "batch_id": {"type": "string"},
                "batch_name": {"type": "string"},
                "progress": {"type": "integer"},
                "certificate_status": {"type": "string"},
                "completion_date": {"type": "string"},
                "final_score": {"type": "integer"}
            }
        },
        "Batch": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "total_enrolled": {"type": "integer"},
                "completed": {"type": "integer"},
                "avg_progress": {"type": "integer"}
            }
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            },
            "required": ["message"]
        },
        "ExportResponse": {
            "type": "object",
            "properties": {
                "exportId": {"type": "string"},
                "filename": {"type": "string"},
                "contentType": {"type": "string"},
                "downloadUrl": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
