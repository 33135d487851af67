package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scoper API",
        "description": "Crowdsourced Canadian internship salary API",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    },
    "tags": [
        {"name": "Salaries", "description": "Submission and published reports"},
        {"name": "Companies", "description": "Per-company drill-down"},
        {"name": "Locations", "description": "Per-location drill-down"},
        {"name": "Reference", "description": "Autocomplete vocabularies"},
        {"name": "Analytics", "description": "Dashboard aggregates"},
        {"name": "Admin", "description": "Moderation and maintenance"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/submit-salary": {
            "post": {
                "tags": ["Salaries"],
                "summary": "Submit a salary report for moderation",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitSalaryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Queued for review", "schema": {"$ref": "#/definitions/SubmissionAccepted"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ValidationEnvelope"}}
                }
            }
        },
        "/all-salaries": {
            "get": {
                "tags": ["Salaries"],
                "summary": "List published salary reports",
                "parameters": [
                    {"name": "offset", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Bare array without paging parameters, {data, total} with them"}
                }
            }
        },
        "/all-companies": {
            "get": {
                "tags": ["Companies"],
                "summary": "List distinct company names",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/all-locations": {
            "get": {
                "tags": ["Locations"],
                "summary": "List distinct locations",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/all-universities": {
            "get": {
                "tags": ["Reference"],
                "summary": "List known university names",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/all-roles": {
            "get": {
                "tags": ["Reference"],
                "summary": "List known role names",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/internship-roles": {
            "get": {
                "tags": ["Reference"],
                "summary": "List the curated internship role suggestions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/company/all-salaries": {
            "get": {
                "tags": ["Companies"],
                "summary": "List reports for one company",
                "parameters": [
                    {"name": "company", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReportedSalary"}}}
                }
            }
        },
        "/company/average-salary": {
            "get": {
                "tags": ["Companies"],
                "summary": "Average hourly salary for one company",
                "parameters": [
                    {"name": "company", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "number"}}
                }
            }
        },
        "/company/top-university": {
            "get": {
                "tags": ["Companies"],
                "summary": "Most reported university for one company",
                "parameters": [
                    {"name": "company", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "One-element array", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/company/top-location": {
            "get": {
                "tags": ["Companies"],
                "summary": "Most reported location for one company",
                "parameters": [
                    {"name": "company", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "One-element array", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/location/all-salaries": {
            "get": {
                "tags": ["Locations"],
                "summary": "List reports for one location",
                "parameters": [
                    {"name": "location", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReportedSalary"}}}
                }
            }
        },
        "/location/average-salary": {
            "get": {
                "tags": ["Locations"],
                "summary": "Average hourly salary for one location",
                "parameters": [
                    {"name": "location", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "number"}}
                }
            }
        },
        "/location/top-university": {
            "get": {
                "tags": ["Locations"],
                "summary": "Most reported university for one location",
                "parameters": [
                    {"name": "location", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "One-element array", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/location/top-company": {
            "get": {
                "tags": ["Locations"],
                "summary": "Most reported company for one location",
                "parameters": [
                    {"name": "location", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "One-element array", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/analytics/overview": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Headline metrics over the published reports",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AnalyticsOverview"}}
                }
            }
        },
        "/analytics/salary-trends": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-year salary averages and medians",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/top-companies": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Best-paying companies",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/top-universities": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Best-paid universities",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/top-locations": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Best-paid locations",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/top-roles": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Best-paid roles",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/salary-distribution": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Salary counts across fixed hourly ranges",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/company-comparison": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Side-by-side stats for a comma-separated company list",
                "parameters": [
                    {"name": "companies", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/yearly-growth": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Year-over-year submission growth",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/salary-by-term": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Average salary per work term",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/analytics/market-insights": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Percentiles, recency comparison and headline counts",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/pending-submissions": {
            "get": {
                "tags": ["Admin"],
                "summary": "List submissions awaiting review",
                "security": [{"BasicAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Bad credentials"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/admin/approve/{id}": {
            "post": {
                "tags": ["Admin"],
                "summary": "Publish a pending submission",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Approved"},
                    "404": {"description": "Submission not found"}
                }
            }
        },
        "/admin/reject/{id}": {
            "post": {
                "tags": ["Admin"],
                "summary": "Reject a pending submission",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Rejected"},
                    "404": {"description": "Submission not found"}
                }
            }
        },
        "/admin/populate-db": {
            "get": {
                "tags": ["Admin"],
                "summary": "Seed the database from the bundled survey data",
                "security": [{"BasicAuth": []}],
                "responses": {
                    "200": {"description": "Seeded"},
                    "429": {"description": "Rate limited"}
                }
            }
        },
        "/admin/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download the published reports as CSV or PDF",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "SubmitSalaryRequest": {
            "type": "object",
            "required": ["company", "role", "salary", "year", "university", "arrangement"],
            "properties": {
                "company": {"type": "string"},
                "role": {"type": "string"},
                "salary": {"type": "number"},
                "year": {"type": "integer"},
                "university": {"type": "string"},
                "location": {"type": "string"},
                "bonus": {"type": "number"},
                "term": {"type": "integer", "minimum": 1, "maximum": 7},
                "arrangement": {"type": "string", "enum": ["Hybrid", "In-Office", "Remote"]}
            }
        },
        "SubmissionAccepted": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "ReportedSalary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "company": {"type": "string"},
                "role": {"type": "string"},
                "salary": {"type": "number"},
                "year": {"type": "integer"},
                "university": {"type": "string"},
                "location": {"type": "string"},
                "bonus": {"type": "number"},
                "term": {"type": "integer"},
                "arrangement": {"type": "string"}
            }
        },
        "AnalyticsOverview": {
            "type": "object",
            "properties": {
                "total_reports": {"type": "integer"},
                "avg_salary": {"type": "number"},
                "median_salary": {"type": "number"},
                "top_paying_company": {"type": "string"},
                "top_paying_company_avg": {"type": "number"},
                "most_reported_company": {"type": "string"},
                "most_reported_company_count": {"type": "integer"},
                "total_companies": {"type": "integer"},
                "total_universities": {"type": "integer"},
                "total_locations": {"type": "integer"}
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
        "ValidationEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"},
                "fields": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
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
