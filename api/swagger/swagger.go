package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Admin API",
        "description": "Administrative backend: enrollment, attendance, fees, and reconciliation reports",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Enrollment and roster"},
        {"name": "Classes", "description": "Class and section hierarchy"},
        {"name": "Fees", "description": "Fee types and the payment ledger"},
        {"name": "Discounts", "description": "Approved fee discounts"},
        {"name": "Attendance", "description": "Daily attendance records"},
        {"name": "Reports", "description": "Per-student reconciliation reports"},
        {"name": "Dashboard", "description": "School-wide counters"},
        {"name": "AcademicYears", "description": "Academic year lookups"}
    ],
    "paths": {
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List all students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Enroll a new student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student and dependent records",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/for-fees": {
            "get": {
                "tags": ["Students"],
                "summary": "List active students for payment forms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/for-attendance": {
            "get": {
                "tags": ["Students"],
                "summary": "List active students ordered for attendance entry",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/for-report": {
            "get": {
                "tags": ["Students"],
                "summary": "List active students for report selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sections": {
            "get": {
                "tags": ["Classes"],
                "summary": "List sections, flat or grouped by class",
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "integer"},
                    {"name": "grouped", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fee-types": {
            "get": {
                "tags": ["Fees"],
                "summary": "List fee types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fees": {
            "get": {
                "tags": ["Fees"],
                "summary": "List the payment ledger",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Fees"],
                "summary": "Record a payment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/fees/{id}": {
            "delete": {
                "tags": ["Fees"],
                "summary": "Delete a payment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/discounts": {
            "post": {
                "tags": ["Discounts"],
                "summary": "Grant a discount",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GrantDiscountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/discounts/{studentId}": {
            "get": {
                "tags": ["Discounts"],
                "summary": "List a student's discounts",
                "parameters": [
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance for one day",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "description": "YYYY-MM-DD, defaults to today"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record or replace a student's attendance for a day",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/attendance/{id}": {
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete one attendance record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/student/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Full financial and attendance report for one student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "description": "Reference date YYYY-MM-DD, defaults to today"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "School-wide dashboard counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/latest-students": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Most recently enrolled students",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/academic-years": {
            "get": {
                "tags": ["AcademicYears"],
                "summary": "List academic years",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EnrollStudentRequest": {
            "type": "object",
            "required": ["first_name", "last_name", "section_id"],
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "gender": {"type": "string", "enum": ["male", "female"]},
                "birth_date": {"type": "string", "format": "date-time"},
                "address": {"type": "string"},
                "parent_guardian_name": {"type": "string"},
                "parent_phone": {"type": "string"},
                "parent_email": {"type": "string"},
                "admission_date": {"type": "string", "format": "date-time"},
                "section_id": {"type": "integer"},
                "academic_year_id": {"type": "integer"}
            }
        },
        "RecordPaymentRequest": {
            "type": "object",
            "required": ["student_id", "fee_type_id", "amount"],
            "properties": {
                "student_id": {"type": "string"},
                "fee_type_id": {"type": "integer"},
                "amount": {"type": "string"},
                "payment_date": {"type": "string", "format": "date-time"},
                "payment_method": {"type": "string"},
                "receipt_number": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "GrantDiscountRequest": {
            "type": "object",
            "required": ["student_id", "reason", "approved_by"],
            "properties": {
                "student_id": {"type": "string"},
                "amount": {"type": "string"},
                "percentage": {"type": "string"},
                "reason": {"type": "string"},
                "academic_year_id": {"type": "integer"},
                "approved_by": {"type": "string"},
                "approval_date": {"type": "string", "format": "date-time"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["student_id", "status"],
            "properties": {
                "student_id": {"type": "string"},
                "date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["present", "absent", "late"]},
                "time_in": {"type": "string"},
                "time_out": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "field": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
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
