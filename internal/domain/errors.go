package domain

import "errors"

var (
	// Ingestion errors
	ErrUnknownUploadType = errors.New("no mapping table registered for upload type")
	ErrUploadNotFound    = errors.New("upload batch not found")
	ErrEmptyFile         = errors.New("uploaded file contains no data rows")

	// Organization errors
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrDuplicateOrganization = errors.New("organization with this name already exists")
	ErrEmptyEntityName       = errors.New("entity name is empty")

	// Reporting errors
	ErrNoFinancialData = errors.New("no financial data found for this period")
	ErrReportNotFound  = errors.New("report not found")
)
