package handlers

import (
	"strings"

	"enside/madeiras-ops-worker/internal/dto"
)

// ClassifyContact assigns a business category from the contact name and the
// raw category text found in the source row. The keyword rules deliberately
// override whatever label the spreadsheet carries: a row labelled "cliente"
// whose name contains "serraria" is still a supplier. Rules are ordered,
// first match wins.
func ClassifyContact(name, rawCategory string) string {
	n := strings.ToLower(name)
	cat := strings.ToUpper(rawCategory)

	switch {
	case strings.Contains(n, "serraria") || strings.Contains(n, "madeireira") ||
		strings.Contains(cat, "FORN") || strings.Contains(cat, "PROD"):
		return dto.CategorySupplier
	case strings.Contains(n, "frete") || strings.Contains(n, "transport") ||
		strings.Contains(cat, "TRANS") || strings.Contains(cat, "LOG"):
		return dto.CategoryCarrier
	default:
		return dto.CategoryClient
	}
}
