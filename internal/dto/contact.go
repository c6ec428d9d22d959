package dto

// Business categories. Every contact carries exactly one of these; the value
// is always derived from the classifier, never copied from the spreadsheet.
const (
	CategorySupplier = "SUPPLIER"
	CategoryCarrier  = "CARRIER"
	CategoryClient   = "CLIENT"
)

// Contact is the canonical unit of business data produced by a sheet sync.
// @Description A contact synced from the master spreadsheet or the WhatsApp gateway
type Contact struct {
	// Display name (never empty in pipeline output)
	Name string `json:"name" example:"Serraria Bom Pinho"`
	// One of SUPPLIER, CARRIER, CLIENT
	Category string `json:"category" example:"SUPPLIER"`
	// Free-text location, "unspecified" when the sheet has none
	City string `json:"city" example:"Avaré"`
	// Digit-only dialable number with country code, or "S/N" when unusable
	Phone string `json:"phone" example:"5514998876655"`
	// Free-text status, "active" when the sheet has none
	Status string `json:"status" example:"active"`
}

// FieldIndexMap maps the five semantic contact fields to zero-based column
// indices in a sheet tab. -1 means the column was not found. The JSON tags
// match the schema the AI mapper is asked to return.
type FieldIndexMap struct {
	Name     int `json:"nome"`
	Category int `json:"categoria"`
	City     int `json:"cidade"`
	Phone    int `json:"whatsapp"`
	Status   int `json:"status"`
}

// Resolved reports whether the mapping is usable: rows cannot be decoded
// without at least the name and phone columns.
func (m FieldIndexMap) Resolved() bool {
	return m.Name >= 0 && m.Phone >= 0
}

// SyncRequest selects which tab of the master spreadsheet to ingest.
// @Description Sheet sync request
type SyncRequest struct {
	// Tab identifier within the master spreadsheet
	GID string `json:"gid" binding:"required" example:"0"`
}
