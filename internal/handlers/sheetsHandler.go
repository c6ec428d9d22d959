package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"enside/madeiras-ops-worker/internal/dto"
)

const (
	// DefaultSheetID is the master spreadsheet of the operation.
	DefaultSheetID = "1FiP885Or0ncyRG_ZZaAvM2vP0sHhDzhLFYifYLjKyIE"
	// DefaultFetchTimeout bounds one GVIZ fetch.
	DefaultFetchTimeout = 20 * time.Second

	// CityUnknown fills the city field when the sheet has none.
	CityUnknown = "unspecified"
	// StatusActive fills the status field when the sheet has none.
	StatusActive = "active"

	// placeholderName marks rows whose name column could not be decoded;
	// such rows never reach the pipeline output.
	placeholderName = "Registro Indefinido"

	defaultSheetsBaseURL = "https://docs.google.com/spreadsheets"
)

// Errors returned by the ingestion pipeline. Both abort the whole call;
// callers must treat "no data" as a degraded state rather than showing stale
// contacts.
var (
	// ErrSourceUnavailable means the spreadsheet endpoint could not be
	// reached or refused the request.
	ErrSourceUnavailable = errors.New("spreadsheet source unavailable")
	// ErrBadFormat means the response could not be parsed into a table.
	ErrBadFormat = errors.New("unexpected spreadsheet response format")
)

// The GVIZ endpoint wraps its JSON in a JS callback; the payload has to be
// cut out of the envelope before parsing.
var gvizEnvelopeRe = regexp.MustCompile(`google\.visualization\.Query\.setResponse\(([\s\S]*)\)`)

// SchemaMapper resolves spreadsheet columns to semantic fields when the local
// keyword heuristics fail. Injectable so tests can use a deterministic stub.
type SchemaMapper interface {
	MapSchema(ctx context.Context, headers, sampleRow []string) (*dto.FieldIndexMap, error)
}

// SheetsHandler ingests contact tabs from the master spreadsheet: fetch,
// envelope extraction, header resolution, row decoding, phone normalization
// and classification.
type SheetsHandler struct {
	sheetID    string
	baseURL    string
	httpClient *http.Client
	mapper     SchemaMapper

	mu          sync.Mutex
	schemaCache map[string]dto.FieldIndexMap
}

// NewSheetsHandler creates a new SheetsHandler for the given spreadsheet.
func NewSheetsHandler(sheetID string) *SheetsHandler {
	if sheetID == "" {
		sheetID = DefaultSheetID
	}
	return &SheetsHandler{
		sheetID:     sheetID,
		baseURL:     defaultSheetsBaseURL,
		httpClient:  &http.Client{Timeout: DefaultFetchTimeout},
		schemaCache: make(map[string]dto.FieldIndexMap),
	}
}

// SetSchemaMapper enables the AI escalation path for tabs whose headers the
// heuristics cannot resolve.
func (h *SheetsHandler) SetSchemaMapper(m SchemaMapper) {
	h.mapper = m
}

// SetBaseURL overrides the spreadsheet endpoint (used in tests).
func (h *SheetsHandler) SetBaseURL(url string) {
	h.baseURL = strings.TrimSuffix(url, "/")
}

// ResetSchemaCache drops all cached per-tab column mappings.
func (h *SheetsHandler) ResetSchemaCache() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.schemaCache = make(map[string]dto.FieldIndexMap)
}

// gvizResponse mirrors the subset of the GVIZ table payload the pipeline
// reads: column labels plus row cells with a value and an optional
// formula-rendered display string.
type gvizResponse struct {
	Table struct {
		Cols []gvizCol `json:"cols"`
		Rows []gvizRow `json:"rows"`
	} `json:"table"`
}

type gvizCol struct {
	Label string `json:"label"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

type gvizCell struct {
	V interface{} `json:"v"`
	F string      `json:"f"`
}

// FetchContacts ingests one tab and returns its clean contact list. Network
// or envelope failures abort the whole call; a malformed row is skipped, not
// fatal.
func (h *SheetsHandler) FetchContacts(ctx context.Context, gid string) ([]dto.Contact, error) {
	payload, err := h.fetchTable(ctx, gid)
	if err != nil {
		return nil, err
	}

	cols := payload.Table.Cols
	rows := payload.Table.Rows
	if len(rows) == 0 {
		log.Printf("[SheetsHandler] Tab %s is empty", gid)
		return []dto.Contact{}, nil
	}

	firstRow := rowValues(rows[0], len(cols))

	// Display headers: column label, else the first row's value, else a
	// positional placeholder. Only used for the AI escalation prompt.
	headers := make([]string, len(cols))
	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
		switch {
		case c.Label != "":
			headers[i] = c.Label
		case i < len(firstRow) && firstRow[i] != "":
			headers[i] = firstRow[i]
		default:
			headers[i] = fmt.Sprintf("Coluna %d", i)
		}
	}

	idxMap := ResolveHeaders(labels, firstRow)
	if !idxMap.Resolved() {
		idxMap = h.escalateSchema(ctx, gid, headers, rows, idxMap)
	}

	start := 0
	if FirstRowIsHeader(idxMap, firstRow) {
		start = 1
	}

	contacts := make([]dto.Contact, 0, len(rows)-start)
	for _, row := range rows[start:] {
		c, ok := decodeRow(row, idxMap)
		if !ok {
			continue
		}
		contacts = append(contacts, c)
	}

	log.Printf("[SheetsHandler] Tab %s: %d rows decoded into %d contacts", gid, len(rows)-start, len(contacts))
	return contacts, nil
}

// fetchTable performs the GVIZ request and unwraps the callback envelope.
func (h *SheetsHandler) fetchTable(ctx context.Context, gid string) (*gvizResponse, error) {
	url := fmt.Sprintf("%s/d/%s/gviz/tq?tqx=out:json&gid=%s", h.baseURL, h.sheetID, gid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		log.Printf("[SheetsHandler] Fetch failed for gid %s: %v", gid, err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SheetsHandler] Spreadsheet returned status %d for gid %s", resp.StatusCode, gid)
		return nil, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	match := gvizEnvelopeRe.FindSubmatch(body)
	if match == nil {
		log.Printf("[SheetsHandler] No GVIZ envelope in response for gid %s", gid)
		return nil, fmt.Errorf("%w: missing setResponse envelope", ErrBadFormat)
	}

	var payload gvizResponse
	if err := json.Unmarshal(match[1], &payload); err != nil {
		log.Printf("[SheetsHandler] Failed to parse GVIZ payload for gid %s: %v", gid, err)
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	return &payload, nil
}

// escalateSchema asks the AI mapper for a column mapping when the heuristics
// left name or phone unresolved. The result is trusted as-is and cached per
// tab so the call happens at most once per process lifetime. A mapper failure
// leaves the heuristic mapping in place; downstream this usually means every
// row is discarded, which the caller surfaces as an empty sync.
func (h *SheetsHandler) escalateSchema(ctx context.Context, gid string, headers []string, rows []gvizRow, heuristic dto.FieldIndexMap) dto.FieldIndexMap {
	h.mu.Lock()
	cached, ok := h.schemaCache[gid]
	h.mu.Unlock()
	if ok {
		return cached
	}

	if h.mapper == nil {
		log.Printf("[SheetsHandler] Heuristics inconclusive for gid %s and no schema mapper configured", gid)
		return heuristic
	}

	var sampleRow []string
	if len(rows) > 1 {
		sampleRow = rowValues(rows[1], len(headers))
	}

	log.Printf("[SheetsHandler] Heuristics inconclusive for gid %s, escalating to schema mapper", gid)
	mapped, err := h.mapper.MapSchema(ctx, headers, sampleRow)
	if err != nil || mapped == nil {
		log.Printf("[SheetsHandler] Schema mapper failed for gid %s: %v (keeping heuristic mapping)", gid, err)
		return heuristic
	}

	h.mu.Lock()
	h.schemaCache[gid] = *mapped
	h.mu.Unlock()

	return *mapped
}

// decodeRow reads the five fields out of one row. Returns ok=false for rows
// with no usable name, which are filtered out of the batch.
func decodeRow(row gvizRow, m dto.FieldIndexMap) (dto.Contact, bool) {
	name := cellValue(row, m.Name)
	if name == "" {
		name = placeholderName
	}
	if name == placeholderName || utf8.RuneCountInString(name) <= 1 {
		return dto.Contact{}, false
	}

	rawCategory := strings.ToUpper(cellValue(row, m.Category))
	city := cellValue(row, m.City)
	if city == "" {
		city = CityUnknown
	}
	status := cellValue(row, m.Status)
	if status == "" {
		status = StatusActive
	}

	return dto.Contact{
		Name:     name,
		Category: ClassifyContact(name, rawCategory),
		City:     city,
		Phone:    NormalizePhone(cellValue(row, m.Phone)),
		Status:   status,
	}, true
}

// cellValue extracts a cell's display string: the raw value when present,
// else the formula-rendered string. Numeric cells (sheets often store phone
// numbers as numbers) are rendered without an exponent.
func cellValue(row gvizRow, idx int) string {
	if idx < 0 || idx >= len(row.C) || row.C[idx] == nil {
		return ""
	}
	cell := row.C[idx]
	if cell.V == nil {
		return strings.TrimSpace(cell.F)
	}
	switch v := cell.V.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// rowValues renders every cell of a row, padded to width.
func rowValues(row gvizRow, width int) []string {
	if width < len(row.C) {
		width = len(row.C)
	}
	values := make([]string, width)
	for i := range row.C {
		values[i] = cellValue(row, i)
	}
	return values
}
