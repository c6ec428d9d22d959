package handlers

import (
	"strings"

	"enside/madeiras-ops-worker/internal/dto"
)

// Keyword lists used to match column headers (and, as a fallback, first-row
// values) to the five semantic contact fields. Matching is done on normalized
// text: lowercased, accents stripped, letters only.
var (
	nameKeywords     = []string{"nome", "empresa", "cliente", "razao", "fantasia", "contato"}
	categoryKeywords = []string{"categoria", "cat", "tipo", "perfil", "classe"}
	cityKeywords     = []string{"cidade", "local", "uf", "municipio", "destino", "origem", "endereco"}
	phoneKeywords    = []string{"whatsapp", "fone", "tel", "celular", "telefone", "contato"}
	statusKeywords   = []string{"status", "obs", "situacao", "fase", "comentarios"}
)

// headerWords is the closed set of normalized values that mark a first data
// row as actually being a header row. Sheets using synonyms outside this list
// will mis-detect; the list is kept exact on purpose.
var headerWords = []string{"nome", "whatsapp", "categoria", "cidade", "status", "empresa"}

// ResolveHeaders maps column labels to the five semantic fields. When a field
// matches no label, the same keywords are tested against the sample row's
// values instead, which handles header-less tabs whose first row is data.
// Columns are scanned in order; the first match wins.
func ResolveHeaders(labels, sampleRow []string) dto.FieldIndexMap {
	find := func(keywords []string) int {
		for i, label := range labels {
			n := normalizeLabel(label)
			if n == "" {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(n, normalizeLabel(kw)) {
					return i
				}
			}
		}
		for i, val := range sampleRow {
			n := normalizeLabel(val)
			if n == "" {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(n, normalizeLabel(kw)) {
					return i
				}
			}
		}
		return -1
	}

	return dto.FieldIndexMap{
		Name:     find(nameKeywords),
		Category: find(categoryKeywords),
		City:     find(cityKeywords),
		Phone:    find(phoneKeywords),
		Status:   find(statusKeywords),
	}
}

// FirstRowIsHeader decides whether the first data row is itself a header row
// and must be skipped: any resolved column whose first-row value normalizes
// to one of the known header words marks the row as a header.
func FirstRowIsHeader(m dto.FieldIndexMap, firstRow []string) bool {
	for _, idx := range []int{m.Name, m.Category, m.City, m.Phone, m.Status} {
		if idx < 0 || idx >= len(firstRow) {
			continue
		}
		n := normalizeLabel(firstRow[idx])
		for _, w := range headerWords {
			if n == w {
				return true
			}
		}
	}
	return false
}

// normalizeLabel lowercases, strips Portuguese accents and drops everything
// that is not an ASCII letter.
func normalizeLabel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'á', 'à', 'ã', 'â', 'ä':
			b.WriteRune('a')
		case 'é', 'è', 'ê', 'ë':
			b.WriteRune('e')
		case 'í', 'ì', 'î', 'ï':
			b.WriteRune('i')
		case 'ó', 'ò', 'õ', 'ô', 'ö':
			b.WriteRune('o')
		case 'ú', 'ù', 'û', 'ü':
			b.WriteRune('u')
		case 'ç':
			b.WriteRune('c')
		default:
			if r >= 'a' && r <= 'z' {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
