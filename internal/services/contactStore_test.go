package services

import (
	"testing"

	"enside/madeiras-ops-worker/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeFixture() *ContactStore {
	s := NewContactStore()
	s.Replace([]dto.Contact{
		{Name: "Serraria Bom Pinho", Category: dto.CategorySupplier, Phone: "5514998876655", City: "Avaré", Status: "active"},
		{Name: "Transportadora União", Category: dto.CategoryCarrier, Phone: "5514997770000", City: "Itapeva", Status: "active"},
		{Name: "Depósito do Zé", Category: dto.CategoryClient, Phone: "S/N", City: "Avaré", Status: "active"},
		{Name: "Construtora Alfa", Category: dto.CategoryClient, Phone: "55149", City: "Bauru", Status: "active"},
		{Name: "Madeireira Central", Category: dto.CategoryClient, Phone: "5514996660000", City: "Avaré", Status: "active"},
	})
	return s
}

func TestContactStore_ReplaceAndAll(t *testing.T) {
	s := storeFixture()
	assert.Equal(t, 5, s.Len())

	all := s.All()
	all[0].Name = "mutated"
	assert.Equal(t, "Serraria Bom Pinho", s.All()[0].Name, "All must return a copy")
}

func TestContactStore_FilterCategory(t *testing.T) {
	s := storeFixture()

	clients := s.FilterCategory(dto.CategoryClient)
	require.Len(t, clients, 1, "S/N and short numbers are unreachable")
	assert.Equal(t, "Madeireira Central", clients[0].Name)

	everyone := s.FilterCategory("")
	assert.Len(t, everyone, 3)
}

func TestContactStore_FilterList(t *testing.T) {
	s := storeFixture()

	// Raw numbers are normalized before matching.
	matched := s.FilterList([]string{"14 99887-6655", "5514996660000", "5500000000000"})
	require.Len(t, matched, 2)
	assert.Equal(t, "Serraria Bom Pinho", matched[0].Name)
	assert.Equal(t, "Madeireira Central", matched[1].Name)
}

func TestContactStore_Merge(t *testing.T) {
	s := storeFixture()

	added := s.Merge([]dto.Contact{
		{Name: "Serraria Bom Pinho", Phone: "5514998876655"},
		{Name: "Novo Contato", Phone: "5514990001111"},
		{Name: "Sem Número", Phone: "S/N"},
	})

	assert.Equal(t, 1, added, "duplicates and S/N contacts are skipped")
	assert.Equal(t, 6, s.Len())
}
