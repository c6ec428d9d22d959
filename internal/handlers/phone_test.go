package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", PhoneNone},
		{"letters only", "sem numero", PhoneNone},
		{"too few digits", "1234567", PhoneNone},
		{"punctuation below minimum", "(14) 998", PhoneNone},
		{"eight digits gets prefix", "99887665", "5599887665"},
		{"landline with area code", "14 3733-1122", "551437331122"},
		{"mobile with area code and punctuation", "14 99887-6655", "5514998876655"},
		{"eleven digits gets prefix", "14998876655", "5514998876655"},
		{"already prefixed unchanged", "5514998876655", "5514998876655"},
		{"prefixed with punctuation", "+55 (14) 99887-6655", "5514998876655"},
		{"twelve digits without prefix passes through", "441notreal4998876655", "4414998876655"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizePhone(tc.input))
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"14 99887-6655", "99887665", "5514998876655", "abc"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once), "normalizing %q twice changed the result", in)
	}
}
