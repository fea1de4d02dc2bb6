package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMask(t *testing.T) {
	tests := []struct {
		name  string
		value string
		mask  string
		want  string
	}{
		{"telephone full", "1199998888", TelephoneMask, "(11)9999-8888"},
		{"telephone partial", "119", TelephoneMask, "(11)9"},
		{"telephone already masked", "(11)9999-8888", TelephoneMask, "(11)9999-8888"},
		{"telephone surplus digits", "11999988887", TelephoneMask, "(11)9999-88887"},
		{"cpf full", "12345678900", CPFMask, "123.456.789-00"},
		{"cpf with junk", "123abc456 789-00", CPFMask, "123.456.789-00"},
		{"cpf partial stops before literal", "123", CPFMask, "123"},
		{"no digits", "abc", CPFMask, ""},
		{"empty", "", TelephoneMask, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyMask(tt.value, tt.mask))
		})
	}
}

func TestClientColumns(t *testing.T) {
	c := &Client{ID: 3, Name: "Ana", Telephone: "(11)1111-2222", BirthDate: Date(2001, time.February, 9), CPF: "111.222.333-44"}

	got := make(map[string]string)
	for _, col := range ClientColumns {
		got[col.ID] = col.Value(c)
	}

	assert.Equal(t, map[string]string{
		"id":           "3",
		FieldName:      "Ana",
		FieldTelephone: "(11)1111-2222",
		FieldBirthDate: "09/02/2001",
		FieldCPF:       "111.222.333-44",
	}, got)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("31/12/1999")
	require.NoError(t, err)
	assert.True(t, d.Equal(Date(1999, time.December, 31)))

	_, err = ParseDate("1999-12-31")
	assert.Error(t, err)

	assert.Equal(t, "", FormatDate(time.Time{}))
}
