package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchOption(t *testing.T) {
	options := []string{"Comida", "Transporte", "Servicios", "Otro"}

	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"1", "Comida", true},
		{" 4 ", "Otro", true},
		{"transporte", "Transporte", true},
		{"SERVICIOS", "Servicios", true},
		{"0", "", false},
		{"5", "", false},
		{"comidas", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := matchOption(tc.input, options)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"12.50", "12.5", true},
		{"12,50", "12.5", true},
		{"$ 340", "340", true},
		{"0", "", false},
		{"-5", "", false},
		{"doce", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := parseAmount(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}
