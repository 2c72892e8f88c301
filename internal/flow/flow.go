// Package flow implements the two expense sub-dialogues: a single expense
// with one receipt, and a category batch with one row appended per receipt.
package flow

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Scratch keys in session.Data. Owned by the flows; the router never reads
// them.
const (
	keyTipo       = "tipo"
	keyMonto      = "monto"
	keyComentario = "comentario"
	keyMetodo     = "metodo"
	keyCategoria  = "categoria"
	keyFecha      = "fecha"
	keyFileURL    = "fileUrl"
)

// matchOption resolves a user's reply against a numbered option list: the
// number (1-based) or the option label itself, case-insensitively.
func matchOption(input string, options []string) (string, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(s, opt) {
			return opt, true
		}
	}
	return "", false
}

// parseAmount validates a money amount and returns its canonical form.
// A comma is accepted as the decimal separator.
func parseAmount(input string) (string, bool) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return "", false
	}
	return d.String(), true
}
