package sheets

// Record is one finished expense ready for the spreadsheet.
type Record struct {
	// Multiple marks a row produced by the batched flow; the method column
	// then carries a fixed label instead of a user-chosen payment method.
	Multiple bool
	// Tipo is the expense type (single flow) or category (multi flow).
	Tipo string
	// Fecha is the user-declared expense date or date range. Empty means
	// "today" for single expenses.
	Fecha      string
	Monto      string
	Comentario string
	Metodo     string
}

// MultipleMethodLabel fills the method column for batched expenses.
const MultipleMethodLabel = "Pago múltiple"
