package flow

const (
	typePrompt    = "¿Qué tipo de gasto es? Elige una opción:"
	freeTipoAsk   = "Escríbeme qué tipo de gasto es ✍️"
	amountPrompt  = "¿Cuál es el monto del gasto? 💵 (envía solo el número)"
	amountInvalid = "Monto inválido. Envíame solo el número, por ejemplo: 12.50"
	commentPrompt = "Agrega un comentario sobre el gasto 📝 (escribe - para omitir)"
	methodPrompt  = "¿Cómo pagaste? Elige una opción:"
	savedNotice   = "✅ Gasto registrado correctamente."
	morePrompt    = "¿Quieres registrar otro gasto?\n\n1️⃣ Sí\n2️⃣ No"

	categoryPrompt    = "Selecciona la categoría de los gastos 📂"
	totalAmountPrompt = "¿Cuál es el monto total de los gastos? 💵 (envía solo el número)"
	dateRangePrompt   = "¿De qué fecha son los gastos? 📅\nEnvíame una fecha (02/05/2025) o un rango (01/05/2025 - 15/05/2025)"
	filesPrompt       = "Ahora envíame las facturas una por una 🧾\nCuando termines, escribe 0."
	filesNudge        = "Envíame una factura o escribe 0 para terminar."
	notAFile          = "Eso no parece una factura. Envíame una foto o un PDF 🧾"
)

var expenseTypes = []string{"Comida", "Transporte", "Servicios", "Otro"}

var paymentMethods = []string{"Efectivo", "Tarjeta", "Pago móvil", "Transferencia"}

var categories = []string{"Alimentación", "Transporte", "Servicios", "Mantenimiento", "Nómina", "Otros"}
