package router

// MenuText greets the user and lists the two reporting modes.
const MenuText = "¡Bienvenido al bot de gestión de gastos! 🤖\n\n" +
	"¿Qué quieres hacer?\n\n" +
	"1️⃣ Reportar gasto individual (una sola factura)\n" +
	"2️⃣ Reportar gastos por categoría (múltiples facturas)\n\n" +
	"Escribe el número de la opción que deseas utilizar.\n" +
	"(Puedes escribir 000 en cualquier momento para reiniciar)"

// ReceiptPrompt starts the single-expense flow.
const ReceiptPrompt = "Envíame una foto o PDF de tu factura para comenzar 🧾"

// WrongStateReminder answers media sent outside a file-collecting state.
const WrongStateReminder = "Por favor, sigue las instrucciones anteriores antes de enviar archivos 🙏"
