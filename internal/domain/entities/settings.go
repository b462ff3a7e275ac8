package entities

// BusinessSettings is the singleton shop configuration record. It has no id;
// the settings repository creates it lazily with these defaults on first read.
type BusinessSettings struct {
	BusinessName      string `json:"businessName"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Address           string `json:"address"`
	Whatsapp          string `json:"whatsapp"`
	LogoURL           string `json:"logoUrl"`
	BrandColor        string `json:"brandColor"`
	LowStockThreshold int    `json:"lowStockThreshold"`
	Schedule          string `json:"schedule"`

	// Message templates for manual WhatsApp dispatch. Placeholders:
	// {nombre} customer name, {equipo} device, {orden} order number.
	WhatsappTemplateCreated string `json:"whatsappTemplateCreated"`
	WhatsappTemplateReady   string `json:"whatsappTemplateReady"`
	WhatsappTemplateBudget  string `json:"whatsappTemplateBudget"`
}

func DefaultSettings() BusinessSettings {
	return BusinessSettings{
		BusinessName:            "Mi Taller",
		BrandColor:              "#2563eb",
		LowStockThreshold:       3,
		Schedule:                "Lun - Vie: 9:00 - 18:00\nSábado: 9:00 - 14:00",
		WhatsappTemplateCreated: "Hola {nombre}, su equipo {equipo} ha sido recibido. Su número de orden es: {orden}. Le mantendremos informado sobre el progreso.",
		WhatsappTemplateReady:   "Hola {nombre}, su equipo {equipo} está listo para recoger. Orden: {orden}. ¡Gracias por su preferencia!",
		WhatsappTemplateBudget:  "Hola {nombre}, el presupuesto de reparación de su equipo {equipo} está listo. Orden: {orden}. Puede revisarlo y aprobarlo en nuestro portal de clientes.",
	}
}
