package entity

import "time"

// Category clasifica al hato por etapa productiva (nacimientos, desarrollo,
// producción, ...). También se usa para etiquetar líneas de factura y acotar
// a qué animales aplica un coste.
type Category struct {
	ID        string
	CompanyID string
	Name      string // único por empresa
	Active    bool
	CreatedAt time.Time
}

// Breed raza ganadera.
type Breed struct {
	ID        string
	CompanyID string
	Name      string // único por empresa
	Active    bool
	CreatedAt time.Time
}

// Location ubicación o lote dentro de la finca.
type Location struct {
	ID        string
	CompanyID string
	Name      string // único por empresa
	Active    bool
	CreatedAt time.Time
}
