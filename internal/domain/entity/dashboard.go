package entity

// InventoryMetrics totales del stock de la institución seleccionada.
type InventoryMetrics struct {
	Quantity struct {
		Available   int `json:"available"`
		Unavailable int `json:"unavailable"`
	} `json:"quantity"`
	Expired      int `json:"expired"`
	NearExpiring int `json:"nearExpiring"`
	LowStock     int `json:"lowStock"`
}

// MovementMetrics totales de movimientos por tipo en el período.
type MovementMetrics struct {
	Entries       int `json:"entries"`
	Exits         int `json:"exits"`
	Dispensations int `json:"dispensations"`
	Transfers     int `json:"transfers"`
}
