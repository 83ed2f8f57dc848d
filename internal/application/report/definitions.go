// Package report exporta los listados de movimientos e inventario como PDF.
package report

import "sort"

// ColumnKind formato de una columna.
type ColumnKind int

const (
	Text ColumnKind = iota
	Number
	Date
	Money
)

// Column columna del reporte. Width en unidades de la grilla de 12.
type Column struct {
	Key   string
	Label string
	Width int
	Kind  ColumnKind
}

// Definition título y columnas de un tipo de reporte.
type Definition struct {
	Kind    string
	Title   string
	Columns []Column
}

var definitions = map[string]Definition{
	"inventory": {
		Kind:  "inventory",
		Title: "Reporte de inventario",
		Columns: []Column{
			{Key: "medicine", Label: "Medicamento", Width: 4},
			{Key: "dosage", Label: "Dosis", Width: 2},
			{Key: "stock", Label: "Stock", Width: 2},
			{Key: "available", Label: "Disponible", Width: 2, Kind: Number},
			{Key: "unavailable", Label: "No disponible", Width: 2, Kind: Number},
		},
	},
	"dispensations": {
		Kind:  "dispensations",
		Title: "Reporte de dispensaciones",
		Columns: []Column{
			{Key: "dispensationDate", Label: "Fecha", Width: 2, Kind: Date},
			{Key: "user", Label: "Paciente", Width: 3},
			{Key: "medicine", Label: "Medicamento", Width: 3},
			{Key: "batch", Label: "Lote", Width: 2},
			{Key: "quantity", Label: "Cantidad", Width: 2, Kind: Number},
		},
	},
	"exits": {
		Kind:  "exits",
		Title: "Reporte de salidas",
		Columns: []Column{
			{Key: "exitDate", Label: "Fecha", Width: 2, Kind: Date},
			{Key: "exitType", Label: "Tipo", Width: 2},
			{Key: "medicine", Label: "Medicamento", Width: 3},
			{Key: "batch", Label: "Lote", Width: 2},
			{Key: "stock", Label: "Stock", Width: 2},
			{Key: "quantity", Label: "Cant.", Width: 1, Kind: Number},
		},
	},
	"entries": {
		Kind:  "entries",
		Title: "Reporte de entradas",
		Columns: []Column{
			{Key: "entryDate", Label: "Fecha", Width: 2, Kind: Date},
			{Key: "movementType", Label: "Tipo", Width: 2},
			{Key: "medicine", Label: "Medicamento", Width: 3},
			{Key: "batch", Label: "Lote", Width: 2},
			{Key: "quantity", Label: "Cant.", Width: 1, Kind: Number},
			{Key: "totalCost", Label: "Valor total", Width: 2, Kind: Money},
		},
	},
}

// Lookup definición de kind.
func Lookup(kind string) (Definition, bool) {
	d, ok := definitions[kind]
	return d, ok
}

// Kinds tipos de reporte disponibles, ordenados.
func Kinds() []string {
	out := make([]string, 0, len(definitions))
	for k := range definitions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
