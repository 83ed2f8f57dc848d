package session

import (
	"sync"
	"time"

	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// DraftItem medicamento del borrador con los lotes que propuso la vista previa.
type DraftItem struct {
	MedicineStockID  string                `json:"medicineStockId"`
	QuantityRequired int                   `json:"quantityRequired"`
	Batches          []entity.PreviewBatch `json:"batches"`
}

// DraftHeader datos generales de la dispensación en curso.
type DraftHeader struct {
	StockID string    `json:"stockId"`
	UserID  string    `json:"userId"`
	Date    time.Time `json:"date"`
}

// DraftSnapshot copia inmutable del borrador.
type DraftSnapshot struct {
	Header DraftHeader `json:"header"`
	Items  []DraftItem `json:"items"`
}

// Draft borrador de dispensación; vive solo en memoria.
type Draft struct {
	mu     sync.Mutex
	header DraftHeader
	items  []DraftItem
}

// SetHeader fija stock, paciente y fecha.
func (d *Draft) SetHeader(h DraftHeader) {
	d.mu.Lock()
	d.header = h
	d.mu.Unlock()
}

// Put añade el medicamento o reemplaza el existente con el mismo medicineStockId.
func (d *Draft) Put(item DraftItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].MedicineStockID == item.MedicineStockID {
			d.items[i] = item
			return
		}
	}
	d.items = append(d.items, item)
}

// Remove quita el medicamento; false si no estaba.
func (d *Draft) Remove(medicineStockID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].MedicineStockID == medicineStockID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot devuelve una copia del borrador.
func (d *Draft) Snapshot() DraftSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := make([]DraftItem, len(d.items))
	for i, it := range d.items {
		it.Batches = append([]entity.PreviewBatch(nil), it.Batches...)
		items[i] = it
	}
	return DraftSnapshot{Header: d.header, Items: items}
}

// Clear vacía el borrador.
func (d *Draft) Clear() {
	d.mu.Lock()
	d.header = DraftHeader{}
	d.items = nil
	d.mu.Unlock()
}
