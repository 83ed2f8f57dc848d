package movement

import (
	"context"

	"github.com/jhoicas/farmacia-console/internal/application/dto"
	"github.com/jhoicas/farmacia-console/internal/application/query"
	"github.com/jhoicas/farmacia-console/internal/domain/entity"
)

// ExitAPI registro de salidas.
type ExitAPI interface {
	Register(ctx context.Context, req dto.RegisterExitRequest) error
}

// TransferAPI creación de traslados.
type TransferAPI interface {
	Create(ctx context.Context, req dto.CreateTransferRequest) error
}

// DispensationAPI vista previa y registro de dispensaciones.
type DispensationAPI interface {
	Preview(ctx context.Context, medicineStockID string, quantityRequired int) ([]entity.PreviewBatch, error)
	Register(ctx context.Context, req dto.RegisterDispensationRequest) error
}

// EntryAPI registro de entradas.
type EntryAPI interface {
	Register(ctx context.Context, req dto.EntryForm) error
}

// Invalidator marca consultas como obsoletas tras una mutación (*query.Cache).
type Invalidator interface {
	Invalidate(entities ...query.Entity)
}
