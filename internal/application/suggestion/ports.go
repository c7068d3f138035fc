package suggestion

import (
	"context"

	"github.com/tu-usuario/procurement-core/internal/application/dto"
)

// ReportCache cachea el reporte de sugerencias por filtro de bodega.
// La implementación Redis vive en infrastructure/cache; hay una variante noop
// para cuando el cache está deshabilitado.
type ReportCache interface {
	Get(ctx context.Context, warehouseID string) (*dto.SuggestionReportDTO, bool, error)
	Set(ctx context.Context, warehouseID string, report *dto.SuggestionReportDTO) error
	Invalidate(ctx context.Context, warehouseID string) error
}
