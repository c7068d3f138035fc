package suggestion

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/procurement-core/internal/application/dto"
	appinventory "github.com/tu-usuario/procurement-core/internal/application/inventory"
	"github.com/tu-usuario/procurement-core/internal/application/requisition"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/procurement"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
	"github.com/tu-usuario/procurement-core/pkg/logger"
)

// UseCase genera las sugerencias de reposición por par SKU×bodega: compara el
// stock actual contra los umbrales del catálogo, asigna urgencia, calcula la
// cantidad recomendada con su costo estimado y marca los pares que ya tienen
// una requisición pendiente. Derivado y de solo lectura: se recalcula siempre.
type UseCase struct {
	snapshot *appinventory.SnapshotService
	pricing  *appinventory.PricingService
	skuRepo  repository.SKURepository
	reqRepo  repository.RequisitionRepository
	reqUC    *requisition.UseCase
	cache    ReportCache
	policy   procurement.Policy
	log      *logger.Logger
	workers  int
}

// NewUseCase construye el motor de sugerencias. workers acota el cálculo
// concurrente por par SKU×bodega.
func NewUseCase(
	snapshot *appinventory.SnapshotService,
	pricing *appinventory.PricingService,
	skuRepo repository.SKURepository,
	reqRepo repository.RequisitionRepository,
	reqUC *requisition.UseCase,
	cache ReportCache,
	policy procurement.Policy,
	log *logger.Logger,
	workers int,
) *UseCase {
	if workers <= 0 {
		workers = 8
	}
	return &UseCase{
		snapshot: snapshot,
		pricing:  pricing,
		skuRepo:  skuRepo,
		reqRepo:  reqRepo,
		reqUC:    reqUC,
		cache:    cache,
		policy:   policy,
		log:      log,
		workers:  workers,
	}
}

// GetReorderSuggestions devuelve las sugerencias ordenadas por urgencia
// (URGENT, HIGH, MEDIUM; empates por stock ascendente) más el resumen.
// warehouseID vacío = todas las bodegas. Una lista vacía es un resultado
// válido, no un error.
func (uc *UseCase) GetReorderSuggestions(ctx context.Context, warehouseID string) (*dto.SuggestionReportDTO, error) {
	if cached, ok, err := uc.cache.Get(ctx, warehouseID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		// el cache nunca tumba el reporte; se recalcula
		uc.log.Warn().Err(err).Msg("cache de sugerencias no disponible")
	}

	levels, err := uc.snapshot.AllLevels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	skus, err := uc.skuRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	skuByID := make(map[string]*entity.SKU, len(skus))
	for i := range skus {
		skuByID[skus[i].ID] = &skus[i]
	}

	pending, err := uc.pendingByWarehouse(ctx, warehouseID, levels)
	if err != nil {
		return nil, err
	}

	// Cálculo por par en paralelo acotado; cada par es independiente y no
	// se requiere orden entre ellos (se ordena al final).
	results := make([]*dto.ReorderSuggestionDTO, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i := range levels {
		g.Go(func() error {
			sku, ok := skuByID[levels[i].SKUID]
			if !ok {
				return nil // el lote apunta a un SKU retirado del catálogo
			}
			s, err := uc.buildSuggestion(gctx, sku, levels[i], pending[levels[i].WarehouseID])
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(results))
	for _, s := range results {
		if s != nil {
			suggestions = append(suggestions, *s)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		ri, rj := procurement.UrgencyRank(suggestions[i].Urgency), procurement.UrgencyRank(suggestions[j].Urgency)
		if ri != rj {
			return ri < rj
		}
		return suggestions[i].CurrentStock.LessThan(suggestions[j].CurrentStock)
	})

	report := &dto.SuggestionReportDTO{
		Suggestions: suggestions,
		Summary:     summarize(suggestions),
	}
	if err := uc.cache.Set(ctx, warehouseID, report); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo cachear el reporte de sugerencias")
	}
	return report, nil
}

// CreateDraftPRFromSuggestions crea una requisición DRAFT a partir de las
// sugerencias seleccionadas; las líneas replican SKU y cantidad recomendada.
func (uc *UseCase) CreateDraftPRFromSuggestions(ctx context.Context, actor entity.Actor, req dto.SuggestionSelectionRequest) (*entity.PurchaseRequisition, error) {
	// CreatePR invalida el reporte cacheado de la bodega al quedar la nueva
	// requisición en el conjunto pendiente.
	return uc.reqUC.CreatePR(ctx, actor, dto.CreateRequisitionRequest{
		WarehouseID: req.WarehouseID,
		Priority:    req.Priority,
		Items:       req.Items,
	})
}

// buildSuggestion evalúa un par SKU×bodega; nil si no amerita sugerencia.
func (uc *UseCase) buildSuggestion(ctx context.Context, sku *entity.SKU, level repository.StockLevelResult, pendingSKUs map[string]bool) (*dto.ReorderSuggestionDTO, error) {
	urgency := uc.policy.ClassifyUrgency(level.CurrentStock, sku.MinStock)
	if urgency == procurement.UrgencyNone {
		return nil, nil
	}

	qty := uc.policy.RecommendedOrderQty(level.CurrentStock, sku.MinStock, sku.MaxCapacity)
	s := &dto.ReorderSuggestionDTO{
		SKUID:          sku.ID,
		SKUCode:        sku.Code,
		SKUName:        sku.Name,
		WarehouseID:    level.WarehouseID,
		CurrentStock:   level.CurrentStock,
		MinStock:       sku.MinStock,
		RecommendedQty: qty,
		Urgency:        urgency,
		HasPendingPR:   pendingSKUs[sku.ID],
	}

	if qty.GreaterThan(decimal.Zero) {
		quote, err := uc.pricing.Resolve(ctx, sku.ID, "", qty)
		switch {
		case err == nil:
			s.SupplierID = quote.SupplierID
			s.SupplierName = quote.SupplierName
			s.UnitCost = quote.UnitCost
			s.EstimatedCost = quote.TotalCost
		case errors.Is(err, domain.ErrNoSupplierPricing):
			// sin lista de proveedor: estimar con el costo del catálogo
			s.UnitCost = sku.UnitCost
			s.EstimatedCost = sku.UnitCost.Mul(qty)
		default:
			return nil, err
		}
	}
	return s, nil
}

// pendingByWarehouse junta, por bodega presente en los niveles, el conjunto de
// SKUs que ya tienen requisición en DRAFT/SUBMITTED/APPROVED.
func (uc *UseCase) pendingByWarehouse(ctx context.Context, warehouseID string, levels []repository.StockLevelResult) (map[string]map[string]bool, error) {
	warehouses := map[string]bool{}
	if warehouseID != "" {
		warehouses[warehouseID] = true
	} else {
		for _, l := range levels {
			warehouses[l.WarehouseID] = true
		}
	}

	pending := make(map[string]map[string]bool, len(warehouses))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for id := range warehouses {
		g.Go(func() error {
			set, err := uc.reqRepo.PendingSKUs(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			pending[id] = set
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pending, nil
}

// summarize agrega conteos por urgencia y costo total estimado.
func summarize(suggestions []dto.ReorderSuggestionDTO) dto.SuggestionSummaryDTO {
	var summary dto.SuggestionSummaryDTO
	summary.TotalEstimatedCost = decimal.Zero
	for _, s := range suggestions {
		switch s.Urgency {
		case procurement.UrgencyUrgent:
			summary.Urgent++
		case procurement.UrgencyHigh:
			summary.High++
		case procurement.UrgencyMedium:
			summary.Medium++
		}
		summary.TotalEstimatedCost = summary.TotalEstimatedCost.Add(s.EstimatedCost)
	}
	return summary
}
