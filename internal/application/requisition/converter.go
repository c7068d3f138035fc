package requisition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/procurement-core/internal/application/dto"
	"github.com/tu-usuario/procurement-core/internal/application/inventory"
	"github.com/tu-usuario/procurement-core/internal/domain"
	"github.com/tu-usuario/procurement-core/internal/domain/entity"
	"github.com/tu-usuario/procurement-core/internal/domain/repository"
	"github.com/tu-usuario/procurement-core/pkg/logger"
)

// Converter orquesta la conversión de una requisición APPROVED en órdenes de
// compra: resuelve proveedor por línea, agrupa por proveedor y crea una orden
// por grupo. Semántica de fallo parcial: las líneas sin precio de proveedor se
// reportan como fallidas en el manifiesto mientras las demás sí generan orden.
// El cambio de estado de la requisición y los inserts de las órdenes ocurren
// en una sola transacción, con el compare-and-swap sobre Version.
type Converter struct {
	pricing      *inventory.PricingService
	supplierRepo repository.SupplierRepository
	tx           TxRunner
	log          *logger.Logger
	workers      int
}

// NewConverter construye el orquestador de conversión. workers acota la
// resolución de precios concurrente por línea.
func NewConverter(
	pricing *inventory.PricingService,
	supplierRepo repository.SupplierRepository,
	tx TxRunner,
	log *logger.Logger,
	workers int,
) *Converter {
	if workers <= 0 {
		workers = 4
	}
	return &Converter{
		pricing:      pricing,
		supplierRepo: supplierRepo,
		tx:           tx,
		log:          log,
		workers:      workers,
	}
}

// resolvedItem línea con su cotización resuelta (o el motivo de fallo).
type resolvedItem struct {
	item  entity.RequisitionItem
	quote *inventory.PriceQuote
	err   error
}

// Convert ejecuta la conversión. El llamador ya validó rol y estado APPROVED;
// version es el token de concurrencia leído por el llamador.
func (c *Converter) Convert(ctx context.Context, pr *entity.PurchaseRequisition, version int64) (*dto.ConversionManifestDTO, error) {
	// Un error de infraestructura al cotizar (timeout del almacén, DB caída)
	// aborta la conversión completa: la requisición queda APPROVED y el
	// llamador puede reintentar. El fallo por línea queda reservado para
	// ErrNoSupplierPricing.
	resolved, err := c.resolveAll(ctx, pr.Items)
	if err != nil {
		return nil, storeErr(err)
	}

	// Agrupar líneas resueltas por proveedor preservando el orden de la requisición.
	groups := map[string][]resolvedItem{}
	supplierOrder := []string{}
	failed := 0
	for _, r := range resolved {
		if r.err != nil {
			failed++
			continue
		}
		if _, ok := groups[r.quote.SupplierID]; !ok {
			supplierOrder = append(supplierOrder, r.quote.SupplierID)
		}
		groups[r.quote.SupplierID] = append(groups[r.quote.SupplierID], r)
	}

	if len(groups) == 0 {
		c.log.Warn().
			Str("requisition", pr.Number).
			Int("items", len(pr.Items)).
			Msg("conversión sin líneas convertibles")
		return nil, fmt.Errorf("requisición %s: %w", pr.Number, domain.ErrConversionFailed)
	}
	sort.Strings(supplierOrder)

	orders := make([]*entity.PurchaseOrder, 0, len(groups))
	now := time.Now()
	for _, supplierID := range supplierOrder {
		po, err := c.buildOrder(ctx, pr, supplierID, groups[supplierID], now)
		if err != nil {
			return nil, storeErr(err)
		}
		orders = append(orders, po)
	}

	// Transacción única: inserts de órdenes + transición de estado con CAS.
	// Nada es visible hasta que todos los resultados de grupo se conocen.
	err = c.tx.RunConversion(ctx, func(
		reqRepo repository.RequisitionRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		for _, po := range orders {
			if err := poRepo.Create(ctx, po); err != nil {
				return fmt.Errorf("crear orden %s: %w", po.Number, err)
			}
		}
		pr.Status = entity.StatusConvertedToPO
		pr.UpdatedAt = now
		return reqRepo.UpdateVersioned(ctx, pr, version)
	})
	if err != nil {
		// rollback implícito: la requisición sigue APPROVED en la DB
		pr.Status = entity.StatusApproved
		return nil, storeErr(err)
	}

	manifest := c.buildManifest(pr, orders, resolved, failed)
	c.log.Info().
		Str("requisition", pr.Number).
		Int("orders", len(orders)).
		Int("failed_items", failed).
		Msg("requisición convertida a órdenes de compra")
	return manifest, nil
}

// resolveAll resuelve la cotización de cada línea con un pool acotado.
// Los resultados conservan la posición de la línea original. Un error que no
// sea ErrNoSupplierPricing se propaga y descarta el resultado parcial.
func (c *Converter) resolveAll(ctx context.Context, items []entity.RequisitionItem) ([]resolvedItem, error) {
	resolved := make([]resolvedItem, len(items))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range items {
		g.Go(func() error {
			quote, err := c.pricing.Resolve(gctx, items[i].SKUID, "", items[i].Quantity)
			// ErrNoSupplierPricing es fallo por línea, no aborta el grupo.
			if err != nil && !errors.Is(err, domain.ErrNoSupplierPricing) {
				return err
			}
			mu.Lock()
			resolved[i] = resolvedItem{item: items[i], quote: quote, err: err}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cotizar líneas: %w", err)
	}
	return resolved, nil
}

// buildOrder arma la orden de un grupo de proveedor con costos resueltos y
// entrega esperada según el lead time del proveedor.
func (c *Converter) buildOrder(ctx context.Context, pr *entity.PurchaseRequisition, supplierID string, group []resolvedItem, now time.Time) (*entity.PurchaseOrder, error) {
	supplier, err := c.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.PurchaseOrderItem, len(group))
	for i, r := range group {
		items[i] = entity.PurchaseOrderItem{
			SKUID:    r.item.SKUID,
			Quantity: r.item.Quantity,
			UnitCost: r.quote.UnitCost,
		}
	}

	var expected *time.Time
	if supplier.LeadTimeDays > 0 {
		t := now.AddDate(0, 0, supplier.LeadTimeDays)
		expected = &t
	}

	return &entity.PurchaseOrder{
		ID:               uuid.NewString(),
		Number:           nextNumber("PO"),
		SupplierID:       supplier.ID,
		RequisitionID:    pr.ID,
		WarehouseID:      pr.WarehouseID,
		Status:           entity.POStatusPending,
		Items:            items,
		OrderedAt:        now,
		ExpectedDelivery: expected,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// buildManifest arma el manifiesto por ítem: orden asignada o motivo de fallo.
func (c *Converter) buildManifest(pr *entity.PurchaseRequisition, orders []*entity.PurchaseOrder, resolved []resolvedItem, failed int) *dto.ConversionManifestDTO {
	poBySupplier := map[string]*entity.PurchaseOrder{}
	poDTOs := make([]dto.PurchaseOrderDTO, len(orders))
	for i, po := range orders {
		poBySupplier[po.SupplierID] = po
		poDTOs[i] = dto.FromPurchaseOrder(po)
	}

	items := make([]dto.ConversionItemResult, len(resolved))
	for i, r := range resolved {
		if r.err != nil {
			items[i] = dto.ConversionItemResult{
				SKUID:  r.item.SKUID,
				OK:     false,
				Reason: r.err.Error(),
			}
			continue
		}
		items[i] = dto.ConversionItemResult{
			SKUID:    r.item.SKUID,
			OK:       true,
			PONumber: poBySupplier[r.quote.SupplierID].Number,
		}
	}

	return &dto.ConversionManifestDTO{
		RequisitionID: pr.ID,
		Status:        string(pr.Status),
		CreatedPOs:    poDTOs,
		Items:         items,
		Succeeded:     len(resolved) - failed,
		Failed:        failed,
	}
}
