package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/SscSPs/mei_retail_app/internal/models"
	"github.com/SscSPs/mei_retail_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxPurchaseOrderRepository stores supplier orders and their lines.
type PgxPurchaseOrderRepository struct {
	BaseRepository
}

func newPgxPurchaseOrderRepository(db querier) *PgxPurchaseOrderRepository {
	return &PgxPurchaseOrderRepository{BaseRepository{db: db}}
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseOrderRepository)(nil)

const purchaseOrderColumns = `purchase_order_id, inventory_id, user_id, supplier, status, payment_method, total_amount, ordered_at, received_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchaseOrder(row pgx.Row) (models.PurchaseOrder, error) {
	var m models.PurchaseOrder
	err := row.Scan(
		&m.PurchaseOrderID,
		&m.InventoryID,
		&m.UserID,
		&m.Supplier,
		&m.Status,
		&m.PaymentMethod,
		&m.TotalAmount,
		&m.OrderedAt,
		&m.ReceivedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	return r.findPurchaseOrder(ctx, inventoryID, purchaseOrderID, "")
}

func (r *PgxPurchaseOrderRepository) FindPurchaseOrderForUpdate(ctx context.Context, inventoryID, purchaseOrderID string) (*domain.PurchaseOrder, error) {
	return r.findPurchaseOrder(ctx, inventoryID, purchaseOrderID, " FOR UPDATE")
}

func (r *PgxPurchaseOrderRepository) findPurchaseOrder(ctx context.Context, inventoryID, purchaseOrderID, lock string) (*domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE inventory_id = $1 AND purchase_order_id = $2` + lock + `;`
	m, err := scanPurchaseOrder(r.db.QueryRow(ctx, query, inventoryID, purchaseOrderID))
	if err != nil {
		return nil, notFound(err, "failed to find purchase order %s", purchaseOrderID)
	}
	items, err := r.itemsByOrder(ctx, []string{m.PurchaseOrderID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainPurchaseOrder(m, items[m.PurchaseOrderID])
	return &d, nil
}

func (r *PgxPurchaseOrderRepository) ListPurchaseOrders(ctx context.Context, inventoryID string) ([]domain.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders WHERE inventory_id = $1 ORDER BY ordered_at DESC, purchase_order_id;`
	rows, err := r.db.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders of inventory %s: %w", inventoryID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.PurchaseOrder, error) { return scanPurchaseOrder(rows) })
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.PurchaseOrderID
	}
	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PurchaseOrder, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainPurchaseOrder(m, items[m.PurchaseOrderID])
	}
	return out, nil
}

// itemsByOrder fetches the lines of several orders in one query, grouped by order.
func (r *PgxPurchaseOrderRepository) itemsByOrder(ctx context.Context, orderIDs []string) (map[string][]models.PurchaseOrderItem, error) {
	out := make(map[string][]models.PurchaseOrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT purchase_order_item_id, purchase_order_id, position, product_variant_id, quantity, unit_price
		FROM purchase_order_items
		WHERE purchase_order_id = ANY($1)
		ORDER BY purchase_order_id, position;
	`
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase order items: %w", err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.PurchaseOrderItem, error) {
		var m models.PurchaseOrderItem
		err := rows.Scan(&m.PurchaseOrderItemID, &m.PurchaseOrderID, &m.Position, &m.ProductVariantID, &m.Quantity, &m.UnitPrice)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		out[m.PurchaseOrderID] = append(out[m.PurchaseOrderID], m)
	}
	return out, nil
}

func (r *PgxPurchaseOrderRepository) SavePurchaseOrder(ctx context.Context, order domain.PurchaseOrder) error {
	m := mapping.ToModelPurchaseOrder(order)
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO purchase_orders (`+purchaseOrderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.PurchaseOrderID,
		m.InventoryID,
		m.UserID,
		m.Supplier,
		m.Status,
		m.PaymentMethod,
		m.TotalAmount,
		m.OrderedAt,
		m.ReceivedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	itemQuery := `
		INSERT INTO purchase_order_items (purchase_order_item_id, purchase_order_id, position, product_variant_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, it := range mapping.ToModelPurchaseOrderItems(order) {
		batch.Queue(itemQuery, it.PurchaseOrderItemID, it.PurchaseOrderID, it.Position, it.ProductVariantID, it.Quantity, it.UnitPrice)
	}
	return r.sendBatch(ctx, batch, "save purchase order "+m.PurchaseOrderID)
}

func (r *PgxPurchaseOrderRepository) UpdatePurchaseOrderStatus(ctx context.Context, order domain.PurchaseOrder) error {
	m := mapping.ToModelPurchaseOrder(order)
	query := `
		UPDATE purchase_orders
		SET status = $1, received_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE purchase_order_id = $5;
	`
	cmdTag, err := r.db.Exec(ctx, query, m.Status, m.ReceivedAt, m.LastUpdatedAt, m.LastUpdatedBy, m.PurchaseOrderID)
	if err != nil {
		return fmt.Errorf("failed to update purchase order %s: %w", m.PurchaseOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("purchase order %s: %w", m.PurchaseOrderID, apperrors.ErrNotFound)
	}
	return nil
}
