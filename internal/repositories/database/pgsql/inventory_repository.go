package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/SscSPs/mei_retail_app/internal/models"
	"github.com/SscSPs/mei_retail_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxInventoryRepository stores the stock positions of every inventory.
type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(db querier) *PgxInventoryRepository {
	return &PgxInventoryRepository{BaseRepository{db: db}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryItemColumns = `inventory_item_id, inventory_id, product_variant_id, quantity, average_cost, last_purchase_price, last_purchase_date, created_at, created_by, last_updated_at, last_updated_by`

func scanInventoryItem(row pgx.Row) (models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.InventoryItemID,
		&m.InventoryID,
		&m.ProductVariantID,
		&m.Quantity,
		&m.AverageCost,
		&m.LastPurchasePrice,
		&m.LastPurchaseDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxInventoryRepository) ListInventoryItems(ctx context.Context, inventoryID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE inventory_id = $1 ORDER BY product_variant_id;`
	rows, err := r.db.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory %s: %w", inventoryID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.InventoryItem, error) { return scanInventoryItem(rows) })
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainInventoryItem(m)
	}
	return out, nil
}

func (r *PgxInventoryRepository) FindInventoryItem(ctx context.Context, inventoryID, variantID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE inventory_id = $1 AND product_variant_id = $2;`
	m, err := scanInventoryItem(r.db.QueryRow(ctx, query, inventoryID, variantID))
	if err != nil {
		return nil, notFound(err, "failed to find variant %s in inventory %s", variantID, inventoryID)
	}
	d := mapping.ToDomainInventoryItem(m)
	return &d, nil
}

// LockInventoryItems locks the inventory header first, so a variant stocked
// for the first time cannot be inserted twice concurrently, then the
// existing stock rows in variant order.
func (r *PgxInventoryRepository) LockInventoryItems(ctx context.Context, inventoryID string, variantIDs []string) (map[string]*domain.InventoryItem, error) {
	var locked string
	err := r.db.QueryRow(ctx, `SELECT inventory_id FROM inventories WHERE inventory_id = $1 FOR UPDATE;`, inventoryID).Scan(&locked)
	if err != nil {
		return nil, notFound(err, "failed to lock inventory %s", inventoryID)
	}

	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE inventory_id = $1 AND product_variant_id = ANY($2)
		ORDER BY product_variant_id
		FOR UPDATE;
	`
	rows, err := r.db.Query(ctx, query, inventoryID, variantIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock rows of inventory %s: %w", inventoryID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.InventoryItem, error) { return scanInventoryItem(rows) })
	if err != nil {
		return nil, err
	}

	out := make(map[string]*domain.InventoryItem, len(ms))
	for _, m := range ms {
		d := mapping.ToDomainInventoryItem(m)
		out[d.ProductVariantID] = &d
	}
	return out, nil
}

func (r *PgxInventoryRepository) SaveInventoryItems(ctx context.Context, items []domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (inventory_id, product_variant_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			average_cost = EXCLUDED.average_cost,
			last_purchase_price = EXCLUDED.last_purchase_price,
			last_purchase_date = EXCLUDED.last_purchase_date,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	batch := &pgx.Batch{}
	for _, it := range items {
		m := mapping.ToModelInventoryItem(it)
		batch.Queue(query,
			m.InventoryItemID,
			m.InventoryID,
			m.ProductVariantID,
			m.Quantity,
			m.AverageCost,
			m.LastPurchasePrice,
			m.LastPurchaseDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	return r.sendBatch(ctx, batch, "save inventory items")
}
