package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/apperrors"
	"github.com/SscSPs/mei_retail_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mei_retail_app/internal/core/ports/repositories"
	"github.com/SscSPs/mei_retail_app/internal/models"
	"github.com/SscSPs/mei_retail_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PgxSaleRepository stores sales with their lines, tenders and exchanges.
type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(db querier) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository{db: db}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const (
	saleColumns     = `sale_id, inventory_id, user_id, date, total_amount, status, created_at, created_by, last_updated_at, last_updated_by`
	saleItemColumns = `sale_item_id, sale_id, position, product_variant_id, quantity, cancelled_quantity, returned_quantity, unit_price, cost_basis_at_sale, unit_profit, total_item_price, total_item_profit, sold_at`
	exchangeColumns = `exchange_id, user_id, original_sale_id, new_sale_id, returned_amount, new_sale_amount, amount_difference, has_refund, refund_amount, refund_payment_method, date, created_at, created_by, last_updated_at, last_updated_by`
)

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.InventoryID,
		&m.UserID,
		&m.Date,
		&m.TotalAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanSaleItem(rows pgx.Rows) (models.SaleItem, error) {
	var m models.SaleItem
	err := rows.Scan(
		&m.SaleItemID,
		&m.SaleID,
		&m.Position,
		&m.ProductVariantID,
		&m.Quantity,
		&m.CancelledQuantity,
		&m.ReturnedQuantity,
		&m.UnitPrice,
		&m.CostBasisAtSale,
		&m.UnitProfit,
		&m.TotalItemPrice,
		&m.TotalItemProfit,
		&m.SoldAt,
	)
	return m, err
}

// dateRange renders optional [from, to) bounds on column, numbering
// placeholders after the args already bound.
func dateRange(column string, from, to *time.Time, args []any) (string, []any) {
	var conds []string
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("%s < $%d", column, len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conds, " AND "), args
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, inventoryID, saleID string) (*domain.Sale, error) {
	return r.findSale(ctx, inventoryID, saleID, "")
}

func (r *PgxSaleRepository) FindSaleForUpdate(ctx context.Context, inventoryID, saleID string) (*domain.Sale, error) {
	return r.findSale(ctx, inventoryID, saleID, " FOR UPDATE")
}

func (r *PgxSaleRepository) findSale(ctx context.Context, inventoryID, saleID, lock string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE inventory_id = $1 AND sale_id = $2` + lock + `;`
	m, err := scanSale(r.db.QueryRow(ctx, query, inventoryID, saleID))
	if err != nil {
		return nil, notFound(err, "failed to find sale %s", saleID)
	}
	sales, err := r.assemble(ctx, []models.Sale{m})
	if err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context, inventoryID string, from, to *time.Time) ([]domain.Sale, error) {
	bounds, args := dateRange("date", from, to, []any{inventoryID})
	query := `SELECT ` + saleColumns + ` FROM sales WHERE inventory_id = $1` + bounds + ` ORDER BY date DESC, sale_id;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales of inventory %s: %w", inventoryID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.Sale, error) { return scanSale(rows) })
	if err != nil {
		return nil, err
	}
	return r.assemble(ctx, ms)
}

// assemble loads the lines and tenders of the given sales with one query each.
func (r *PgxSaleRepository) assemble(ctx context.Context, sales []models.Sale) ([]domain.Sale, error) {
	out := make([]domain.Sale, 0, len(sales))
	if len(sales) == 0 {
		return out, nil
	}
	ids := make([]string, len(sales))
	for i, s := range sales {
		ids[i] = s.SaleID
	}

	rows, err := r.db.Query(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, position;`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	items, err := scanAll(rows, scanSaleItem)
	if err != nil {
		return nil, err
	}
	itemsBySale := make(map[string][]models.SaleItem, len(sales))
	for _, it := range items {
		itemsBySale[it.SaleID] = append(itemsBySale[it.SaleID], it)
	}

	rows, err = r.db.Query(ctx, `
		SELECT sale_payment_id, sale_id, position, method, amount, refunded_amount
		FROM sale_payments
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, position;
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale payments: %w", err)
	}
	payments, err := scanAll(rows, func(rows pgx.Rows) (models.SalePayment, error) {
		var m models.SalePayment
		err := rows.Scan(&m.SalePaymentID, &m.SaleID, &m.Position, &m.Method, &m.Amount, &m.RefundedAmount)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	paymentsBySale := make(map[string][]models.SalePayment, len(sales))
	for _, p := range payments {
		paymentsBySale[p.SaleID] = append(paymentsBySale[p.SaleID], p)
	}

	for _, s := range sales {
		out = append(out, mapping.ToDomainSale(s, itemsBySale[s.SaleID], paymentsBySale[s.SaleID]))
	}
	return out, nil
}

func (r *PgxSaleRepository) ListSaleItems(ctx context.Context, inventoryID string, from, to *time.Time) ([]domain.SaleItem, error) {
	bounds, args := dateRange("si.sold_at", from, to, []any{inventoryID})
	query := `
		SELECT ` + prefixColumns("si", saleItemColumns) + `
		FROM sale_items si
		JOIN sales s ON s.sale_id = si.sale_id
		WHERE s.inventory_id = $1` + bounds + `
		ORDER BY si.sold_at, si.sale_id, si.position;
	`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items of inventory %s: %w", inventoryID, err)
	}
	ms, err := scanAll(rows, scanSaleItem)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SaleItem, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainSaleItem(m)
	}
	return out, nil
}

func (r *PgxSaleRepository) SumGrossProfit(ctx context.Context, inventoryID string, from, to *time.Time) (decimal.Decimal, error) {
	bounds, args := dateRange("si.sold_at", from, to, []any{inventoryID})
	query := `
		SELECT COALESCE(SUM(si.total_item_profit), 0)
		FROM sale_items si
		JOIN sales s ON s.sale_id = si.sale_id
		WHERE s.inventory_id = $1` + bounds + `;`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum gross profit of inventory %s: %w", inventoryID, err)
	}
	return sum, nil
}

func (r *PgxSaleRepository) ListExchanges(ctx context.Context, userID string) ([]domain.ProductExchange, error) {
	query := `SELECT ` + exchangeColumns + ` FROM product_exchanges WHERE user_id = $1 ORDER BY date DESC, exchange_id;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges of user %s: %w", userID, err)
	}
	ms, err := scanAll(rows, func(rows pgx.Rows) (models.ProductExchange, error) {
		var m models.ProductExchange
		err := rows.Scan(
			&m.ExchangeID,
			&m.UserID,
			&m.OriginalSaleID,
			&m.NewSaleID,
			&m.ReturnedAmount,
			&m.NewSaleAmount,
			&m.AmountDifference,
			&m.HasRefund,
			&m.RefundAmount,
			&m.RefundPaymentMethod,
			&m.Date,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductExchange, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainProductExchange(m)
	}
	return out, nil
}

func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.SaleID,
		m.InventoryID,
		m.UserID,
		m.Date,
		m.TotalAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	itemQuery := `INSERT INTO sale_items (` + saleItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	for _, it := range mapping.ToModelSaleItems(sale) {
		batch.Queue(itemQuery,
			it.SaleItemID,
			it.SaleID,
			it.Position,
			it.ProductVariantID,
			it.Quantity,
			it.CancelledQuantity,
			it.ReturnedQuantity,
			it.UnitPrice,
			it.CostBasisAtSale,
			it.UnitProfit,
			it.TotalItemPrice,
			it.TotalItemProfit,
			it.SoldAt,
		)
	}
	paymentQuery := `
		INSERT INTO sale_payments (sale_payment_id, sale_id, position, method, amount, refunded_amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, p := range mapping.ToModelSalePayments(sale) {
		batch.Queue(paymentQuery, p.SalePaymentID, p.SaleID, p.Position, p.Method, p.Amount, p.RefundedAmount)
	}
	return r.sendBatch(ctx, batch, "save sale "+m.SaleID)
}

// UpdateSale rewrites the mutable parts of a sale: header status, line
// quantities and profit, tender refunds. Frozen cost bases are never touched.
func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE sales SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE sale_id = $4;
	`, m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.SaleID)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", m.SaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("sale %s: %w", m.SaleID, apperrors.ErrNotFound)
	}

	batch := &pgx.Batch{}
	for _, it := range mapping.ToModelSaleItems(sale) {
		batch.Queue(`
			UPDATE sale_items
			SET cancelled_quantity = $1, returned_quantity = $2, total_item_profit = $3
			WHERE sale_item_id = $4;
		`, it.CancelledQuantity, it.ReturnedQuantity, it.TotalItemProfit, it.SaleItemID)
	}
	for _, p := range mapping.ToModelSalePayments(sale) {
		batch.Queue(`UPDATE sale_payments SET refunded_amount = $1 WHERE sale_payment_id = $2;`, p.RefundedAmount, p.SalePaymentID)
	}
	return r.sendBatch(ctx, batch, "update lines of sale "+m.SaleID)
}

func (r *PgxSaleRepository) SaveExchange(ctx context.Context, exchange domain.ProductExchange) error {
	m := mapping.ToModelProductExchange(exchange)
	query := `INSERT INTO product_exchanges (` + exchangeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := r.db.Exec(ctx, query,
		m.ExchangeID,
		m.UserID,
		m.OriginalSaleID,
		m.NewSaleID,
		m.ReturnedAmount,
		m.NewSaleAmount,
		m.AmountDifference,
		m.HasRefund,
		m.RefundAmount,
		m.RefundPaymentMethod,
		m.Date,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save exchange "+m.ExchangeID)
	}
	return nil
}

// prefixColumns qualifies a comma separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
