package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const salesTable = "sales"

var saleColumns = []string{"id", "sku", "units", "price", "branch", "sold_at", "created_by"}

// SaleRepository é o contrato de persistência de vendas.
type SaleRepository interface {
	FindByDateRange(from, to time.Time) ([]*domain.Sale, error)
	FindByID(id string) (*domain.Sale, error)
	FindByBranch(branch string) ([]*domain.Sale, error)
	FindAll() ([]*domain.Sale, error)
	Save(sale *domain.Sale) (*domain.Sale, error)
	Delete(sale *domain.Sale) error
	DeleteByID(id string) error
	ExistsByID(id string) (bool, error)
	UpdateInTransaction(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func (r *saleRepository) FindByDateRange(from, to time.Time) ([]*domain.Sale, error) {
	queryBuilder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.And{
			squirrel.GtOrEq{"sold_at": from},
			squirrel.LtOrEq{"sold_at": to},
		}).
		PlaceholderFormat(squirrel.Dollar)

	salesSQL, salesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.querySales(salesSQL, salesArgs...)
}

func (r *saleRepository) FindByID(id string) (*domain.Sale, error) {
	queryBuilder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	saleSQL, saleArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	var sale domain.Sale
	err = r.conn.QueryRow(saleSQL, saleArgs...).Scan(
		&sale.ID,
		&sale.SKU,
		&sale.Units,
		&sale.Price,
		&sale.Branch,
		&sale.SoldAt,
		&sale.CreatedBy,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func (r *saleRepository) FindByBranch(branch string) ([]*domain.Sale, error) {
	queryBuilder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Expr("LOWER(branch) = LOWER(?)", branch)).
		PlaceholderFormat(squirrel.Dollar)

	salesSQL, salesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.querySales(salesSQL, salesArgs...)
}

func (r *saleRepository) FindAll() ([]*domain.Sale, error) {
	queryBuilder := squirrel.
		Select(saleColumns...).
		From(salesTable).
		OrderBy("sold_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	salesSQL, salesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.querySales(salesSQL, salesArgs...)
}

// Save insere a venda quando nova e atualiza os campos de negócio quando já
// existe. O identificador nunca muda.
func (r *saleRepository) Save(sale *domain.Sale) (*domain.Sale, error) {
	queryBuilder := squirrel.
		Insert(salesTable).
		Columns(saleColumns...).
		Values(sale.ID, sale.SKU, sale.Units, sale.Price, sale.Branch, sale.SoldAt, sale.CreatedBy).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			sku = EXCLUDED.sku,
			units = EXCLUDED.units,
			price = EXCLUDED.price,
			branch = EXCLUDED.branch,
			sold_at = EXCLUDED.sold_at`).
		PlaceholderFormat(squirrel.Dollar)

	saleSQL, saleArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.conn.Exec(saleSQL, saleArgs...)
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// UpdateInTransaction relê e regrava a venda dentro de uma única transação,
// evitando atualizações perdidas entre leitura e escrita.
func (r *saleRepository) UpdateInTransaction(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		updateSQL, updateArgs, err := squirrel.
			Update(salesTable).
			Set("sku", sale.SKU).
			Set("units", sale.Units).
			Set("price", sale.Price).
			Set("branch", sale.Branch).
			Set("sold_at", sale.SoldAt).
			Where(squirrel.Eq{"id": sale.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(updateSQL, updateArgs...)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) Delete(sale *domain.Sale) error {
	return r.DeleteByID(sale.ID)
}

func (r *saleRepository) DeleteByID(id string) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete(salesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(deleteSQL, deleteArgs...)
	return err
}

func (r *saleRepository) ExistsByID(id string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM sales WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *saleRepository) querySales(salesSQL string, salesArgs ...any) ([]*domain.Sale, error) {
	rows, err := r.conn.Query(salesSQL, salesArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.SKU,
			&sale.Units,
			&sale.Price,
			&sale.Branch,
			&sale.SoldAt,
			&sale.CreatedBy,
		); err != nil {
			return nil, err
		}

		sales = append(sales, &sale)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sales, nil
}
