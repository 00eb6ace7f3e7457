package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hitoshi/storeman/internal/model"
)

// SQLiteProductRepo はSQLiteを使用した商品リポジトリ。
type SQLiteProductRepo struct {
	db *sql.DB
}

// NewSQLiteProductRepo はSQLiteProductRepoを生成する。
func NewSQLiteProductRepo(db *sql.DB) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: db}
}

// Create は商品を作成し、採番されたIDをproduct.IDに設定する。
func (r *SQLiteProductRepo) Create(ctx context.Context, product *model.Product) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price)
		 VALUES (?, ?, ?)`,
		product.Name, product.Description, product.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted product ID: %w", err)
	}
	product.ID = id

	return nil
}

// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
func (r *SQLiteProductRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	product := &model.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price FROM products WHERE id = ?`,
		id,
	).Scan(&product.ID, &product.Name, &product.Description, &product.Price)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List は全商品をID昇順で返す。
func (r *SQLiteProductRepo) List(ctx context.Context) ([]*model.Product, error) {
	return r.ListSorted(ctx, ProductListOptions{})
}

// ListSorted は価格フィルタとソートを適用した商品一覧を返す。
// SortByは許可リスト（id, name, price）検証済みであることを前提とするが、
// SQL組み立て時にも許可リスト外のキーはidに落とす。
func (r *SQLiteProductRepo) ListSorted(ctx context.Context, opts ProductListOptions) ([]*model.Product, error) {
	var (
		conds []string
		args  []any
	)

	if opts.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *opts.MaxPrice)
	}

	query := `SELECT id, name, description, price FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY " + sortColumn(opts.SortBy)
	if opts.Desc {
		query += " DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		product := &model.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// Update は商品の全フィールドを上書き更新する。
func (r *SQLiteProductRepo) Update(ctx context.Context, product *model.Product) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ? WHERE id = ?`,
		product.Name, product.Description, product.Price, product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの商品を削除する。
func (r *SQLiteProductRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// sortColumn はソートキーをカラム名にマッピングする。
// 許可リスト外のキーはidに落とし、SQLへの文字列連結を安全に保つ。
func sortColumn(sortBy string) string {
	switch sortBy {
	case "name":
		return "name"
	case "price":
		return "price"
	default:
		return "id"
	}
}

// compile-time interface check
var _ ProductRepository = (*SQLiteProductRepo)(nil)
