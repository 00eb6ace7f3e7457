package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/storeman/internal/model"
)

// SQLiteOrderRepo はSQLiteを使用した注文リポジトリ。
// order_dateはDATETIME宣言カラムのため、ドライバがtime.Timeとして
// 返す値をそのまま受け取り、UTCに正規化して扱う。
type SQLiteOrderRepo struct {
	db *sql.DB
}

// NewSQLiteOrderRepo はSQLiteOrderRepoを生成する。
func NewSQLiteOrderRepo(db *sql.DB) *SQLiteOrderRepo {
	return &SQLiteOrderRepo{db: db}
}

// Create は注文を作成し、採番されたIDをorder.IDに設定する。
// order.OrderDateがゼロ値の場合はorder_dateカラムを省略してINSERTし、
// エンジンのデフォルト（CURRENT_TIMESTAMP）に採番を委ねる。
// 確定したorder_dateは読み戻してorder.OrderDateに設定する。
func (r *SQLiteOrderRepo) Create(ctx context.Context, order *model.Order) error {
	var (
		result sql.Result
		err    error
	)

	if order.OrderDate.IsZero() {
		result, err = r.db.ExecContext(ctx,
			`INSERT INTO orders (user_id, product_id, status)
			 VALUES (?, ?, ?)`,
			order.UserID, order.ProductID, order.Status,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			`INSERT INTO orders (user_id, product_id, order_date, status)
			 VALUES (?, ?, ?, ?)`,
			order.UserID, order.ProductID, order.OrderDate.UTC(), order.Status,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted order ID: %w", err)
	}
	order.ID = id

	// エンジンが採番したorder_dateを読み戻す
	var orderDate time.Time
	err = r.db.QueryRowContext(ctx,
		`SELECT order_date FROM orders WHERE id = ?`,
		id,
	).Scan(&orderDate)
	if err != nil {
		return fmt.Errorf("failed to read back order date: %w", err)
	}
	order.OrderDate = orderDate.UTC()

	return nil
}

// FindByID は指定IDの注文を取得する。見つからない場合はnilを返す。
func (r *SQLiteOrderRepo) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	order := &model.Order{}
	var orderDate time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, product_id, order_date, status FROM orders WHERE id = ?`,
		id,
	).Scan(&order.ID, &order.UserID, &order.ProductID, &orderDate, &order.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	order.OrderDate = orderDate.UTC()

	return order, nil
}

// List は全注文をID昇順で返す。
func (r *SQLiteOrderRepo) List(ctx context.Context) ([]*model.Order, error) {
	return r.list(ctx,
		`SELECT id, user_id, product_id, order_date, status FROM orders ORDER BY id`,
	)
}

// ListByUserID は指定ユーザーの注文一覧をID昇順で返す。
func (r *SQLiteOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]*model.Order, error) {
	return r.list(ctx,
		`SELECT id, user_id, product_id, order_date, status FROM orders
		 WHERE user_id = ? ORDER BY id`,
		userID,
	)
}

// TotalAmountByUserID は指定ユーザーの全注文の商品価格の合計を返す。
// 注文が存在しない場合は0を返す。
func (r *SQLiteOrderRepo) TotalAmountByUserID(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(p.price), 0)
		 FROM orders o
		 JOIN products p ON p.id = o.product_id
		 WHERE o.user_id = ?`,
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum order amount: %w", err)
	}
	return total, nil
}

// Update は注文のuser_id、product_id、statusを上書き更新する。
// order_dateは作成時の値を保持する。
func (r *SQLiteOrderRepo) Update(ctx context.Context, order *model.Order) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET user_id = ?, product_id = ?, status = ? WHERE id = ?`,
		order.UserID, order.ProductID, order.Status, order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの注文を削除する。
func (r *SQLiteOrderRepo) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM orders WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// list は注文一覧クエリを実行して結果を組み立てる共通部。
func (r *SQLiteOrderRepo) list(ctx context.Context, query string, args ...any) ([]*model.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		order := &model.Order{}
		var orderDate time.Time
		if err := rows.Scan(&order.ID, &order.UserID, &order.ProductID, &orderDate, &order.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.OrderDate = orderDate.UTC()
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// compile-time interface check
var _ OrderRepository = (*SQLiteOrderRepo)(nil)
