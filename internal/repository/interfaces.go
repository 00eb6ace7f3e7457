// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/storeman/internal/model"
)

// ProductListOptions は商品一覧の絞り込みとソートの条件を保持する。
// nilのフィールドは条件なしを意味する。
type ProductListOptions struct {
	MinPrice *float64
	MaxPrice *float64
	SortBy   string // id, name, price のいずれか。空はid。
	Desc     bool
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// List は全ユーザーをID昇順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// Update はユーザーの全フィールドを上書き更新する。
	Update(ctx context.Context, user *model.User) error

	// DeleteByID は指定IDのユーザーを削除する。
	DeleteByID(ctx context.Context, id int64) error
}

// ProductRepository は商品データの永続化インターフェース。
type ProductRepository interface {
	// Create は商品を作成し、採番されたIDをproduct.IDに設定する。
	Create(ctx context.Context, product *model.Product) error

	// FindByID は指定IDの商品を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Product, error)

	// List は全商品をID昇順で返す。
	List(ctx context.Context) ([]*model.Product, error)

	// ListSorted は価格フィルタとソートを適用した商品一覧を返す。
	// SortByは呼び出し側で許可リスト検証済みであることを前提とする。
	ListSorted(ctx context.Context, opts ProductListOptions) ([]*model.Product, error)

	// Update は商品の全フィールドを上書き更新する。
	Update(ctx context.Context, product *model.Product) error

	// DeleteByID は指定IDの商品を削除する。
	DeleteByID(ctx context.Context, id int64) error
}

// OrderRepository は注文データの永続化インターフェース。
type OrderRepository interface {
	// Create は注文を作成し、採番されたIDをorder.IDに設定する。
	// order.OrderDateがゼロ値の場合はエンジンのデフォルト
	// （CURRENT_TIMESTAMP）が採用され、確定した値をorder.OrderDateに書き戻す。
	Create(ctx context.Context, order *model.Order) error

	// FindByID は指定IDの注文を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Order, error)

	// List は全注文をID昇順で返す。
	List(ctx context.Context) ([]*model.Order, error)

	// ListByUserID は指定ユーザーの注文一覧をID昇順で返す。
	ListByUserID(ctx context.Context, userID int64) ([]*model.Order, error)

	// TotalAmountByUserID は指定ユーザーの全注文の商品価格の合計を返す。
	// 注文が存在しない場合は0を返す。
	TotalAmountByUserID(ctx context.Context, userID int64) (float64, error)

	// Update は注文のuser_id、product_id、statusを上書き更新する。
	// order_dateは作成時の値を保持する。
	Update(ctx context.Context, order *model.Order) error

	// DeleteByID は指定IDの注文を削除する。
	DeleteByID(ctx context.Context, id int64) error
}
