// Package order は注文管理のドメインロジックを提供する。
//
// ストレージエンジンの外部キー強制はデフォルトで無効のまま運用するため、
// user_id / product_id の参照整合性チェックはこのサービス層が
// 作成・更新時に明示的なルックアップとして行う。
package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/storeman/internal/model"
	"github.com/hitoshi/storeman/internal/repository"
)

// UserFinder はユーザー存在確認に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// ProductFinder は商品存在確認に必要なインターフェース。
// repository.ProductRepositoryの部分集合として定義する。
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}

// MetricsRecorder は注文作成数の計測インターフェース。nil可。
type MetricsRecorder interface {
	RecordOrderCreated()
}

// Patch は注文の部分更新を表す。nilのフィールドは変更しない。
// order_dateは作成時の値を保持し、更新対象に含めない。
type Patch struct {
	UserID    *int64
	ProductID *int64
	Status    *string
}

// Service は注文管理のサービス層。
type Service struct {
	orderRepo  repository.OrderRepository
	userFinder UserFinder
	prodFinder ProductFinder
	metrics    MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する。
func NewService(
	orderRepo repository.OrderRepository,
	userFinder UserFinder,
	prodFinder ProductFinder,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		orderRepo:  orderRepo,
		userFinder: userFinder,
		prodFinder: prodFinder,
		metrics:    metrics,
	}
}

// Create は注文を作成する。
// user_idとproduct_idの参照先が存在しない場合はそれぞれの
// NOT_FOUNDエラーを返す。order.OrderDateがゼロ値の場合は
// エンジンのデフォルト（CURRENT_TIMESTAMP）が採用される。
func (s *Service) Create(ctx context.Context, o *model.Order) (*model.Order, error) {
	if err := s.checkReferences(ctx, o.UserID, o.ProductID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("注文の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}

	slog.Info("order created",
		slog.Int64("order_id", o.ID),
		slog.Int64("user_id", o.UserID),
		slog.Int64("product_id", o.ProductID),
	)
	return o, nil
}

// Get は指定IDの注文を取得する。
// 見つからない場合はORDER_NOT_FOUNDを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("注文の取得に失敗しました: %w", err)
	}
	if o == nil {
		return nil, model.NewOrderNotFoundError(id)
	}
	return o, nil
}

// List は全注文をID昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("注文一覧の取得に失敗しました: %w", err)
	}
	return orders, nil
}

// ListByUser は指定ユーザーの注文一覧を返す。
// ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*model.Order, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("注文一覧の取得に失敗しました: %w", err)
	}
	return orders, nil
}

// TotalAmountByUser は指定ユーザーの全注文の商品価格の合計を返す。
// 注文が存在しない場合は0を返す。
// ユーザーが存在しない場合はUSER_NOT_FOUNDを返す。
func (s *Service) TotalAmountByUser(ctx context.Context, userID int64) (float64, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return 0, err
	}

	total, err := s.orderRepo.TotalAmountByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("注文合計金額の集計に失敗しました: %w", err)
	}
	return total, nil
}

// Update は注文を部分更新する。nilのフィールドは既存の値を維持する。
// 参照先を変更する場合は存在確認を行う。
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*model.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.UserID != nil {
		o.UserID = *patch.UserID
	}
	if patch.ProductID != nil {
		o.ProductID = *patch.ProductID
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}

	if err := s.checkReferences(ctx, o.UserID, o.ProductID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("注文の更新に失敗しました: %w", err)
	}

	return o, nil
}

// Delete は指定IDの注文を削除する。
// 見つからない場合はORDER_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.orderRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("注文の削除に失敗しました: %w", err)
	}

	slog.Info("order deleted", slog.Int64("order_id", id))
	return nil
}

// checkReferences はuser_idとproduct_idの参照先の存在を確認する。
func (s *Service) checkReferences(ctx context.Context, userID, productID int64) error {
	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}

	p, err := s.prodFinder.FindByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("商品の存在確認に失敗しました: %w", err)
	}
	if p == nil {
		return model.NewProductNotFoundError(productID)
	}

	return nil
}

// checkUser はユーザーの存在を確認する。
func (s *Service) checkUser(ctx context.Context, userID int64) error {
	u, err := s.userFinder.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("ユーザーの存在確認に失敗しました: %w", err)
	}
	if u == nil {
		return model.NewUserNotFoundError(userID)
	}
	return nil
}
