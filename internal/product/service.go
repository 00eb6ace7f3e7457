// Package product は商品管理のドメインロジックを提供する。
package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/storeman/internal/model"
	"github.com/hitoshi/storeman/internal/repository"
	"github.com/hitoshi/storeman/internal/security"
)

// Patch は商品の部分更新を表す。nilのフィールドは変更しない。
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
}

// ListQuery は商品一覧の絞り込みとソートの指定を表す。
type ListQuery struct {
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	Desc     bool
}

// Service は商品管理のサービス層。
// 自由テキストのフィールドは格納前にサニタイズする。
type Service struct {
	productRepo repository.ProductRepository
	sanitizer   security.TextSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(productRepo repository.ProductRepository, sanitizer security.TextSanitizerService) *Service {
	return &Service{
		productRepo: productRepo,
		sanitizer:   sanitizer,
	}
}

// Create は商品を作成する。採番されたIDを含む商品を返す。
func (s *Service) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	s.sanitize(p)

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("商品の作成に失敗しました: %w", err)
	}

	slog.Info("product created", slog.Int64("product_id", p.ID))
	return p, nil
}

// Get は指定IDの商品を取得する。
// 見つからない場合はPRODUCT_NOT_FOUNDを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("商品の取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewProductNotFoundError(id)
	}
	return p, nil
}

// List は全商品をID昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("商品一覧の取得に失敗しました: %w", err)
	}
	return products, nil
}

// ListSorted は価格フィルタとソートを適用した商品一覧を返す。
// 価格フィルタは0より大きい値のみ許可し、ソートキーは許可リストで検証する。
func (s *Service) ListSorted(ctx context.Context, q ListQuery) ([]*model.Product, error) {
	if q.MinPrice != nil && *q.MinPrice <= 0 {
		return nil, model.NewInvalidFilterError("min_priceは0より大きい値を指定してください")
	}
	if q.MaxPrice != nil && *q.MaxPrice <= 0 {
		return nil, model.NewInvalidFilterError("max_priceは0より大きい値を指定してください")
	}

	switch q.SortBy {
	case "", "id", "name", "price":
	default:
		return nil, model.NewInvalidSortError(q.SortBy)
	}

	products, err := s.productRepo.ListSorted(ctx, repository.ProductListOptions{
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   q.SortBy,
		Desc:     q.Desc,
	})
	if err != nil {
		return nil, fmt.Errorf("商品一覧の取得に失敗しました: %w", err)
	}
	return products, nil
}

// Update は商品を部分更新する。nilのフィールドは既存の値を維持する。
// 見つからない場合はPRODUCT_NOT_FOUNDを返す。
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	s.sanitize(p)

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("商品の更新に失敗しました: %w", err)
	}

	return p, nil
}

// Delete は指定IDの商品を削除する。
// 見つからない場合はPRODUCT_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("商品の削除に失敗しました: %w", err)
	}

	slog.Info("product deleted", slog.Int64("product_id", id))
	return nil
}

// sanitize は自由テキストのフィールドからHTMLタグを除去する。
func (s *Service) sanitize(p *model.Product) {
	if s.sanitizer == nil {
		return
	}
	p.Name = s.sanitizer.Sanitize(p.Name)
	p.Description = s.sanitizer.Sanitize(p.Description)
}
