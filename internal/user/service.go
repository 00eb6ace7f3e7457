// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/storeman/internal/model"
	"github.com/hitoshi/storeman/internal/repository"
)

// Patch はユーザーの部分更新を表す。nilのフィールドは変更しない。
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Create はユーザーを作成する。採番されたIDを含むユーザーを返す。
func (s *Service) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	slog.Info("user created", slog.Int64("user_id", u.ID))
	return u, nil
}

// Get は指定IDのユーザーを取得する。
// 見つからない場合はUSER_NOT_FOUNDを返す。
func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError(id)
	}
	return u, nil
}

// List は全ユーザーをID昇順で返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// Update はユーザーを部分更新する。nilのフィールドは既存の値を維持する。
// 見つからない場合はUSER_NOT_FOUNDを返す。
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}

	return u, nil
}

// Delete は指定IDのユーザーを削除する。
// 見つからない場合はUSER_NOT_FOUNDを返す。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
