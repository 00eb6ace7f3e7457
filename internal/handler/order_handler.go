package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/storeman/internal/model"
	"github.com/hitoshi/storeman/internal/order"
)

// OrderServiceInterface は注文ハンドラーが必要とするサービスインターフェース。
type OrderServiceInterface interface {
	// Create は注文を作成する。参照先が存在しない場合はNOT_FOUNDを返す。
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	// Get は指定IDの注文を取得する。見つからない場合はORDER_NOT_FOUNDを返す。
	Get(ctx context.Context, id int64) (*model.Order, error)
	// List は全注文をID昇順で返す。
	List(ctx context.Context) ([]*model.Order, error)
	// ListByUser は指定ユーザーの注文一覧を返す。
	ListByUser(ctx context.Context, userID int64) ([]*model.Order, error)
	// TotalAmountByUser は指定ユーザーの全注文の商品価格の合計を返す。
	TotalAmountByUser(ctx context.Context, userID int64) (float64, error)
	// Update は注文を部分更新する。
	Update(ctx context.Context, id int64, patch order.Patch) (*model.Order, error)
	// Delete は指定IDの注文を削除する。
	Delete(ctx context.Context, id int64) error
}

// OrderHandler は注文管理のHTTPハンドラー。
type OrderHandler struct {
	service OrderServiceInterface
}

// NewOrderHandler はOrderHandlerを生成する。
func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// createOrderRequest は注文作成リクエストのボディ。
// order_dateを省略した場合はストレージエンジンの
// デフォルト（CURRENT_TIMESTAMP）が採用される。
type createOrderRequest struct {
	UserID    int64      `json:"user_id"`
	ProductID int64      `json:"product_id"`
	OrderDate *time.Time `json:"order_date"`
	Status    string     `json:"status"`
}

// updateOrderRequest は注文更新リクエストのボディ。
// 省略されたフィールドは変更しない。order_dateは更新対象外。
type updateOrderRequest struct {
	UserID    *int64  `json:"user_id"`
	ProductID *int64  `json:"product_id"`
	Status    *string `json:"status"`
}

// orderResponse は注文情報のAPIレスポンス。
type orderResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	OrderDate time.Time `json:"order_date"`
	Status    string    `json:"status"`
}

// totalAmountResponse は注文合計金額のAPIレスポンス。
type totalAmountResponse struct {
	TotalAmount float64 `json:"total_amount"`
}

// CreateOrder は注文作成を処理する。
// POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	o := &model.Order{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Status:    req.Status,
	}
	if req.OrderDate != nil {
		o.OrderDate = *req.OrderDate
	}

	created, err := h.service.Create(r.Context(), o)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

// GetOrder は注文詳細を取得する。
// GET /api/orders/:id
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// ListOrders は注文一覧を取得する。
// GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// ListUserOrders は指定ユーザーの注文一覧を取得する。
// GET /api/users/:id/orders
func (h *OrderHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// TotalOrderAmount は指定ユーザーの注文合計金額を取得する。
// GET /api/users/:id/total-order-amount
func (h *OrderHandler) TotalOrderAmount(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	total, err := h.service.TotalAmountByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, totalAmountResponse{TotalAmount: total})
}

// UpdateOrder は注文を部分更新する。
// PUT /api/orders/:id
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	o, err := h.service.Update(r.Context(), id, order.Patch{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Status:    req.Status,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// DeleteOrder は注文を削除する。
// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toOrderResponse はmodel.OrderからAPIレスポンスに変換する。
func toOrderResponse(o *model.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		ProductID: o.ProductID,
		OrderDate: o.OrderDate,
		Status:    o.Status,
	}
}

// toOrderResponses は注文スライスをAPIレスポンスに変換する。
func toOrderResponses(orders []*model.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}
