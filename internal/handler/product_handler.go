package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hitoshi/storeman/internal/middleware"
	"github.com/hitoshi/storeman/internal/model"
	"github.com/hitoshi/storeman/internal/product"
)

// ProductServiceInterface は商品ハンドラーが必要とするサービスインターフェース。
type ProductServiceInterface interface {
	// Create は商品を作成する。
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	// Get は指定IDの商品を取得する。見つからない場合はPRODUCT_NOT_FOUNDを返す。
	Get(ctx context.Context, id int64) (*model.Product, error)
	// List は全商品をID昇順で返す。
	List(ctx context.Context) ([]*model.Product, error)
	// ListSorted は価格フィルタとソートを適用した商品一覧を返す。
	ListSorted(ctx context.Context, q product.ListQuery) ([]*model.Product, error)
	// Update は商品を部分更新する。
	Update(ctx context.Context, id int64, patch product.Patch) (*model.Product, error)
	// Delete は指定IDの商品を削除する。
	Delete(ctx context.Context, id int64) error
}

// ProductHandler は商品管理のHTTPハンドラー。
type ProductHandler struct {
	service ProductServiceInterface
}

// NewProductHandler はProductHandlerを生成する。
func NewProductHandler(service ProductServiceInterface) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// createProductRequest は商品作成リクエストのボディ。
type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// updateProductRequest は商品更新リクエストのボディ。
// 省略されたフィールドは変更しない。
type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// productResponse は商品情報のAPIレスポンス。
type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CreateProduct は商品作成を処理する。
// POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	p, err := h.service.Create(r.Context(), &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// GetProduct は商品詳細を取得する。
// GET /api/products/:id
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// ListProducts は商品一覧を取得する。
// GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// ListSortedProducts は価格フィルタとソートを適用した商品一覧を取得する。
// GET /api/products/sorted?min_price=&max_price=&sort_by=&desc=
func (h *ProductHandler) ListSortedProducts(w http.ResponseWriter, r *http.Request) {
	q := product.ListQuery{
		SortBy: r.URL.Query().Get("sort_by"),
		Desc:   r.URL.Query().Get("desc") == "true",
	}

	minPrice, ok := parsePriceParam(w, r, "min_price")
	if !ok {
		return
	}
	q.MinPrice = minPrice

	maxPrice, ok := parsePriceParam(w, r, "max_price")
	if !ok {
		return
	}
	q.MaxPrice = maxPrice

	products, err := h.service.ListSorted(r.Context(), q)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// UpdateProduct は商品を部分更新する。
// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req updateProductRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	p, err := h.service.Update(r.Context(), id, product.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// DeleteProduct は商品を削除する。
// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
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

// parsePriceParam は価格フィルタのクエリパラメータを解析する。
// 未指定の場合はnilを返す。数値として解析できない場合は
// エラーレスポンスを書き込み、falseを返す。
func parsePriceParam(w http.ResponseWriter, r *http.Request, key string) (*float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidFilterError(key+"は数値で指定してください"))
		return nil, false
	}

	return &v, true
}

// toProductResponse はmodel.ProductからAPIレスポンスに変換する。
func toProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

// toProductResponses は商品スライスをAPIレスポンスに変換する。
func toProductResponses(products []*model.Product) []productResponse {
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	return resp
}
