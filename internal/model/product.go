package model

// Product はストアの商品を表す。
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
}
