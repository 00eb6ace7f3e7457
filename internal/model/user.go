// Package model はドメインモデルを定義する。
package model

// User はストアの顧客を表す。
// IDはストレージエンジンが採番する（INTEGER PRIMARY KEY）。
// Passwordは元スキーマとの互換性のため平文のまま保持する。
// ハッシュ化ストレージへの移行はスキーマ契約の外側であり、
// カラムの意味を黙って変更しないためにそのまま保存する。
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Password  string
}
