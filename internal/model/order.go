package model

import "time"

// Order は注文を表す。
// UserIDとProductIDは宣言上の外部キーであり、エンジン側の整合性強制は
// デフォルトで無効のまま運用する。参照チェックはサービス層で行う。
// OrderDateは未指定の場合、ストレージエンジンのCURRENT_TIMESTAMPが採用される。
// Statusは自由形式のテキストで、列挙制約は設けない。
type Order struct {
	ID        int64
	UserID    int64
	ProductID int64
	OrderDate time.Time
	Status    string
}
