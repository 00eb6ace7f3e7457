// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService は商品名・商品説明などの自由テキスト入力から
// HTMLタグを除去し、格納データを平文に正規化する。
// bluemondayのStrictPolicyを使用し、すべてのタグと属性を除去する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizerService はテキストサニタイズ機能のインターフェースを定義する。
// 商品の作成・更新時に使用される。
type TextSanitizerService interface {
	// Sanitize は入力テキストからHTMLタグと属性をすべて除去した平文を返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはすべてのHTML要素を許可しないポリシーで、
// scriptタグやon*イベント属性を含む一切のマークアップを除去する。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストからHTMLタグをすべて除去した平文を返す。
// bluemondayはエンティティ参照へのエスケープを行うため、
// 平文カラムとして格納する前にアンエスケープして元の文字に戻す。
func (s *textSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
