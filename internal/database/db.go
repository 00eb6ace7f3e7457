package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Open はSQLiteデータベースファイルを開く。存在しない場合は新規作成される。
// WALジャーナルとbusyタイムアウトを接続ごとのPRAGMAとして設定する。
// enforceForeignKeysがtrueの場合のみ外部キー制約の強制を有効にする。
// 元スキーマはFK強制を有効化していないため、デフォルトはfalseで運用する。
// sql.Openは接続を試行しないため、実際の接続確認にはdb.Ping()を使用すること。
func Open(path string, enforceForeignKeys bool) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", DSN(path, enforceForeignKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// DSN はSQLiteファイルパスからmodernc.org/sqlite用の接続文字列を組み立てる。
func DSN(path string, enforceForeignKeys bool) string {
	fk := 0
	if enforceForeignKeys {
		fk = 1
	}

	params := url.Values{}
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", fmt.Sprintf("foreign_keys(%d)", fk))

	return filepath.Clean(path) + "?" + params.Encode()
}
