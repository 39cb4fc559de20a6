// Package models はTodoを定義します。
package models

// Todo は todos テーブルの1行を表します。
// JSON への変換は dto パッケージで行うため、ここにはタグを付けません。
type Todo struct {
	ID          int64 // 主キー (ストレージが採番)
	Title       string
	IsCompleted bool
}
