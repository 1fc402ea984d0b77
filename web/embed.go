//go:build !dev
// +build !dev

// Package web 提供前端静态文件的嵌入支持（生产模式）
//
// 使用 Go embed 将营销站点静态导出的 public/ 目录嵌入到二进制文件中，
// API Server 在未匹配路由上回落到这些文件。
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:public
var staticFiles embed.FS

// StaticFS 返回前端静态文件的文件系统，以 public/ 为根目录
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFiles, "public")
}

// IsEmbedded 返回 true 表示当前为生产模式（前端已嵌入）
func IsEmbedded() bool {
	return true
}
