// Package main dbtool 数据维护命令行工具
//
// 子命令：
//   - seed-users / seed-menu: 把本地 JSON 集合文件灌入 MongoDB
//   - inspect: 查看当前后端和各集合条数
//   - print-users / print-menu: 通过运行中的 API 查看数据
//   - compose: 输出本地基础设施的 Docker Compose 模板
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "站点后台数据维护工具",
	Long:  "dbtool 用于离线维护站点后台数据：向 MongoDB 灌入种子数据、检查存储状态、通过 API 导出数据。",
}

func main() {
	rootCmd.AddCommand(seedUsersCmd, seedMenuCmd, inspectCmd, printUsersCmd, printMenuCmd, composeCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
