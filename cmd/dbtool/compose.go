package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"site-admin/deployments"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "输出本地基础设施的 Docker Compose 模板",
	Long:  "输出内嵌的 Docker Compose 模板，可直接管道到文件：dbtool compose > docker-compose.yml",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(deployments.DockerComposeInfra)
	},
}
