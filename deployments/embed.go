// Package deployments 嵌入部署相关文件到二进制
package deployments

import _ "embed"

// DockerComposeInfra 基础设施 Docker Compose 模板（本地起 MongoDB 用）
//
//go:embed docker-compose.infra.yml
var DockerComposeInfra string
