package model

// AdminMenuItem 管理后台菜单项
// 由 dbtool seed-menu 离线种入，服务期只读，按 Order 排序返回。
type AdminMenuItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}
