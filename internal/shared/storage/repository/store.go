package repository

import (
	"context"
	"sort"

	"site-admin/internal/shared/model"
	"site-admin/internal/shared/storage"
)

// Store 聚合四个逻辑集合的仓库
type Store struct {
	Users        *Collection[model.User]
	Messages     *Collection[model.Message]
	Interactions *Collection[model.Interaction]
	Menu         *Collection[model.AdminMenuItem]
}

// NewStore 创建仓库聚合
func NewStore(sel *storage.Selector) *Store {
	return &Store{
		Users:        NewCollection[model.User](sel, storage.ColUsers),
		Messages:     NewCollection[model.Message](sel, storage.ColMessages),
		Interactions: NewCollection[model.Interaction](sel, storage.ColInteractions),
		Menu:         NewCollection[model.AdminMenuItem](sel, storage.ColAdminMenu),
	}
}

// MenuItems 返回按 order 排序的菜单项（服务期只读）
func (s *Store) MenuItems(ctx context.Context) ([]model.AdminMenuItem, error) {
	items, err := s.Menu.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items, nil
}

// AppendInteraction 追加一条审计记录
func (s *Store) AppendInteraction(ctx context.Context, rec model.Interaction) error {
	return s.Interactions.Update(ctx, func(items []model.Interaction) ([]model.Interaction, error) {
		return append(items, rec), nil
	})
}
