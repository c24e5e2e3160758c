package repoargs

import "github.com/fsdevblog/dzstore/internal/domain"

type ItemUpsert struct {
	Name           string
	Description    string
	Price          int64
	Category       domain.ItemCategory
	Classname      string
	Attachments    domain.Attachments
	SortOrder      int
	StockUnlimited bool
	StockQuantity  int64
	IsActive       bool
}

type CategoryCount struct {
	Category domain.ItemCategory
	Count    int64
}
