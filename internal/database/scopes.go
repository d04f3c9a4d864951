package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/todo-api/internal/utils"
)

// Paginate limits a query to one page
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OrderAsc sorts ascending by each column in turn. Columns are interpolated
// into SQL and must come from a whitelist.
func OrderAsc(columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, column := range columns {
			db = db.Order(column + " ASC")
		}
		return db
	}
}
