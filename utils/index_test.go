package utils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pagedRow struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

var paginationDBSeq int64

func newPaginationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:utils_pagination_%d?mode=memory&cache=shared", atomic.AddInt64(&paginationDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pagedRow{}))
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, db.Create(&pagedRow{Name: name}).Error)
	}
	return db
}

func TestApplyPagination(t *testing.T) {
	db := newPaginationDB(t)

	var page []pagedRow
	err := ApplyPagination(db.Model(&pagedRow{}).Order("id asc"), Ptr(2), Ptr(2)).Find(&page).Error
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "c", page[0].Name)
	require.Equal(t, "d", page[1].Name)
}

func TestApplyPaginationUnsetReturnsAll(t *testing.T) {
	db := newPaginationDB(t)

	var all []pagedRow
	err := ApplyPagination(db.Model(&pagedRow{}).Order("id asc"), nil, nil).Find(&all).Error
	require.NoError(t, err)
	require.Len(t, all, 5)

	// limit 0 means no pagination, not an empty page
	var zero []pagedRow
	err = ApplyPagination(db.Model(&pagedRow{}).Order("id asc"), Ptr(0), Ptr(1)).Find(&zero).Error
	require.NoError(t, err)
	require.Len(t, zero, 5)
}

func TestCalculateGrowth(t *testing.T) {
	require.Equal(t, 0.0, CalculateGrowth(0, 0))
	require.Equal(t, 100.0, CalculateGrowth(42, 0))
	require.Equal(t, 50.0, CalculateGrowth(150, 100))
	require.Equal(t, -25.0, CalculateGrowth(75, 100))
}
