package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes a single table column.
type ColumnInfo struct {
	Field   string
	Type    string
	Primary bool
}

// GetTableColumns retrieves the column definitions for a given table.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == DriverSQLite {
		type sqliteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range rows {
			columns = append(columns, ColumnInfo{
				Field:   strings.ToLower(col.Name),
				Type:    strings.ToLower(col.Type),
				Primary: col.Pk > 0,
			})
		}
		return columns, nil
	}

	type mysqlColumn struct {
		Field string
		Type  string
		Key   string
	}
	var rows []mysqlColumn
	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for _, col := range rows {
		columns = append(columns, ColumnInfo{
			Field:   strings.ToLower(col.Field),
			Type:    strings.ToLower(col.Type),
			Primary: col.Key == "PRI",
		})
	}
	return columns, nil
}

// GetIndexNames lists the names of the secondary indexes defined on a table.
func GetIndexNames(db *gorm.DB, tableName string) ([]string, error) {
	indexes, err := db.Migrator().GetIndexes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get indexes for table %s: %w", tableName, err)
	}

	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		if pk, ok := idx.PrimaryKey(); ok && pk {
			continue
		}
		names = append(names, idx.Name())
	}
	return names, nil
}
