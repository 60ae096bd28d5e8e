package repository

import (
	"database/sql/driver"
	"fmt"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
)

// unicodeLowerFunc sqlite 内置 LOWER 只折叠 ASCII，搜索改用按 Unicode 小写的自定义函数
const unicodeLowerFunc = "unicode_lower"

func init() {
	gosqlite.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, sqliteUnicodeLower)
}

func sqliteUnicodeLower(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildInsensitiveLikeCondition 构建多列忽略大小写的 OR 匹配条件，并返回参数数量。
func buildInsensitiveLikeCondition(db *gorm.DB, columns []string) (string, int) {
	return buildInsensitiveLikeConditionByDialect(dbDialectName(db), columns)
}

func buildInsensitiveLikeConditionByDialect(dialect string, columns []string) (string, int) {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, insensitiveLikeExpr(dialect, trimmed))
	}
	if len(parts) == 0 {
		return "", 0
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

func insensitiveLikeExpr(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("%s ILIKE ?", column)
	case "sqlite":
		return fmt.Sprintf("%s(%s) LIKE %s(?)", unicodeLowerFunc, column, unicodeLowerFunc)
	default:
		return fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", column)
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}

// containsPattern 生成包含匹配模式
func containsPattern(keyword string) string {
	return "%" + strings.TrimSpace(keyword) + "%"
}
