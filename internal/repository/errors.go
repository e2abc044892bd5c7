package repository

import "gorm.io/gorm"

// 数据库约束错误，依赖 gorm.Config{TranslateError: true}
var (
	ErrDuplicateKey   = gorm.ErrDuplicatedKey
	ErrForeignKey     = gorm.ErrForeignKeyViolated
	ErrRecordNotFound = gorm.ErrRecordNotFound
)
