package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将嵌入的 SQL 迁移应用到最新版本
// 服务启动时调用；无待执行迁移时静默通过，dirty 状态只告警不中断启动。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取嵌入迁移目录失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("初始化 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("构建迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("应用迁移失败: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("数据库无迁移记录")
			return nil
		}
		return fmt.Errorf("读取迁移版本失败: %w", err)
	}
	if dirty {
		logger.Warn("迁移版本处于 dirty 状态，需人工介入", zap.Uint("version", version))
		return nil
	}

	logger.Info("数据库结构已就绪", zap.Uint("version", version))
	return nil
}
