package migration

import (
	"github.com/smallbiznis/riasku/internal/config"
	"github.com/smallbiznis/riasku/internal/store"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.StoreBackend != "db" {
			return nil
		}
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}
		// sqlite/mysql development setups: schema follows the model
		return conn.AutoMigrate(&store.KVRecord{})
	}),
)
