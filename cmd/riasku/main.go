package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/riasku/internal/client"
	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/config"
	"github.com/smallbiznis/riasku/internal/crm"
	"github.com/smallbiznis/riasku/internal/invoice"
	"github.com/smallbiznis/riasku/internal/lock"
	"github.com/smallbiznis/riasku/internal/migration"
	"github.com/smallbiznis/riasku/internal/observability"
	"github.com/smallbiznis/riasku/internal/project"
	"github.com/smallbiznis/riasku/internal/reconcile"
	"github.com/smallbiznis/riasku/internal/scheduler"
	"github.com/smallbiznis/riasku/internal/seed"
	"github.com/smallbiznis/riasku/internal/server"
	"github.com/smallbiznis/riasku/internal/store"
	"github.com/smallbiznis/riasku/internal/validation"
	"github.com/smallbiznis/riasku/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		store.Module,
		migration.Module,
		lock.Module,
		seed.Module,

		// Functional domains
		client.Module,
		project.Module,
		invoice.Module,
		crm.Module,
		validation.Module,
		reconcile.Module,
		scheduler.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
