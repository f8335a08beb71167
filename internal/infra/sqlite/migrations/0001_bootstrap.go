package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_bootstrap.sql
var bootstrapSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(bootstrapSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TABLE IF EXISTS answer_events;
				DROP TABLE IF EXISTS participations;
				DROP TABLE IF EXISTS games;
				DROP TABLE IF EXISTS answers;
				DROP TABLE IF EXISTS questions;
				DROP TABLE IF EXISTS players;
				DROP TABLE IF EXISTS difficulties;
				DROP TABLE IF EXISTS categories;
				DROP TABLE IF EXISTS config;
			`)
			return err
		},
	)
}
