// migrate aplica las migraciones SQL pendientes sobre la base configurada.
// Registra lo aplicado en schema_migrations; volver a correrlo no repite nada.
//
// Uso: go run ./cmd/migrate [-dir ruta/migraciones]
package main

import (
	"context"
	"flag"

	"github.com/jhoicas/vinoteca-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vinoteca-api/pkg/config"
	"github.com/jhoicas/vinoteca-api/pkg/logger"
)

func main() {
	dir := flag.String("dir", "internal/infrastructure/postgres/migrations", "directorio con archivos *.up.sql")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, *dir); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Str("dir", *dir).Msg("migraciones aplicadas")
}
