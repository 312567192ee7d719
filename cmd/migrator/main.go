package main

import (
	"context"
	"flag"
	"log"

	"github.com/UnknownOlympus/members/internal/config"
	"github.com/UnknownOlympus/members/internal/repository"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with goose migrations")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.MustLoad()

	dbpool, dbErr := repository.NewDatabase(context.Background(), cfg.Postgres)
	if dbErr != nil {
		log.Fatalf("Failed to connect to DB: %v", dbErr)
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal(err)
	}
	if migrationErr := goose.Run(command, dtb, *dir, flag.Args()[min(1, flag.NArg()):]...); migrationErr != nil {
		log.Fatal(migrationErr)
	}

	log.Printf("✅ Migration command %q applied successfully", command)
}
