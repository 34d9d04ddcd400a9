package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"restaurant-ops/bot"
	"restaurant-ops/config"
	"restaurant-ops/db"
	"restaurant-ops/logger"
	"restaurant-ops/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := applyMigrations(context.Background(), true); err != nil {
				fmt.Fprintln(os.Stderr, "migrate:", err)
				os.Exit(1)
			}
			return
		case "seed":
			if err := services.Seed(context.Background()); err != nil {
				fmt.Fprintln(os.Stderr, "seed:", err)
				os.Exit(1)
			}
			fmt.Println("Seed data inserted.")
			return
		case "adduser":
			if len(os.Args) != 6 {
				fmt.Fprintln(os.Stderr, "usage: restaurant-ops adduser <username> <password> <name> <role>")
				os.Exit(1)
			}
			id, err := services.RegisterUser(context.Background(), os.Args[2], os.Args[3], os.Args[4], os.Args[5])
			if err != nil {
				fmt.Fprintln(os.Stderr, "adduser:", err)
				os.Exit(1)
			}
			fmt.Println("User created with id", id)
			return
		}
	}

	// Optional auto-migration for fresh databases. Set AUTO_MIGRATE=1 to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set: nothing to run (use the migrate or seed subcommand, or configure the staff bot)")
		os.Exit(1)
	}

	log := logger.New("staff-bot")
	b, err := bot.New(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}

	log.Info("staff bot started")
	b.Start()
}
