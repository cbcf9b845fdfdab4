// Command promote sets a user's role to ADMIN by username.
// It is used to bootstrap the first admin user.
//
// Usage:
//
//	promote --username=alice
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	username := flag.String("username", "", "username of user to promote to admin")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --username=alice")
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx,
		"UPDATE users SET role = 'ADMIN', updated_at = now() WHERE username = $1 AND role != 'ADMIN'",
		*username,
	)
	if err != nil {
		log.Fatalf("update role: %v", err)
	}

	if tag.RowsAffected() == 0 {
		fmt.Printf("No user found with username %q, or already admin.\n", *username)
		os.Exit(1)
	}

	fmt.Printf("User %q promoted to admin.\n", *username)
}
