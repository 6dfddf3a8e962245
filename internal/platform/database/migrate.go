package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS contests (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		creator_email TEXT NOT NULL,
		image TEXT,
		description TEXT,
		price NUMERIC NOT NULL DEFAULT 0,
		prize TEXT,
		task_instruction TEXT,
		type TEXT,
		deadline TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		participants_count INTEGER NOT NULL DEFAULT 0 CHECK (participants_count >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (creator_email, name)
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY,
		contest_id UUID NOT NULL,
		contest_name TEXT NOT NULL,
		amount NUMERIC NOT NULL,
		email TEXT NOT NULL,
		transaction_id TEXT NOT NULL UNIQUE,
		payment_status TEXT NOT NULL,
		paid_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate applies the schema. Statements are idempotent, so running it on
// every startup is safe.
func Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	return nil
}
