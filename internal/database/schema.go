package database

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    email TEXT UNIQUE NOT NULL,
    name TEXT,
    role TEXT NOT NULL DEFAULT 'user',
    created_at TIMESTAMPTZ DEFAULT NOW(),
    last_log_in TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS parcels (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    tracking_id TEXT UNIQUE NOT NULL,
    title TEXT,
    type TEXT,
    weight NUMERIC(10,2) DEFAULT 0,
    cost BIGINT DEFAULT 0,
    sender_name TEXT,
    sender_contact TEXT,
    sender_address TEXT,
    receiver_name TEXT,
    receiver_contact TEXT,
    receiver_address TEXT,
    created_by TEXT NOT NULL,
    payment_status TEXT NOT NULL DEFAULT 'Unpaid',
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS payments (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    parcel_id UUID NOT NULL,
    user_email TEXT NOT NULL,
    amount BIGINT NOT NULL,
    payment_method TEXT,
    transaction_id TEXT,
    paid_at TIMESTAMPTZ DEFAULT NOW(),
    paid_at_string TEXT
);

CREATE INDEX IF NOT EXISTS idx_parcels_created_by ON parcels(created_by);
CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_payments_user_email ON payments(user_email);
CREATE INDEX IF NOT EXISTS idx_payments_paid_at ON payments(paid_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
