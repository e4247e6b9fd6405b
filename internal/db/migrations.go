package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS devices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		owner_username VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_devices_owner_username ON devices (owner_username);`,
	`CREATE TABLE IF NOT EXISTS areas (
		id VARCHAR(160) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		owner_username VARCHAR(128) NOT NULL,
		device_id UUID NOT NULL REFERENCES devices(id),
		polygon JSONB NOT NULL,
		sample_count INTEGER NOT NULL DEFAULT 0,
		avg_temperature DOUBLE PRECISION,
		avg_moisture DOUBLE PRECISION,
		avg_nitrogen DOUBLE PRECISION,
		avg_phosphorus DOUBLE PRECISION,
		avg_potassium DOUBLE PRECISION,
		avg_ph DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_areas_owner_username ON areas (owner_username);`,
	`CREATE INDEX IF NOT EXISTS idx_areas_device_id ON areas (device_id);`,
	`CREATE TABLE IF NOT EXISTS measurements (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		area_id VARCHAR(160) NOT NULL REFERENCES areas(id),
		device_id UUID NOT NULL REFERENCES devices(id),
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		sequence_in_area INTEGER NOT NULL,
		temperature DOUBLE PRECISION NOT NULL DEFAULT 0,
		moisture DOUBLE PRECISION NOT NULL DEFAULT 0,
		nitrogen DOUBLE PRECISION NOT NULL DEFAULT 0,
		phosphorus DOUBLE PRECISION NOT NULL DEFAULT 0,
		potassium DOUBLE PRECISION NOT NULL DEFAULT 0,
		ph DOUBLE PRECISION NOT NULL DEFAULT 0,
		location_label VARCHAR(255),
		captured_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_measurements_area_id ON measurements (area_id);`,
	`CREATE INDEX IF NOT EXISTS idx_measurements_device_id ON measurements (device_id);`,
	`CREATE INDEX IF NOT EXISTS idx_measurements_captured_at ON measurements (captured_at);`,
	`CREATE INDEX IF NOT EXISTS idx_measurements_area_sequence ON measurements (area_id, sequence_in_area);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_devices_updated_at') THEN
			CREATE TRIGGER trg_devices_updated_at
				BEFORE UPDATE ON devices
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_areas_updated_at') THEN
			CREATE TRIGGER trg_areas_updated_at
				BEFORE UPDATE ON areas
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
