package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateLocationTables creates the flat country/state/city lookup tables and
// the user_addresses table linking to them. The location FKs cascade:
// deleting a lookup row deletes the addresses referencing it.
func CreateLocationTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_create_location_tables",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS countries (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					title VARCHAR(255) NOT NULL,
					code VARCHAR(3) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS states (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					title VARCHAR(255) NOT NULL,
					code VARCHAR(3) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS cities (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					title VARCHAR(255) NOT NULL,
					code VARCHAR(3) NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS user_addresses (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					address_line1 VARCHAR(255),
					address_line2 VARCHAR(255),
					postal_code VARCHAR(20),
					country_id UUID REFERENCES countries(id) ON DELETE CASCADE,
					state_id UUID REFERENCES states(id) ON DELETE CASCADE,
					city_id UUID REFERENCES cities(id) ON DELETE CASCADE,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
				);

				CREATE INDEX idx_user_addresses_user_id ON user_addresses(user_id);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS user_addresses;
				DROP TABLE IF EXISTS cities;
				DROP TABLE IF EXISTS states;
				DROP TABLE IF EXISTS countries;
			`).Error
		},
	}
}
