package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateProfilesTable creates the profiles table. The user link is nullable
// per the current schema, and the audit columns reference profiles(id)
// without a cascade so deleting an auditor never removes the rows it touched.
func CreateProfilesTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_profiles_table",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS profiles (
					id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
					user_id UUID UNIQUE REFERENCES users(id) ON DELETE CASCADE,
					email VARCHAR(255) NOT NULL UNIQUE,
					email_verified BOOLEAN DEFAULT FALSE,
					dob DATE,
					stripe_id VARCHAR(255),
					profile_image TEXT,
					is_social BOOLEAN DEFAULT FALSE,
					google_login_token VARCHAR(255),
					facebook_login_token VARCHAR(255),
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					created_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
					modified_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					modified_by UUID REFERENCES profiles(id) ON DELETE SET NULL,
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX idx_profiles_email ON profiles(email);
				CREATE INDEX idx_profiles_deleted_at ON profiles(deleted_at);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP TABLE IF EXISTS profiles;`).Error
		},
	}
}
