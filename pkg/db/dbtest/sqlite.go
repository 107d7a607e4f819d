// Package dbtest opens throwaway sqlite databases carrying the society schema
// for repository tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  phone TEXT UNIQUE,
  full_name TEXT NOT NULL,
  password_hash TEXT NOT NULL DEFAULT '',
  avatar_url TEXT,
  global_role TEXT NOT NULL DEFAULT 'member',
  is_active INTEGER NOT NULL DEFAULT 1,
  settings TEXT,
  last_login DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE societies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT,
  city TEXT,
  state TEXT,
  pincode TEXT,
  contact_person TEXT,
  contact_email TEXT,
  contact_phone TEXT,
  logo_url TEXT,
  approval_status TEXT NOT NULL DEFAULT 'pending',
  approved_by TEXT,
  approved_at DATETIME,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE user_societies (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  society_id TEXT NOT NULL REFERENCES societies(id) ON DELETE CASCADE,
  role TEXT NOT NULL DEFAULT 'member',
  approval_status TEXT NOT NULL DEFAULT 'pending',
  approved_by TEXT,
  approved_at DATETIME,
  rejected_by TEXT,
  rejected_at DATETIME,
  rejection_reason TEXT,
  flat_no TEXT,
  wing TEXT,
  is_primary INTEGER NOT NULL DEFAULT 0,
  joined_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT ux_user_societies_user_society UNIQUE (user_id, society_id)
);`,
	`CREATE TABLE issues (
  id TEXT PRIMARY KEY,
  society_id TEXT NOT NULL REFERENCES societies(id) ON DELETE CASCADE,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  category TEXT,
  priority TEXT NOT NULL DEFAULT 'medium',
  status TEXT NOT NULL DEFAULT 'open',
  reported_by TEXT NOT NULL,
  assigned_to TEXT,
  location TEXT,
  images TEXT,
  attachment_urls TEXT,
  issue_date DATETIME NOT NULL,
  target_resolution_date DATETIME,
  resolved_date DATETIME,
  resolution_notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE issue_comments (
  id TEXT PRIMARY KEY,
  issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL,
  comment TEXT NOT NULL,
  attachment_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE asset_categories (
  id TEXT PRIMARY KEY,
  society_id TEXT NOT NULL REFERENCES societies(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT ux_asset_categories_society_name UNIQUE (society_id, name)
);`,
	`CREATE TABLE amcs (
  id TEXT PRIMARY KEY,
  society_id TEXT NOT NULL REFERENCES societies(id) ON DELETE CASCADE,
  vendor_name TEXT NOT NULL,
  vendor_code TEXT,
  contact_person TEXT,
  contact_phone TEXT,
  email TEXT,
  vendor_address TEXT,
  service_type TEXT NOT NULL,
  contract_start_date DATETIME NOT NULL,
  contract_end_date DATETIME NOT NULL,
  annual_cost TEXT,
  currency TEXT NOT NULL DEFAULT 'INR',
  maintenance_frequency TEXT,
  last_service_date DATETIME,
  next_service_date DATETIME,
  service_reminder_days INTEGER NOT NULL DEFAULT 7,
  renewal_reminder_days INTEGER NOT NULL DEFAULT 30,
  status TEXT NOT NULL DEFAULT 'active',
  notes TEXT,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE assets (
  id TEXT PRIMARY KEY,
  society_id TEXT NOT NULL REFERENCES societies(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  category_id TEXT NOT NULL REFERENCES asset_categories(id),
  description TEXT,
  purchase_date DATETIME,
  purchase_cost TEXT,
  warranty_expiry_date DATETIME,
  amc_id TEXT REFERENCES amcs(id) ON DELETE SET NULL,
  location TEXT,
  asset_code TEXT UNIQUE,
  image_url TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  last_maintenance_date DATETIME,
  next_maintenance_date DATETIME,
  maintenance_frequency TEXT,
  notes TEXT,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE amc_service_history (
  id TEXT PRIMARY KEY,
  amc_id TEXT NOT NULL REFERENCES amcs(id) ON DELETE CASCADE,
  service_date DATETIME NOT NULL,
  service_type TEXT,
  technician_name TEXT,
  work_performed TEXT,
  issues_found TEXT,
  parts_replaced TEXT,
  service_cost TEXT,
  invoice_number TEXT,
  next_service_date DATETIME,
  rating INTEGER,
  feedback TEXT,
  notes TEXT,
  created_by TEXT,
  created_at DATETIME
);`,
}

// Open returns an isolated in-memory database with the schema applied.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}
