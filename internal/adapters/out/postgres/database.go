package postgres

import (
	"fmt"

	"foodorder/internal/adapters/out/postgres/assignmentrepo"
	"foodorder/internal/adapters/out/postgres/couponrepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/partnerrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a libpq connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode,
	)
}

// Open connects to PostgreSQL. Unique violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// Migrate creates or updates the schema of every repository.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&couponrepo.CouponDTO{},
		&couponrepo.CouponUsageDTO{},
		&orderrepo.OrderDTO{},
		&partnerrepo.PartnerDTO{},
		&assignmentrepo.AssignmentDTO{},
	); err != nil {
		return err
	}

	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON assignments (order_id) WHERE status NOT IN ('delivered', 'cancelled')",
		assignmentrepo.LiveOrderIndex,
	)).Error
}
