package database

import "estateledger/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.Office{},
		&models.Agent{},
		&models.Customer{},
		&models.AgentOffice{},
		&models.House{},
		&models.Listing{},
		&models.Sale{},
		&models.AgentCommission{},
		&models.SalePriceSummary{},
	)
}
