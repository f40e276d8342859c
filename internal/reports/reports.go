package reports

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"estateledger/server/internal/models"
)

// Reporter runs the read-only aggregations over the sales ledger. Every
// query filters on the exact sale year (and month where given), never a
// rolling window.
type Reporter struct {
	db *gorm.DB
}

func NewReporter(db *gorm.DB) *Reporter {
	return &Reporter{db: db}
}

const periodFilter = `CAST(strftime('%Y', s.sale_date) AS INTEGER) = ?
  AND CAST(strftime('%m', s.sale_date) AS INTEGER) = ?`

type OfficeSales struct {
	OfficeID  int64  `json:"office_id"`
	Location  string `json:"location"`
	HomesSold int64  `json:"homes_sold"`
}

// TopOfficesBySales returns the five offices with the most sales in the
// period, busiest first.
func (r *Reporter) TopOfficesBySales(year, month int) ([]OfficeSales, error) {
	var rows []OfficeSales
	err := r.db.Raw(`
		SELECT o.id AS office_id, o.location AS location, COUNT(s.id) AS homes_sold
		FROM sales s
		JOIN listings l ON l.id = s.listing_id
		JOIN offices o ON o.id = l.office_id
		WHERE `+periodFilter+`
		GROUP BY o.id
		ORDER BY homes_sold DESC
		LIMIT 5`, year, month).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top offices query: %w", err)
	}
	return rows, nil
}

type AgentSales struct {
	AgentID         int64  `json:"agent_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	AmountSoldCents int64  `json:"amount_sold_cents"`
}

// TopAgentsBySales returns the five agents who sold the most in the period,
// with contact details so they are easy to congratulate.
func (r *Reporter) TopAgentsBySales(year, month int) ([]AgentSales, error) {
	var rows []AgentSales
	err := r.db.Raw(`
		SELECT a.id AS agent_id, a.first_name, a.last_name, a.email,
		       SUM(s.price_cents) AS amount_sold_cents
		FROM sales s
		JOIN listings l ON l.id = s.listing_id
		JOIN agents a ON a.id = l.agent_id
		WHERE `+periodFilter+`
		GROUP BY a.id
		ORDER BY amount_sold_cents DESC
		LIMIT 5`, year, month).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top agents query: %w", err)
	}
	return rows, nil
}

// TopAgentsBySalesYear is the whole-year variant of TopAgentsBySales.
func (r *Reporter) TopAgentsBySalesYear(year int) ([]AgentSales, error) {
	var rows []AgentSales
	err := r.db.Raw(`
		SELECT a.id AS agent_id, a.first_name, a.last_name, a.email,
		       SUM(s.price_cents) AS amount_sold_cents
		FROM sales s
		JOIN listings l ON l.id = s.listing_id
		JOIN agents a ON a.id = l.agent_id
		WHERE CAST(strftime('%Y', s.sale_date) AS INTEGER) = ?
		GROUP BY a.id
		ORDER BY amount_sold_cents DESC
		LIMIT 5`, year).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top agents by year query: %w", err)
	}
	return rows, nil
}

// commissionCase mirrors models.Commission in SQL so the snapshot and the
// in-process calculation can never drift apart on a given price.
const commissionCase = `CASE
	WHEN s.price_cents <= 100000 THEN s.price_cents * 10 / 100
	WHEN s.price_cents <= 200000 THEN s.price_cents * 75 / 1000
	WHEN s.price_cents <= 500000 THEN s.price_cents * 6 / 100
	WHEN s.price_cents <= 1000000 THEN s.price_cents * 5 / 100
	ELSE s.price_cents * 4 / 100
END`

// SnapshotAgentCommissions computes the commission owed per agent for the
// period and stores it in agent_commissions, replacing any earlier snapshot
// rows for the same period. Recomputing a period is therefore idempotent.
func (r *Reporter) SnapshotAgentCommissions(year, month int) ([]models.AgentCommission, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("year = ? AND month = ?", year, month).
			Delete(&models.AgentCommission{}).Error; err != nil {
			return err
		}
		return tx.Exec(`
			INSERT INTO agent_commissions (agent_id, year, month, amount_cents)
			SELECT l.agent_id, ?, ?, SUM(`+commissionCase+`)
			FROM sales s
			JOIN listings l ON l.id = s.listing_id
			WHERE `+periodFilter+`
			GROUP BY l.agent_id`, year, month, year, month).Error
	})
	if err != nil {
		return nil, fmt.Errorf("commission snapshot: %w", err)
	}

	var snapshot []models.AgentCommission
	err = r.db.Where("year = ? AND month = ?", year, month).
		Order("amount_cents DESC").
		Find(&snapshot).Error
	if err != nil {
		return nil, fmt.Errorf("commission snapshot read-back: %w", err)
	}
	return snapshot, nil
}

// AverageDaysOnMarket returns the mean number of whole days between listing
// and sale for the houses sold in the period. Zero when nothing sold.
func (r *Reporter) AverageDaysOnMarket(year, month int) (float64, error) {
	var avg sql.NullFloat64
	row := r.db.Raw(`
		SELECT AVG(CAST(julianday(s.sale_date) - julianday(l.listing_date) AS INTEGER))
		FROM sales s
		JOIN listings l ON l.id = s.listing_id
		WHERE `+periodFilter, year, month).Row()
	if err := row.Scan(&avg); err != nil {
		return 0, fmt.Errorf("average days on market query: %w", err)
	}
	return avg.Float64, nil
}

// AverageSalePrice returns the mean sale price in cents for the period.
// Zero when nothing sold.
func (r *Reporter) AverageSalePrice(year, month int) (float64, error) {
	var avg sql.NullFloat64
	row := r.db.Raw(`
		SELECT AVG(s.price_cents)
		FROM sales s
		WHERE `+periodFilter, year, month).Row()
	if err := row.Scan(&avg); err != nil {
		return 0, fmt.Errorf("average sale price query: %w", err)
	}
	return avg.Float64, nil
}

type ZipCodeStats struct {
	ZipCode          string  `json:"zip_code"`
	AveragePriceCents float64 `json:"average_price_cents"`
}

// TopZipCodesByAveragePrice returns the five zip codes with the highest
// average sale price in the period.
func (r *Reporter) TopZipCodesByAveragePrice(year, month int) ([]ZipCodeStats, error) {
	var rows []ZipCodeStats
	err := r.db.Raw(`
		SELECT h.zip_code, AVG(s.price_cents) AS average_price_cents
		FROM sales s
		JOIN listings l ON l.id = s.listing_id
		JOIN houses h ON h.id = l.house_id
		WHERE `+periodFilter+`
		GROUP BY h.zip_code
		ORDER BY average_price_cents DESC
		LIMIT 5`, year, month).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top zip codes query: %w", err)
	}
	return rows, nil
}

// RunningTotal reads the SalePriceSummary row. Zero before the first sale.
func (r *Reporter) RunningTotal() (int64, error) {
	var summary models.SalePriceSummary
	err := r.db.First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("running total query: %w", err)
	}
	return summary.TotalCents, nil
}
