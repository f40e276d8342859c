// Command seed fills the ledger with demo data through the registration
// procedures, then prints each report for the current month.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"estateledger/server/config"
	"estateledger/server/internal/database"
	"estateledger/server/internal/ledger"
	"estateledger/server/internal/reports"
)

var firstNames = []string{
	"Alice", "Bram", "Carmen", "Derek", "Elena", "Frank", "Greta", "Hugo",
	"Iris", "Jonas", "Katja", "Lars", "Mona", "Niels", "Olga", "Pieter",
	"Quinn", "Rosa", "Sven", "Tessa",
}

var lastNames = []string{
	"Bakker", "Chen", "Dubois", "Evans", "Fischer", "Garcia", "Hansen",
	"Ivanov", "Jansen", "Kowalski", "Larsen", "Meyer", "Novak", "Olsen",
	"Peters", "Quist", "Rossi", "Smit", "Tanaka", "Visser",
}

var streets = []string{
	"Main St", "Oak Ave", "Elm St", "Maple Dr", "Cedar Ln", "Park Rd",
	"Lake View", "Hill Crest", "River Way", "Forest Path",
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.WarnLevel)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	lgr := ledger.NewLedger(db.GetDB(), logger)
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	for i := 0; i < cfg.Seed.People; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		if _, err := lgr.RegisterCustomer(first, last, fmt.Sprintf("%s.%s.%d@example.com", first, last, i)); err != nil {
			logger.WithError(err).Warn("Skipping customer")
		}
		if _, err := lgr.RegisterAgent(first, last, fmt.Sprintf("%s.%s.%d@agency.example.com", first, last, i)); err != nil {
			logger.WithError(err).Warn("Skipping agent")
		}
	}

	for i := 0; i < cfg.Seed.Places; i++ {
		office, err := lgr.RegisterOffice(
			fmt.Sprintf("Branch %d", i+1),
			fmt.Sprintf("%d %s", 100+i, streets[rng.Intn(len(streets))]),
		)
		if err != nil {
			logger.WithError(err).Warn("Skipping office")
			continue
		}
		_, err = lgr.RegisterHouse(
			1+rng.Intn(6), 1+rng.Intn(4),
			fmt.Sprintf("%d %s", rng.Intn(9000)+1000, streets[rng.Intn(len(streets))]),
			fmt.Sprintf("%05d", 10000+rng.Intn(89999)),
			office.ID,
		)
		if err != nil {
			logger.WithError(err).Warn("Skipping house")
		}
		if _, err := lgr.AssignAgentToOffice(int64(1+rng.Intn(cfg.Seed.People)), office.ID); err != nil {
			logger.WithError(err).Warn("Skipping agent-office assignment")
		}
	}

	for i := 0; i < cfg.Seed.Listings; i++ {
		listingDate := now.AddDate(0, 0, -rng.Intn(120))
		_, err := lgr.RegisterListing(
			int64(1+rng.Intn(cfg.Seed.Places)),
			int64(1+rng.Intn(cfg.Seed.People)),
			int64(1+rng.Intn(cfg.Seed.People)),
			int64(1+rng.Intn(cfg.Seed.Places)),
			int64(50_000+rng.Intn(3_000_000)),
			&listingDate,
		)
		if err != nil {
			logger.WithError(err).Warn("Skipping listing")
		}
	}

	for i := 0; i < cfg.Seed.Listings; i++ {
		_, err := lgr.RegisterSale(
			int64(1+rng.Intn(cfg.Seed.People)),
			int64(1+rng.Intn(cfg.Seed.Listings)),
			int64(50_000+rng.Intn(3_000_000)),
			nil,
		)
		if err != nil {
			// Most failures here are listings already closed by an
			// earlier iteration, which is expected demo noise.
			logger.WithError(err).Debug("Skipping sale")
		}
	}

	printReports(reports.NewReporter(db.GetDB()), now.Year(), int(now.Month()))
}

func printReports(reporter *reports.Reporter, year, month int) {
	fmt.Printf("Reports for %d-%02d\n\n", year, month)

	offices, err := reporter.TopOfficesBySales(year, month)
	if err == nil {
		fmt.Println("Top 5 offices by homes sold:")
		for _, o := range offices {
			fmt.Printf("  %s: %d\n", o.Location, o.HomesSold)
		}
	}

	agents, err := reporter.TopAgentsBySales(year, month)
	if err == nil {
		fmt.Println("Top 5 agents by amount sold:")
		for _, a := range agents {
			fmt.Printf("  %s %s (%s): $%.2f\n", a.FirstName, a.LastName, a.Email, float64(a.AmountSoldCents)/100)
		}
	}

	commissions, err := reporter.SnapshotAgentCommissions(year, month)
	if err == nil {
		fmt.Println("Commission owed per agent:")
		for _, c := range commissions {
			fmt.Printf("  agent %d: $%.2f\n", c.AgentID, float64(c.AmountCents)/100)
		}
	}

	if days, err := reporter.AverageDaysOnMarket(year, month); err == nil {
		fmt.Printf("Average days on market: %.1f\n", days)
	}

	if avg, err := reporter.AverageSalePrice(year, month); err == nil {
		fmt.Printf("Average sale price: $%.2f\n", avg/100)
	}

	zips, err := reporter.TopZipCodesByAveragePrice(year, month)
	if err == nil {
		fmt.Println("Top 5 zip codes by average sale price:")
		for _, z := range zips {
			fmt.Printf("  %s: $%.2f\n", z.ZipCode, z.AveragePriceCents/100)
		}
	}

	if total, err := reporter.RunningTotal(); err == nil {
		fmt.Printf("Running total of all sales: $%.2f\n", float64(total)/100)
	}
}
