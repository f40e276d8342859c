package reports

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estateledger/server/internal/database"
	"estateledger/server/internal/ledger"
	"estateledger/server/internal/models"
)

// seedSoldMonth builds a small January 2023 ledger:
//
//	office 1 / agent 1: 100,000 sold after 10 days, 300,000 after 20 days
//	office 2 / agent 2: 1,000,000 sold after 10 days
//	office 2 / agent 2: 2,000,000 sold in February (outside the period)
//
// Houses 1 and 3 share zip 94111; house 2 is in 10001.
func seedSoldMonth(t *testing.T) *Reporter {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	l := ledger.NewLedger(db.GetDB(), logger)

	office1, err := l.RegisterOffice("Downtown", "12 Main St")
	require.NoError(t, err)
	office2, err := l.RegisterOffice("Harbor", "90 Pier Rd")
	require.NoError(t, err)
	agent1, err := l.RegisterAgent("Ada", "Smith", "ada@agency.example.com")
	require.NoError(t, err)
	agent2, err := l.RegisterAgent("Ben", "Jones", "ben@agency.example.com")
	require.NoError(t, err)
	seller, err := l.RegisterCustomer("Sam", "Seller", "sam@example.com")
	require.NoError(t, err)
	buyer, err := l.RegisterCustomer("Bea", "Buyer", "bea@example.com")
	require.NoError(t, err)

	type fixture struct {
		address    string
		zip        string
		officeID   int64
		agentID    int64
		listed     time.Time
		sold       time.Time
		priceCents int64
	}
	jan := func(day int) time.Time { return time.Date(2023, 1, day, 12, 0, 0, 0, time.UTC) }
	fixtures := []fixture{
		{"1 Elm St", "94111", office1.ID, agent1.ID, jan(5), jan(15), 100_000},
		{"2 Elm St", "10001", office1.ID, agent1.ID, jan(1), jan(21), 300_000},
		{"3 Elm St", "94111", office2.ID, agent2.ID, jan(10), jan(20), 1_000_000},
		{"4 Elm St", "20002", office2.ID, agent2.ID,
			time.Date(2023, 2, 1, 12, 0, 0, 0, time.UTC),
			time.Date(2023, 2, 11, 12, 0, 0, 0, time.UTC), 2_000_000},
	}
	for _, f := range fixtures {
		house, err := l.RegisterHouse(3, 2, f.address, f.zip, f.officeID)
		require.NoError(t, err)
		listing, err := l.RegisterListing(house.ID, seller.ID, f.agentID, f.officeID, f.priceCents, &f.listed)
		require.NoError(t, err)
		_, err = l.RegisterSale(buyer.ID, listing.ID, f.priceCents, &f.sold)
		require.NoError(t, err)
	}

	return NewReporter(db.GetDB())
}

func TestTopOfficesBySales(t *testing.T) {
	r := seedSoldMonth(t)

	rows, err := r.TopOfficesBySales(2023, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "12 Main St", rows[0].Location)
	assert.EqualValues(t, 2, rows[0].HomesSold)
	assert.Equal(t, "90 Pier Rd", rows[1].Location)
	assert.EqualValues(t, 1, rows[1].HomesSold)
}

func TestTopAgentsBySales(t *testing.T) {
	r := seedSoldMonth(t)

	rows, err := r.TopAgentsBySales(2023, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ben@agency.example.com", rows[0].Email)
	assert.EqualValues(t, 1_000_000, rows[0].AmountSoldCents)
	assert.Equal(t, "ada@agency.example.com", rows[1].Email)
	assert.EqualValues(t, 400_000, rows[1].AmountSoldCents)
}

func TestTopAgentsBySalesYear(t *testing.T) {
	r := seedSoldMonth(t)

	rows, err := r.TopAgentsBySalesYear(2023)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// The February sale counts for the year.
	assert.Equal(t, "ben@agency.example.com", rows[0].Email)
	assert.EqualValues(t, 3_000_000, rows[0].AmountSoldCents)
}

func TestAverageDaysOnMarket(t *testing.T) {
	r := seedSoldMonth(t)

	avg, err := r.AverageDaysOnMarket(2023, 1)
	require.NoError(t, err)
	assert.InDelta(t, (10.0+20.0+10.0)/3, avg, 0.001)
}

func TestAverageSalePrice(t *testing.T) {
	r := seedSoldMonth(t)

	avg, err := r.AverageSalePrice(2023, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1_400_000.0/3, avg, 0.001)
}

func TestAverageSalePriceEmptyPeriod(t *testing.T) {
	r := seedSoldMonth(t)

	avg, err := r.AverageSalePrice(2019, 6)
	require.NoError(t, err)
	assert.Zero(t, avg)

	days, err := r.AverageDaysOnMarket(2019, 6)
	require.NoError(t, err)
	assert.Zero(t, days)
}

func TestTopZipCodesByAveragePrice(t *testing.T) {
	r := seedSoldMonth(t)

	rows, err := r.TopZipCodesByAveragePrice(2023, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "94111", rows[0].ZipCode)
	assert.InDelta(t, 550_000, rows[0].AveragePriceCents, 0.001)
	assert.Equal(t, "10001", rows[1].ZipCode)
	assert.InDelta(t, 300_000, rows[1].AveragePriceCents, 0.001)
}

func TestSnapshotAgentCommissions(t *testing.T) {
	r := seedSoldMonth(t)

	snapshot, err := r.SnapshotAgentCommissions(2023, 1)
	require.NoError(t, err)
	require.Len(t, snapshot, 2)

	byAgent := map[int64]int64{}
	for _, row := range snapshot {
		assert.Equal(t, 2023, row.Year)
		assert.Equal(t, 1, row.Month)
		byAgent[row.AgentID] = row.AmountCents
	}
	assert.Equal(t, models.Commission(100_000)+models.Commission(300_000), byAgent[1])
	assert.Equal(t, models.Commission(1_000_000), byAgent[2])

	// Recomputing the same period replaces the rows instead of stacking
	// a second snapshot on top.
	again, err := r.SnapshotAgentCommissions(2023, 1)
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.ElementsMatch(t,
		[]int64{snapshot[0].AmountCents, snapshot[1].AmountCents},
		[]int64{again[0].AmountCents, again[1].AmountCents})
}

func TestRunningTotal(t *testing.T) {
	r := seedSoldMonth(t)

	total, err := r.RunningTotal()
	require.NoError(t, err)
	assert.EqualValues(t, 3_400_000, total)
}
