package models

import "time"

// ListingState tracks the lifecycle of a listing. A listing starts out
// AVAILABLE and moves to SOLD or UNAVAILABLE exactly once; the transition is
// never reversed.
type ListingState string

const (
	ListingStateAvailable   ListingState = "AVAILABLE"
	ListingStateUnavailable ListingState = "UNAVAILABLE"
	ListingStateSold        ListingState = "SOLD"
)

// House is a property on the books. Registered once per unique address and
// immutable afterwards.
type House struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Bedrooms  int       `gorm:"not null" json:"bedrooms"`
	Bathrooms int       `gorm:"not null" json:"bathrooms"`
	Address   string    `gorm:"not null;uniqueIndex" json:"address"`
	ZipCode   string    `gorm:"not null;index" json:"zip_code"`
	OfficeID  int64     `gorm:"not null" json:"office_id"`
	Office    *Office   `gorm:"foreignKey:OfficeID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Office is a branch identified by its location.
type Office struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `json:"name"`
	Location string `gorm:"not null;uniqueIndex" json:"location"`
}

// Agent is an estate agent; the email address is the identity key.
type Agent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `gorm:"size:40;not null;uniqueIndex" json:"email"`
}

// Customer buys or sells houses; the email address is the identity key.
type Customer struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `gorm:"size:40;not null;uniqueIndex" json:"email"`
}

// AgentOffice associates an agent with an office (many-to-many).
type AgentOffice struct {
	ID       int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	AgentID  int64   `gorm:"not null;uniqueIndex:idx_agent_office" json:"agent_id"`
	Agent    *Agent  `gorm:"foreignKey:AgentID" json:"-"`
	OfficeID int64   `gorm:"not null;uniqueIndex:idx_agent_office" json:"office_id"`
	Office   *Office `gorm:"foreignKey:OfficeID" json:"-"`
}

// Listing is an offer to sell a specific house. A house may accumulate
// listings over time but at most one of them may ever reach SOLD.
type Listing struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	HouseID     int64        `gorm:"not null;index" json:"house_id"`
	House       *House       `gorm:"foreignKey:HouseID" json:"-"`
	SellerID    int64        `gorm:"not null" json:"seller_id"`
	Seller      *Customer    `gorm:"foreignKey:SellerID" json:"-"`
	AgentID     int64        `gorm:"not null;index" json:"agent_id"`
	Agent       *Agent       `gorm:"foreignKey:AgentID" json:"-"`
	OfficeID    int64        `gorm:"not null" json:"office_id"`
	Office      *Office      `gorm:"foreignKey:OfficeID" json:"-"`
	ListingDate time.Time    `gorm:"not null" json:"listing_date"`
	PriceCents  int64        `gorm:"not null" json:"price_cents"`
	State       ListingState `gorm:"type:text;not null;default:AVAILABLE;index" json:"state"`
}

// Sale records a completed transaction closing exactly one listing. The
// house, seller and agent are reached by joining through the listing.
type Sale struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListingID  int64     `gorm:"not null;uniqueIndex" json:"listing_id"`
	Listing    *Listing  `gorm:"foreignKey:ListingID" json:"-"`
	BuyerID    int64     `gorm:"not null" json:"buyer_id"`
	Buyer      *Customer `gorm:"foreignKey:BuyerID" json:"-"`
	PriceCents int64     `gorm:"not null" json:"price_cents"`
	SaleDate   time.Time `gorm:"not null;index" json:"sale_date"`
}

// AgentCommission is a monthly snapshot of the commission owed to an agent,
// written by the snapshot report. One row per agent per period.
type AgentCommission struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	AgentID     int64  `gorm:"not null;uniqueIndex:idx_agent_period" json:"agent_id"`
	Agent       *Agent `gorm:"foreignKey:AgentID" json:"-"`
	Year        int    `gorm:"not null;uniqueIndex:idx_agent_period" json:"year"`
	Month       int    `gorm:"not null;uniqueIndex:idx_agent_period" json:"month"`
	AmountCents int64  `gorm:"not null" json:"amount_cents"`
}

// SalePriceSummary is the single running-total row kept in step with the
// sales ledger. It is a materialized aggregate, not a source of truth.
type SalePriceSummary struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TotalCents int64 `gorm:"not null" json:"total_cents"`
}
