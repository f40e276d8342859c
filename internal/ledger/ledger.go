package ledger

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"estateledger/server/internal/models"
)

// Ledger holds the registration and sale procedures. Every operation runs
// inside a single transaction: either all of its writes apply or none do.
type Ledger struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewLedger(db *gorm.DB, logger *logrus.Logger) *Ledger {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Ledger{db: db, logger: logger}
}

// RegisterHouse records a new house. The address is the natural key; a
// second registration for the same address fails with ErrAlreadyExists.
func (l *Ledger) RegisterHouse(bedrooms, bathrooms int, address, zipCode string, officeID int64) (*models.House, error) {
	if bedrooms <= 0 || bathrooms <= 0 || address == "" || zipCode == "" || officeID == 0 {
		return nil, fmt.Errorf("%w: bedrooms, bathrooms, address, zip code and office are all required", ErrValidation)
	}

	var house models.House
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var office models.Office
		if err := tx.First(&office, officeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no office with id %d is registered", ErrNotFound, officeID)
			}
			return storeError(err)
		}

		var count int64
		if err := tx.Model(&models.House{}).Where("address = ?", address).Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: a house has already been registered for address %q", ErrAlreadyExists, address)
		}

		house = models.House{
			Bedrooms:  bedrooms,
			Bathrooms: bathrooms,
			Address:   address,
			ZipCode:   zipCode,
			OfficeID:  officeID,
		}
		if err := tx.Create(&house).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"house_id": house.ID,
		"address":  house.Address,
	}).Info("Registered house")
	return &house, nil
}

// RegisterOffice records a new office. The location is the natural key.
func (l *Ledger) RegisterOffice(name, location string) (*models.Office, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}

	var office models.Office
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Office{}).Where("location = ?", location).Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: an office has already been registered at location %q", ErrAlreadyExists, location)
		}

		office = models.Office{Name: name, Location: location}
		if err := tx.Create(&office).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"office_id": office.ID,
		"location":  office.Location,
	}).Info("Registered office")
	return &office, nil
}

// RegisterAgent records a new estate agent keyed by email address.
func (l *Ledger) RegisterAgent(firstName, lastName, email string) (*models.Agent, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: first name, last name and email are all required", ErrValidation)
	}

	var agent models.Agent
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Agent{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: an agent has already been registered under email %q", ErrAlreadyExists, email)
		}

		agent = models.Agent{FirstName: firstName, LastName: lastName, Email: email}
		if err := tx.Create(&agent).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"agent_id": agent.ID,
		"email":    agent.Email,
	}).Info("Registered agent")
	return &agent, nil
}

// RegisterCustomer records a new customer keyed by email address.
func (l *Ledger) RegisterCustomer(firstName, lastName, email string) (*models.Customer, error) {
	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: first name, last name and email are all required", ErrValidation)
	}

	var customer models.Customer
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Customer{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: a customer has already been registered under email %q", ErrAlreadyExists, email)
		}

		customer = models.Customer{FirstName: firstName, LastName: lastName, Email: email}
		if err := tx.Create(&customer).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("Registered customer")
	return &customer, nil
}

// AssignAgentToOffice associates an agent with an office. The pair is
// unique; assigning twice fails with ErrAlreadyExists.
func (l *Ledger) AssignAgentToOffice(agentID, officeID int64) (*models.AgentOffice, error) {
	if agentID == 0 || officeID == 0 {
		return nil, fmt.Errorf("%w: agent and office are both required", ErrValidation)
	}

	var assignment models.AgentOffice
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var agent models.Agent
		if err := tx.First(&agent, agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no agent with id %d is registered", ErrNotFound, agentID)
			}
			return storeError(err)
		}
		var office models.Office
		if err := tx.First(&office, officeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no office with id %d is registered", ErrNotFound, officeID)
			}
			return storeError(err)
		}

		var count int64
		if err := tx.Model(&models.AgentOffice{}).
			Where("agent_id = ? AND office_id = ?", agentID, officeID).
			Count(&count).Error; err != nil {
			return storeError(err)
		}
		if count > 0 {
			return fmt.Errorf("%w: agent %d is already assigned to office %d", ErrAlreadyExists, agentID, officeID)
		}

		assignment = models.AgentOffice{AgentID: agentID, OfficeID: officeID}
		if err := tx.Create(&assignment).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"agent_id":  agentID,
		"office_id": officeID,
	}).Info("Assigned agent to office")
	return &assignment, nil
}

// RegisterListing puts a house on the market. The house, seller, agent and
// office must all exist. The listing starts out AVAILABLE; the listing date
// defaults to now.
func (l *Ledger) RegisterListing(houseID, sellerID, agentID, officeID, priceCents int64, listingDate *time.Time) (*models.Listing, error) {
	if houseID == 0 || sellerID == 0 || agentID == 0 || officeID == 0 || priceCents <= 0 {
		return nil, fmt.Errorf("%w: house, seller, agent, office and price are all required", ErrValidation)
	}

	date := time.Now()
	if listingDate != nil {
		date = *listingDate
	}

	var listing models.Listing
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var house models.House
		if err := tx.First(&house, houseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no house with id %d is registered", ErrNotFound, houseID)
			}
			return storeError(err)
		}
		var seller models.Customer
		if err := tx.First(&seller, sellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no customer with id %d is registered", ErrNotFound, sellerID)
			}
			return storeError(err)
		}
		var agent models.Agent
		if err := tx.First(&agent, agentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no agent with id %d is registered", ErrNotFound, agentID)
			}
			return storeError(err)
		}
		var office models.Office
		if err := tx.First(&office, officeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no office with id %d is registered", ErrNotFound, officeID)
			}
			return storeError(err)
		}

		listing = models.Listing{
			HouseID:     houseID,
			SellerID:    sellerID,
			AgentID:     agentID,
			OfficeID:    officeID,
			ListingDate: date,
			PriceCents:  priceCents,
			State:       models.ListingStateAvailable,
		}
		if err := tx.Create(&listing).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"listing_id":  listing.ID,
		"house_id":    listing.HouseID,
		"price_cents": listing.PriceCents,
	}).Info("Registered listing")
	return &listing, nil
}
