package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"estateledger/server/internal/models"
)

// RegisterSale closes a listing. Inside one transaction it resolves the
// buyer, locates the listing filtered to AVAILABLE (guarding against a
// double sale), flips every other AVAILABLE listing on the same house to
// UNAVAILABLE, marks the target listing SOLD, inserts the sale row and adds
// the price to the running total. The sale date defaults to now.
func (l *Ledger) RegisterSale(buyerID, listingID, priceCents int64, saleDate *time.Time) (*models.Sale, error) {
	if buyerID == 0 || listingID == 0 || priceCents <= 0 {
		return nil, fmt.Errorf("%w: buyer, listing and price are all required", ErrValidation)
	}

	date := time.Now()
	if saleDate != nil {
		date = *saleDate
	}

	var sale models.Sale
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var buyer models.Customer
		if err := tx.First(&buyer, buyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no customer with id %d is registered", ErrNotFound, buyerID)
			}
			return storeError(err)
		}

		var listing models.Listing
		err := tx.Where("id = ? AND state = ?", listingID, models.ListingStateAvailable).
			First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: there is no such listing registered and still available", ErrNotFound)
			}
			return storeError(err)
		}

		// The house is spoken for: retire its other open listings.
		if err := tx.Model(&models.Listing{}).
			Where("house_id = ? AND id <> ? AND state = ?",
				listing.HouseID, listing.ID, models.ListingStateAvailable).
			Update("state", models.ListingStateUnavailable).Error; err != nil {
			return storeError(err)
		}

		if err := tx.Model(&listing).
			Update("state", models.ListingStateSold).Error; err != nil {
			return storeError(err)
		}

		sale = models.Sale{
			ListingID:  listing.ID,
			BuyerID:    buyerID,
			PriceCents: priceCents,
			SaleDate:   date,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return storeError(err)
		}

		return addToRunningTotal(tx, priceCents)
	})
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"sale_id":     sale.ID,
		"listing_id":  sale.ListingID,
		"buyer_id":    sale.BuyerID,
		"price_cents": sale.PriceCents,
	}).Info("Registered sale")
	return &sale, nil
}

// addToRunningTotal bumps the single SalePriceSummary row, creating it on
// the first sale.
func addToRunningTotal(tx *gorm.DB, priceCents int64) error {
	var summary models.SalePriceSummary
	err := tx.First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		summary = models.SalePriceSummary{TotalCents: priceCents}
		if err := tx.Create(&summary).Error; err != nil {
			return storeError(err)
		}
		return nil
	}
	if err != nil {
		return storeError(err)
	}

	if err := tx.Model(&summary).
		Update("total_cents", gorm.Expr("total_cents + ?", priceCents)).Error; err != nil {
		return storeError(err)
	}
	return nil
}
