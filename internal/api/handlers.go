package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estateledger/server/internal/database"
	"estateledger/server/internal/ledger"
	"estateledger/server/internal/reports"
)

type Handler struct {
	ledger   *ledger.Ledger
	reporter *reports.Reporter
	logger   *logrus.Logger
}

func NewHandler(db *database.Database, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		ledger:   ledger.NewLedger(db.GetDB(), logger),
		reporter: reports.NewReporter(db.GetDB()),
		logger:   logger,
	}
}

type HouseRequest struct {
	Bedrooms  int    `json:"bedrooms"`
	Bathrooms int    `json:"bathrooms"`
	Address   string `json:"address"`
	ZipCode   string `json:"zip_code"`
	OfficeID  int64  `json:"office_id"`
}

type OfficeRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type PersonRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type AgentOfficeRequest struct {
	AgentID  int64 `json:"agent_id"`
	OfficeID int64 `json:"office_id"`
}

type ListingRequest struct {
	HouseID     int64      `json:"house_id"`
	SellerID    int64      `json:"seller_id"`
	AgentID     int64      `json:"agent_id"`
	OfficeID    int64      `json:"office_id"`
	PriceCents  int64      `json:"price_cents"`
	ListingDate *time.Time `json:"listing_date"`
}

type SaleRequest struct {
	BuyerID    int64      `json:"buyer_id"`
	ListingID  int64      `json:"listing_id"`
	PriceCents int64      `json:"price_cents"`
	SaleDate   *time.Time `json:"sale_date"`
}

func (h *Handler) RegisterHouse(c *gin.Context) {
	var req HouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	house, err := h.ledger.RegisterHouse(req.Bedrooms, req.Bathrooms, req.Address, req.ZipCode, req.OfficeID)
	if err != nil {
		h.writeError(c, err, "Failed to register house")
		return
	}
	c.JSON(http.StatusCreated, house)
}

func (h *Handler) RegisterOffice(c *gin.Context) {
	var req OfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	office, err := h.ledger.RegisterOffice(req.Name, req.Location)
	if err != nil {
		h.writeError(c, err, "Failed to register office")
		return
	}
	c.JSON(http.StatusCreated, office)
}

func (h *Handler) RegisterAgent(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	agent, err := h.ledger.RegisterAgent(req.FirstName, req.LastName, req.Email)
	if err != nil {
		h.writeError(c, err, "Failed to register agent")
		return
	}
	c.JSON(http.StatusCreated, agent)
}

func (h *Handler) RegisterCustomer(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	customer, err := h.ledger.RegisterCustomer(req.FirstName, req.LastName, req.Email)
	if err != nil {
		h.writeError(c, err, "Failed to register customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) AssignAgentToOffice(c *gin.Context) {
	var req AgentOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	assignment, err := h.ledger.AssignAgentToOffice(req.AgentID, req.OfficeID)
	if err != nil {
		h.writeError(c, err, "Failed to assign agent to office")
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *Handler) RegisterListing(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	listing, err := h.ledger.RegisterListing(req.HouseID, req.SellerID, req.AgentID, req.OfficeID, req.PriceCents, req.ListingDate)
	if err != nil {
		h.writeError(c, err, "Failed to register listing")
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) RegisterSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, err := h.ledger.RegisterSale(req.BuyerID, req.ListingID, req.PriceCents, req.SaleDate)
	if err != nil {
		h.writeError(c, err, "Failed to register sale")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) GetTopOffices(c *gin.Context) {
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	rows, err := h.reporter.TopOfficesBySales(year, month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get top offices")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get top offices"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetTopAgents(c *gin.Context) {
	year, ok := h.year(c)
	if !ok {
		return
	}

	// Month is optional here: without it the report covers the whole year.
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		rows, err := h.reporter.TopAgentsBySales(year, month)
		if err != nil {
			h.logger.WithError(err).Error("Failed to get top agents")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get top agents"})
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}

	rows, err := h.reporter.TopAgentsBySalesYear(year)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get top agents")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get top agents"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetAverageDaysOnMarket(c *gin.Context) {
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	avg, err := h.reporter.AverageDaysOnMarket(year, month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get average days on market")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get average days on market"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_days_on_market": avg})
}

func (h *Handler) GetAveragePrice(c *gin.Context) {
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	avg, err := h.reporter.AverageSalePrice(year, month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get average sale price")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get average sale price"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_price_cents": avg})
}

func (h *Handler) GetTopZipCodes(c *gin.Context) {
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	rows, err := h.reporter.TopZipCodesByAveragePrice(year, month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get top zip codes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get top zip codes"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) SnapshotCommissions(c *gin.Context) {
	year, month, ok := h.period(c)
	if !ok {
		return
	}

	snapshot, err := h.reporter.SnapshotAgentCommissions(year, month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to snapshot commissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to snapshot commissions"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) year(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return 0, false
	}
	return year, true
}

func (h *Handler) period(c *gin.Context) (int, int, bool) {
	year, ok := h.year(c)
	if !ok {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return 0, 0, false
	}
	return year, month, true
}

// writeError maps the ledger error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 and gets logged.
func (h *Handler) writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
