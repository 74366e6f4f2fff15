package api

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentradar/server/config"
	"rentradar/server/internal/address"
	"rentradar/server/internal/models"
	"rentradar/server/internal/molit"
	"rentradar/server/internal/region"
)

// MarketService is the slice of the market service the handlers depend on.
type MarketService interface {
	GetTransactions(ctx context.Context, propertyType models.PropertyType, regionCode string) (map[string][]models.RentTransaction, error)
	GetJeonseMarket(ctx context.Context, propertyType models.PropertyType, regionCode string) ([]models.NeighborhoodStat, error)
	GetMonthlyRentMarket(ctx context.Context, propertyType models.PropertyType, regionCode string) ([]models.NeighborhoodStat, error)
	GetTimeSeriesAnalysis(ctx context.Context, propertyType models.PropertyType, regionCode string, monthsRequested int) (models.TimeSeriesResult, error)
}

type Handler struct {
	service  MarketService
	locator  *region.Locator
	geocoder *address.Geocoder
	logger   *logrus.Logger
}

var regionCodePattern = regexp.MustCompile(`^\d{5}$`)

func NewHandler(service MarketService, locator *region.Locator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if locator == nil {
		locator = region.NewLocator(config.SupportedRegions)
	}

	cacheDir := filepath.Join(os.TempDir(), "rentradar", "address_cache")

	return &Handler{
		service:  service,
		locator:  locator,
		geocoder: address.NewGeocoder(logger, "", cacheDir),
		logger:   logger,
	}
}

// envelope is the uniform response wrapper of the web layer.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

// params pulls and validates the property type and region code path
// parameters shared by the four market operations.
func (h *Handler) params(c *gin.Context) (models.PropertyType, string, bool) {
	propertyType := models.PropertyType(c.Param("property_type"))
	if !propertyType.Valid() {
		respondError(c, http.StatusBadRequest, "unknown property type: "+c.Param("property_type"))
		return "", "", false
	}
	regionCode := c.Param("region_code")
	if !regionCodePattern.MatchString(regionCode) {
		respondError(c, http.StatusBadRequest, "region code must be a 5-digit LAWD code")
		return "", "", false
	}
	return propertyType, regionCode, true
}

// GetTransactions returns the raw trailing window grouped by building name.
func (h *Handler) GetTransactions(c *gin.Context) {
	propertyType, regionCode, ok := h.params(c)
	if !ok {
		return
	}

	transactions, err := h.service.GetTransactions(c.Request.Context(), propertyType, regionCode)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get transactions")
		respondError(c, http.StatusInternalServerError, "Failed to get transactions")
		return
	}
	respondOK(c, transactions)
}

// GetJeonseMarket returns per-neighborhood jeonse statistics.
func (h *Handler) GetJeonseMarket(c *gin.Context) {
	propertyType, regionCode, ok := h.params(c)
	if !ok {
		return
	}

	stats, err := h.service.GetJeonseMarket(c.Request.Context(), propertyType, regionCode)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get jeonse market")
		respondError(c, http.StatusInternalServerError, "Failed to get jeonse market")
		return
	}
	respondOK(c, stats)
}

// GetMonthlyRentMarket returns per-neighborhood monthly-rent statistics.
func (h *Handler) GetMonthlyRentMarket(c *gin.Context) {
	propertyType, regionCode, ok := h.params(c)
	if !ok {
		return
	}

	stats, err := h.service.GetMonthlyRentMarket(c.Request.Context(), propertyType, regionCode)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get monthly rent market")
		respondError(c, http.StatusInternalServerError, "Failed to get monthly rent market")
		return
	}
	respondOK(c, stats)
}

// GetTimeSeries returns the capped-window trend analysis; the months query
// parameter defaults to the maximum window.
func (h *Handler) GetTimeSeries(c *gin.Context) {
	propertyType, regionCode, ok := h.params(c)
	if !ok {
		return
	}

	months, err := strconv.Atoi(c.DefaultQuery("months", strconv.Itoa(molit.MaxWindowMonths)))
	if err != nil || months < 1 {
		respondError(c, http.StatusBadRequest, "months must be a positive integer")
		return
	}

	result, err := h.service.GetTimeSeriesAnalysis(c.Request.Context(), propertyType, regionCode, months)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get time series analysis")
		respondError(c, http.StatusInternalServerError, "Failed to get time series analysis")
		return
	}
	respondOK(c, result)
}

// ListRegions returns the static region table.
func (h *Handler) ListRegions(c *gin.Context) {
	respondOK(c, config.SupportedRegions)
}

// LocateRegion maps a coordinate onto a configured region.
func (h *Handler) LocateRegion(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	found := h.locator.Locate(lat, lng)
	if found == nil {
		respondError(c, http.StatusNotFound, "no configured region contains this coordinate")
		return
	}
	respondOK(c, found)
}

// ResolveAddress reverse-geocodes a coordinate into a best-effort address
// plus the configured region containing it. Either half may be absent; the
// web client decides what to do with a partial answer.
func (h *Handler) ResolveAddress(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondError(c, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	respondOK(c, gin.H{
		"address": h.geocoder.ReverseGeocode(lat, lng),
		"region":  h.locator.Locate(lat, lng),
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}
