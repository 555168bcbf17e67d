package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"travelland/models"
	"travelland/services/geocode"
	"travelland/services/search"
	"travelland/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SearchHandler serves the venue search endpoints.
type SearchHandler struct {
	Svc    search.Service
	Logger *zap.Logger
}

func NewSearchHandler(svc search.Service, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{Svc: svc, Logger: logger}
}

// Search handles POST /search.
func (h *SearchHandler) Search(c *gin.Context) {
	requestID := uuid.NewString()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Debug("Search: invalid request body", zap.String("requestID", requestID), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	resp, cacheHit, err := h.Svc.Search(c.Request.Context(), req)
	if err != nil {
		var geoErr *geocode.GeocodeError
		if errors.As(err, &geoErr) {
			// The only error class surfaced to the caller: everything else
			// degrades to fewer venues, never to a failed request.
			h.Logger.Info("Search: location not found",
				zap.String("requestID", requestID),
				zap.String("city", req.City))
			utils.JSONError(c, http.StatusNotFound, "location not found", "")
			return
		}
		h.Logger.Error("Search: failed",
			zap.String("requestID", requestID),
			zap.String("city", req.City),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "search failed", "")
		return
	}

	if cacheHit {
		c.Header("X-Cache", "hit")
	} else {
		c.Header("X-Cache", "miss")
	}
	c.JSON(http.StatusOK, resp)
}

// Neighborhoods handles GET /neighborhoods?city=&lat=&lon=.
func (h *SearchHandler) Neighborhoods(c *gin.Context) {
	city := c.Query("city")
	lat, err := parseCoordParam(c.Query("lat"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid coordinates", "lat must be decimal degrees")
		return
	}
	lon, err := parseCoordParam(c.Query("lon"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid coordinates", "lon must be decimal degrees")
		return
	}

	if city == "" && lat == 0 && lon == 0 {
		utils.JSONError(c, http.StatusBadRequest, "missing location", "provide city or lat/lon")
		return
	}

	hoods, err := h.Svc.Neighborhoods(c.Request.Context(), city, lat, lon)
	if err != nil {
		var geoErr *geocode.GeocodeError
		if errors.As(err, &geoErr) {
			utils.JSONError(c, http.StatusNotFound, "location not found", "")
			return
		}
		h.Logger.Error("Neighborhoods: failed", zap.String("city", city), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "neighborhood lookup failed", "")
		return
	}

	if hoods == nil {
		hoods = []models.Neighborhood{}
	}
	c.JSON(http.StatusOK, gin.H{"neighborhoods": hoods})
}

// parseCoordParam treats an absent parameter as zero but rejects garbage.
func parseCoordParam(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
