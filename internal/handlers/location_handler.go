package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patronbase/backend/internal/cache"
	"github.com/patronbase/backend/internal/database"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// LocationHandler serves the country/state/city reference tables. Reads go
// through the redis cache when one is configured; the tables are static
// lookup data seeded out of band, so staleness is not a concern.
type LocationHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewLocationHandler creates a new location handler. cache may be nil.
func NewLocationHandler(db *gorm.DB, cache *cache.Cache) *LocationHandler {
	return &LocationHandler{db: db, cache: cache}
}

// ListCountries returns all countries
func (h *LocationHandler) ListCountries(c *gin.Context) {
	var countries []models.Country
	h.serveCached(c, "locations:countries", &countries, func() (interface{}, error) {
		return database.ListCountries(h.db)
	})
}

// ListStates returns all states
func (h *LocationHandler) ListStates(c *gin.Context) {
	var states []models.State
	h.serveCached(c, "locations:states", &states, func() (interface{}, error) {
		return database.ListStates(h.db)
	})
}

// ListCities returns all cities
func (h *LocationHandler) ListCities(c *gin.Context) {
	var cities []models.City
	h.serveCached(c, "locations:cities", &cities, func() (interface{}, error) {
		return database.ListCities(h.db)
	})
}

// serveCached answers from the cache when possible, otherwise loads from the
// database and fills the cache. Cache failures only cost the cached read.
func (h *LocationHandler) serveCached(c *gin.Context, key string, cached interface{}, load func() (interface{}, error)) {
	if h.cache != nil {
		hit, err := h.cache.Get(c.Request.Context(), key, cached)
		if err != nil {
			log.Printf("location cache read failed: %v", err)
		} else if hit {
			c.JSON(http.StatusOK, gin.H{"results": cached})
			return
		}
	}

	results, err := load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(c.Request.Context(), key, results); err != nil {
			log.Printf("location cache write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
