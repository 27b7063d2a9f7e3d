package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patronbase/backend/internal/database"
	"github.com/patronbase/backend/internal/models"
	"gorm.io/gorm"
)

// AddressHandler manages the authenticated user's addresses
type AddressHandler struct {
	db *gorm.DB
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{db: db}
}

// AddressRequest represents the request body for creating or updating an
// address. Every field is optional: an address may be partially specified.
type AddressRequest struct {
	AddressLine1 *string    `json:"address_line1"`
	AddressLine2 *string    `json:"address_line2"`
	PostalCode   *string    `json:"postal_code"`
	CountryID    *uuid.UUID `json:"country_id"`
	StateID      *uuid.UUID `json:"state_id"`
	CityID       *uuid.UUID `json:"city_id"`
}

// CreateAddress adds an address for the current user
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address := models.UserAddress{
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		PostalCode:   req.PostalCode,
		CountryID:    req.CountryID,
		StateID:      req.StateID,
		CityID:       req.CityID,
	}

	if err := database.CreateAddress(h.db, &address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create address"})
		return
	}

	c.JSON(http.StatusCreated, address)
}

// ListAddresses returns all of the current user's addresses
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	addresses, err := database.GetAddressesByUser(h.db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// UpdateAddress modifies one of the current user's addresses
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	address, err := database.GetAddressByID(h.db, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	address.AddressLine1 = req.AddressLine1
	address.AddressLine2 = req.AddressLine2
	address.PostalCode = req.PostalCode
	address.CountryID = req.CountryID
	address.StateID = req.StateID
	address.CityID = req.CityID

	if err := database.UpdateAddress(h.db, address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update address"})
		return
	}

	c.JSON(http.StatusOK, address)
}

// DeleteAddress removes one of the current user's addresses
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := database.DeleteAddress(h.db, userID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
}
