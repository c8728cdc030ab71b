// controllers/service.go
package controllers

import (
	"net/http"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// ServiceInput defines the expected JSON structure for creating or
// replacing a service. Price accepts a number or a string like "1 500 Ft".
type ServiceInput struct {
	Label    string       `json:"label" binding:"required"`
	Price    models.Price `json:"price"`
	Duration int          `json:"duration" binding:"required,min=1"` // in minutes
	Category string       `json:"category" binding:"required"`
}

func (in ServiceInput) toService() services.ServiceInput {
	return services.ServiceInput{
		Label:    in.Label,
		Price:    int(in.Price),
		Duration: in.Duration,
		Category: models.ServiceCategory(in.Category),
	}
}

// CategoryGroup is one heading of the public price list.
type CategoryGroup struct {
	Category models.ServiceCategory `json:"category"`
	Services []models.Service       `json:"services"`
}

type CatalogController struct {
	Catalog *services.CatalogService
}

// GetPublicServices lists the active catalog grouped by category.
func (cc *CatalogController) GetPublicServices(c *gin.Context) {
	byCategory := make(map[models.ServiceCategory][]models.Service)
	for _, s := range cc.Catalog.ListActive(c.Request.Context()) {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	groups := make([]CategoryGroup, 0, len(models.ServiceCategories))
	for _, cat := range models.ServiceCategories {
		if len(byCategory[cat]) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Services: byCategory[cat]})
		}
	}
	c.JSON(http.StatusOK, groups)
}

// GetServices retrieves every service, inactive ones included
func (cc *CatalogController) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.ListAll(c.Request.Context()))
}

// CreateService creates a new service
func (cc *CatalogController) CreateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := cc.Catalog.Create(c.Request.Context(), input.toService())
	if err != nil {
		respondServiceError(c, err, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateService replaces label, price, duration and category
func (cc *CatalogController) UpdateService(c *gin.Context) {
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, err := cc.Catalog.Update(c.Request.Context(), c.Param("id"), input.toService())
	if err != nil {
		respondServiceError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeactivateService hides a service from booking
func (cc *CatalogController) DeactivateService(c *gin.Context) {
	service, err := cc.Catalog.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to deactivate service")
		return
	}
	c.JSON(http.StatusOK, service)
}

// ActivateService offers a deactivated service again
func (cc *CatalogController) ActivateService(c *gin.Context) {
	service, err := cc.Catalog.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to activate service")
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService permanently removes an inactive service
func (cc *CatalogController) DeleteService(c *gin.Context) {
	if err := cc.Catalog.DeletePermanently(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

// SeedServices loads the default price list
func (cc *CatalogController) SeedServices(c *gin.Context) {
	c.JSON(http.StatusOK, cc.Catalog.SeedDefaults(c.Request.Context()))
}
