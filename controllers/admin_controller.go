package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sehatmand-backend/services"
)

type AdminController struct {
	doctorService *services.DoctorService
}

func NewAdminController(doctorService *services.DoctorService) *AdminController {
	return &AdminController{
		doctorService: doctorService,
	}
}

// RefreshDoctors forces a reload of the doctor directory cache from the
// database. Guarded by the admin API key middleware.
func (ac *AdminController) RefreshDoctors(c *gin.Context) {
	count := ac.doctorService.RefreshCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":  "refreshed",
		"doctors": count,
	})
}
