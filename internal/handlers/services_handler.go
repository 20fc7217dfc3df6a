package handlers

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed services.json
var servicesJSON []byte

type ServiceDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Price       string `json:"price"`
}

type serviceCatalog struct {
	Services     []ServiceDetail `json:"services"`
	AddOns       []string        `json:"addOns"`
	CarePackages []string        `json:"carePackages"`
}

var catalog serviceCatalog

func init() {
	if err := json.Unmarshal(servicesJSON, &catalog); err != nil {
		log.Fatalf("invalid embedded services catalog: %v", err)
	}
}

// GetServices returns the full static services catalog.
func (h *Handler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, catalog)
}

// GetService looks up one catalog entry. Ids are matched case-insensitively
// so links like /services/gel-x find the "Gel-X" entry.
func (h *Handler) GetService(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	for _, svc := range catalog.Services {
		if strings.EqualFold(svc.ID, id) {
			c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Service not found"})
}
