package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arnavshah/roster-api-go/pkg/auth"
	"github.com/arnavshah/roster-api-go/pkg/models"
)

// CreateHospital registers a new hospital
func (h *Handler) CreateHospital(c *gin.Context) {
	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&hospital).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create hospital"})
		return
	}
	c.JSON(http.StatusCreated, hospital)
}

// ListHospitals returns all hospitals
func (h *Handler) ListHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	h.DB.WithContext(c.Request.Context()).Find(&hospitals)
	c.JSON(http.StatusOK, hospitals)
}

// GetHospital returns one hospital with its locations
func (h *Handler) GetHospital(c *gin.Context) {
	var hospital models.Hospital
	if err := h.DB.WithContext(c.Request.Context()).Preload("Locations").First(&hospital, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
		return
	}
	c.JSON(http.StatusOK, hospital)
}

// UpdateHospital edits hospital attributes
func (h *Handler) UpdateHospital(c *gin.Context) {
	var hospital models.Hospital
	if err := h.DB.WithContext(c.Request.Context()).First(&hospital, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
		return
	}
	if err := c.ShouldBindJSON(&hospital); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Save(&hospital).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update hospital"})
		return
	}
	c.JSON(http.StatusOK, hospital)
}

// CreateLocation adds a care location to a hospital
func (h *Handler) CreateLocation(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	location.HospitalID = hospitalID
	if err := h.DB.WithContext(c.Request.Context()).Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create location"})
		return
	}
	c.JSON(http.StatusCreated, location)
}

// ListLocations returns a hospital's care locations
func (h *Handler) ListLocations(c *gin.Context) {
	var locations []models.Location
	h.DB.WithContext(c.Request.Context()).Where("hospital_id = ?", c.Param("id")).Find(&locations)
	c.JSON(http.StatusOK, locations)
}

// DeleteLocation removes a care location
func (h *Handler) DeleteLocation(c *gin.Context) {
	if err := h.DB.WithContext(c.Request.Context()).Delete(&models.Location{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete location"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSpecialty registers a medical specialty
func (h *Handler) CreateSpecialty(c *gin.Context) {
	var specialty models.Specialty
	if err := c.ShouldBindJSON(&specialty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&specialty).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create specialty"})
		return
	}
	c.JSON(http.StatusCreated, specialty)
}

// ListSpecialties returns all specialties
func (h *Handler) ListSpecialties(c *gin.Context) {
	var specialties []models.Specialty
	h.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&specialties)
	c.JSON(http.StatusOK, specialties)
}

// CreateProfessional registers a professional and hashes their password
func (h *Handler) CreateProfessional(c *gin.Context) {
	var input struct {
		models.Professional
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}
	professional := input.Professional
	professional.PasswordHash = hash
	professional.Active = true
	if professional.Profile == "" {
		professional.Profile = models.ProfileProfessional
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&professional).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create professional"})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "CREATE", "professional", strconv.FormatUint(uint64(professional.ID), 10), nil, professional)
	c.JSON(http.StatusCreated, professional)
}

// ListProfessionals returns professionals, optionally scoped to a hospital
func (h *Handler) ListProfessionals(c *gin.Context) {
	query := h.DB.WithContext(c.Request.Context())
	if hospitalID := c.Query("hospital_id"); hospitalID != "" {
		query = query.Where("hospital_id = ?", hospitalID)
	}

	var professionals []models.Professional
	query.Order("name ASC").Find(&professionals)
	c.JSON(http.StatusOK, professionals)
}

// GetProfessional returns one professional
func (h *Handler) GetProfessional(c *gin.Context) {
	var professional models.Professional
	if err := h.DB.WithContext(c.Request.Context()).First(&professional, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "professional not found"})
		return
	}
	c.JSON(http.StatusOK, professional)
}

// UpdateProfessional edits a professional's attributes
func (h *Handler) UpdateProfessional(c *gin.Context) {
	var professional models.Professional
	if err := h.DB.WithContext(c.Request.Context()).First(&professional, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "professional not found"})
		return
	}
	before := professional

	if err := c.ShouldBindJSON(&professional); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DB.WithContext(c.Request.Context()).Save(&professional).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update professional"})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "UPDATE", "professional", c.Param("id"), before, professional)
	c.JSON(http.StatusOK, professional)
}

// DeactivateProfessional retires a professional from future rosters
func (h *Handler) DeactivateProfessional(c *gin.Context) {
	result := h.DB.WithContext(c.Request.Context()).
		Model(&models.Professional{}).
		Where("id = ?", c.Param("id")).
		Update("active", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not deactivate professional"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "professional not found"})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "DEACTIVATE", "professional", c.Param("id"), nil, nil)
	c.Status(http.StatusNoContent)
}

// SaveAvailability records an availability declaration for a professional
func (h *Handler) SaveAvailability(c *gin.Context) {
	professionalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var availability models.Availability
	if err := c.ShouldBindJSON(&availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	availability.ProfessionalID = professionalID
	if err := h.DB.WithContext(c.Request.Context()).Create(&availability).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save availability"})
		return
	}
	c.JSON(http.StatusCreated, availability)
}

// ListAvailability returns a professional's availability declarations
func (h *Handler) ListAvailability(c *gin.Context) {
	var declarations []models.Availability
	h.DB.WithContext(c.Request.Context()).
		Where("professional_id = ?", c.Param("id")).
		Order("date ASC").
		Find(&declarations)
	c.JSON(http.StatusOK, declarations)
}

// DeleteAvailability removes an availability declaration
func (h *Handler) DeleteAvailability(c *gin.Context) {
	if err := h.DB.WithContext(c.Request.Context()).Delete(&models.Availability{}, c.Param("availabilityId")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete availability"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateRuleParameter adds a scheduling rule for a hospital
func (h *Handler) CreateRuleParameter(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var param models.RuleParameter
	if err := c.ShouldBindJSON(&param); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	param.HospitalID = &hospitalID
	if err := h.DB.WithContext(c.Request.Context()).Create(&param).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create rule parameter"})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "CREATE", "rule_parameter", strconv.FormatUint(uint64(param.ID), 10), nil, param)
	c.JSON(http.StatusCreated, param)
}

// ListRuleParameters returns a hospital's scheduling rules
func (h *Handler) ListRuleParameters(c *gin.Context) {
	var params []models.RuleParameter
	h.DB.WithContext(c.Request.Context()).Where("hospital_id = ?", c.Param("id")).Find(&params)
	c.JSON(http.StatusOK, params)
}

// DeleteRuleParameter removes a scheduling rule
func (h *Handler) DeleteRuleParameter(c *gin.Context) {
	if err := h.DB.WithContext(c.Request.Context()).Delete(&models.RuleParameter{}, c.Param("paramId")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete rule parameter"})
		return
	}
	h.Audit.Record(c.Request.Context(), actorFrom(c), "DELETE", "rule_parameter", c.Param("paramId"), nil, nil)
	c.Status(http.StatusNoContent)
}

// CreateRuleConfiguration creates a named bundle of rule parameters
func (h *Handler) CreateRuleConfiguration(c *gin.Context) {
	hospitalID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var config models.RuleConfiguration
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	config.HospitalID = hospitalID
	if err := h.DB.WithContext(c.Request.Context()).Create(&config).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create rule configuration"})
		return
	}
	c.JSON(http.StatusCreated, config)
}

// ListRuleConfigurations returns a hospital's rule bundles
func (h *Handler) ListRuleConfigurations(c *gin.Context) {
	var configs []models.RuleConfiguration
	h.DB.WithContext(c.Request.Context()).
		Where("hospital_id = ?", c.Param("id")).
		Preload("Parameters").
		Find(&configs)
	c.JSON(http.StatusOK, configs)
}

// GetRuleConfiguration returns one rule bundle with its parameters
func (h *Handler) GetRuleConfiguration(c *gin.Context) {
	var config models.RuleConfiguration
	if err := h.DB.WithContext(c.Request.Context()).Preload("Parameters").First(&config, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rule configuration not found"})
		return
	}
	c.JSON(http.StatusOK, config)
}

// DeleteRuleConfiguration removes a rule bundle and its parameters
func (h *Handler) DeleteRuleConfiguration(c *gin.Context) {
	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rule_configuration_id = ?", c.Param("id")).Delete(&models.RuleParameter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RuleConfiguration{}, c.Param("id")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete rule configuration"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAuditLog returns recent audit entries
func (h *Handler) ListAuditLog(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	var entries []models.AuditLog
	var err error
	if actor := c.Query("actor"); actor != "" {
		entries, err = h.Audit.ListByActor(c.Request.Context(), actor, limit)
	} else {
		entries, err = h.Audit.ListRecent(c.Request.Context(), limit)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
