package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"journeys/internal/domain"
	"journeys/internal/service"
	"journeys/internal/storage"
)

// DataHandler handles HTTP requests for reference data and profiles.
type DataHandler struct {
	dataService    *service.DataService
	profileService *service.ProfileService
	documents      storage.DocumentStore
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(dataService *service.DataService, profileService *service.ProfileService, documents storage.DocumentStore) *DataHandler {
	return &DataHandler{
		dataService:    dataService,
		profileService: profileService,
		documents:      documents,
	}
}

// SpotResponse is the HTTP representation of a tourist spot.
type SpotResponse struct {
	SpotID      string `json:"spotId"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Description string `json:"description"`
	History     string `json:"history"`
	Image       string `json:"image"`
}

func toSpotResponses(spots []*domain.TouristSpot) []SpotResponse {
	responses := make([]SpotResponse, 0, len(spots))
	for _, spot := range spots {
		responses = append(responses, SpotResponse{
			SpotID:      spot.SpotID,
			Name:        spot.Name,
			City:        spot.City,
			Description: spot.Description,
			History:     spot.History,
			Image:       spot.Image,
		})
	}
	return responses
}

// GetDrivers handles GET /api/data/drivers
func (h *DataHandler) GetDrivers(c *gin.Context) {
	drivers, err := h.dataService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponses(drivers))
}

// GetGuides handles GET /api/data/guides
func (h *DataHandler) GetGuides(c *gin.Context) {
	guides, err := h.dataService.ListGuides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponses(guides))
}

// GetTouristSpots handles GET /api/data/touristspots
func (h *DataHandler) GetTouristSpots(c *gin.Context) {
	spots, err := h.dataService.ListSpots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toSpotResponses(spots))
}

// GetSpotsByCities handles GET /api/data/touristspots/bycities?from=&to=
func (h *DataHandler) GetSpotsByCities(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	spots, err := h.dataService.SpotsByCities(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toSpotResponses(spots))
}

// GetProfile handles GET /api/data/profile/:email
func (h *DataHandler) GetProfile(c *gin.Context) {
	user, err := h.profileService.GetProfile(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PUT /api/data/profile/:email (multipart form).
//
// Email and role are immutable. Text fields are applied only when present in
// the form; document uploads are stored on disk and reset the matching
// verified flag.
func (h *DataHandler) UpdateProfile(c *gin.Context) {
	email := c.Param("email")

	update := service.ProfileUpdate{
		Name:         formField(c, "name"),
		Phone:        formField(c, "phone"),
		CarNumber:    formField(c, "carNumber"),
		CarModel:     formField(c, "carModel"),
		CarImage:     formField(c, "carImage"),
		Experience:   formField(c, "experience"),
		ProfileImage: formField(c, "profileImage"),
		GuideNumber:  formField(c, "guideNumber"),
	}

	if raw := formField(c, "pricePerDay"); raw != nil {
		price, err := strconv.ParseFloat(*raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pricePerDay"})
			return
		}
		update.PricePerDay = &price
	}

	// Languages arrive as a single delimited string.
	if raw := formField(c, "languages"); raw != nil {
		update.Languages = splitLanguages(*raw)
	}

	licenseURL, err := h.storeUpload(c, "drivingLicense")
	if err != nil {
		respondError(c, err)
		return
	}
	update.DrivingLicenseURL = licenseURL

	idCardURL, err := h.storeUpload(c, "guideIdCard")
	if err != nil {
		respondError(c, err)
		return
	}
	update.GuideIDCardURL = idCardURL

	user, err := h.profileService.UpdateProfile(c.Request.Context(), email, update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// VerifyLicense handles PUT /api/data/verify-license/:email
func (h *DataHandler) VerifyLicense(c *gin.Context) {
	email := c.Param("email")

	user, err := h.profileService.VerifyLicense(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// storeUpload saves the named multipart file and returns its public URL, or
// "" when the field was not part of the request.
func (h *DataHandler) storeUpload(c *gin.Context, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.documents.Save(fileHeader.Filename, file)
}

// formField returns a pointer to the form value, or nil when the field was
// absent. An empty submitted value still clears the stored field.
func formField(c *gin.Context, name string) *string {
	values, ok := c.GetPostFormArray(name)
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func splitLanguages(raw string) []string {
	parts := strings.Split(raw, ",")
	languages := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}
