package handler

import "journeys/internal/domain"

// UserResponse is the flattened public view of a user. The password hash and
// reset-token fields never leave the server. Field names follow the frontend's
// camelCase contract.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`

	// Driver fields.
	CarNumber         string `json:"carNumber,omitempty"`
	CarModel          string `json:"carModel,omitempty"`
	CarImage          string `json:"carImage,omitempty"`
	DrivingLicenseURL string `json:"drivingLicenseUrl,omitempty"`
	LicenseVerified   *bool  `json:"licenseVerified,omitempty"`

	// Guide fields.
	Languages      []string `json:"languages,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	ProfileImage   string   `json:"profileImage,omitempty"`
	GuideNumber    string   `json:"guideNumber,omitempty"`
	GuideIDCardURL string   `json:"guideIdCardUrl,omitempty"`
	IDCardVerified *bool    `json:"idCardVerified,omitempty"`

	PricePerDay    float64 `json:"pricePerDay,omitempty"`
	TotalEarnings  float64 `json:"totalEarnings"`
	TripsCompleted int     `json:"tripsCompleted"`
	Rating         float64 `json:"rating"`
}

// toUserResponse flattens a user and its role profile for the API.
func toUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Role:           string(user.Role),
		TotalEarnings:  user.TotalEarnings,
		TripsCompleted: user.TripsCompleted,
		Rating:         user.Rating,
	}

	if user.Driver != nil {
		verified := user.Driver.LicenseVerified
		resp.CarNumber = user.Driver.CarNumber
		resp.CarModel = user.Driver.CarModel
		resp.CarImage = user.Driver.CarImage
		resp.PricePerDay = user.Driver.PricePerDay
		resp.DrivingLicenseURL = user.Driver.DrivingLicenseURL
		resp.LicenseVerified = &verified
	}

	if user.Guide != nil {
		verified := user.Guide.IDCardVerified
		resp.Languages = user.Guide.Languages
		resp.Experience = user.Guide.Experience
		resp.ProfileImage = user.Guide.ProfileImage
		resp.GuideNumber = user.Guide.GuideNumber
		resp.PricePerDay = user.Guide.PricePerDay
		resp.GuideIDCardURL = user.Guide.GuideIDCardURL
		resp.IDCardVerified = &verified
	}

	return resp
}

func toUserResponses(users []*domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses
}
