package handler

import (
	"github.com/planifikues/travel-planner/internal/core/domain"
	"github.com/planifikues/travel-planner/internal/core/ports"
)

// --- Request → Service input ---

func toPreferences(p *preferencesRequest) *domain.PreferencesPatch {
	if p == nil {
		return nil
	}
	return &domain.PreferencesPatch{
		Language:      p.Language,
		Currency:      p.Currency,
		Notifications: p.Notifications,
	}
}

func toProfileInput(r profileRequest) ports.ProfileInput {
	return ports.ProfileInput{
		Name:        r.Name,
		Password:    r.Password,
		Phone:       r.Phone,
		Address:     r.Address,
		Preferences: toPreferences(r.Preferences),
	}
}

func toUserInput(r userRequest) ports.UserInput {
	return ports.UserInput{
		Email:       r.Email,
		Password:    r.Password,
		Name:        r.Name,
		Role:        r.Role,
		Phone:       r.Phone,
		Address:     r.Address,
		Preferences: toPreferences(r.Preferences),
	}
}

func toTripInput(r tripRequest) ports.CreateTripInput {
	return ports.CreateTripInput{
		Title:       r.Title,
		Destination: r.Destination,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

func toAccommodationInput(r accommodationRequest) ports.CreateAccommodationInput {
	return ports.CreateAccommodationInput{
		Name:      r.Name,
		Location:  r.Location,
		Price:     r.Price,
		Rating:    r.Rating,
		Type:      r.Type,
		Amenities: r.Amenities,
		CheckIn:   r.CheckIn,
		CheckOut:  r.CheckOut,
	}
}

func toActivityInput(r activityRequest) ports.CreateActivityInput {
	return ports.CreateActivityInput{
		Name:     r.Name,
		Location: r.Location,
		Date:     r.Date,
		Time:     r.Time,
		Category: r.Category,
		Price:    r.Price,
		Rating:   r.Rating,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Phone:       u.Phone,
		Address:     u.Address,
		Preferences: u.EffectivePreferences(),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toLoginResponse(res *ports.LoginResult) loginResponse {
	return loginResponse{
		Message: "Login successful",
		UserID:  res.Identity.ID,
		Email:   res.Identity.Email,
		Name:    res.Identity.Name,
		Role:    res.Identity.Role,
		Token:   res.Token,
	}
}
