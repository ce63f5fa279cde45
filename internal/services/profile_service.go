package services

import (
	"fmt"

	"zonelink/internal/models"
	"zonelink/internal/repositories"
	"zonelink/pkg/timezone"
)

// ProfileService handles business logic for the signed-in user's profile.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
	}
}

// GetProfile returns the profile for userID, or (nil, nil) if absent.
func (s *ProfileService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateTimezone validates and applies a timezone change, returning the
// refreshed profile. The share code and identity fields are immutable.
func (s *ProfileService) UpdateTimezone(userID, tz string) (*models.User, error) {
	if err := timezone.Validate(tz); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateTimezone(userID, tz); err != nil {
		return nil, fmt.Errorf("failed to update timezone: %w", err)
	}
	return s.userRepo.GetByID(userID)
}

// Clock returns the live clock view of the user's own timezone: zone info
// plus the formatted wall-clock time and date.
func (s *ProfileService) Clock(userID string) (*ClockView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return buildClockView(user.Timezone)
}

// ClockView is a timezone rendered for display at the current instant.
type ClockView struct {
	Timezone  timezone.Info `json:"timezone"`
	LocalTime string        `json:"localTime"`
	LocalDate string        `json:"localDate"`
}

// buildClockView composes zone info with the formatted time and date.
func buildClockView(tz string) (*ClockView, error) {
	info, err := timezone.GetInfo(tz)
	if err != nil {
		return nil, err
	}
	localTime, err := timezone.FormatTime(info.CurrentTime, tz)
	if err != nil {
		return nil, err
	}
	localDate, err := timezone.FormatDate(info.CurrentTime, tz)
	if err != nil {
		return nil, err
	}
	return &ClockView{
		Timezone:  *info,
		LocalTime: localTime,
		LocalDate: localDate,
	}, nil
}
