package presenter

import (
	"time"

	authDTO "github.com/aseeltahaa/smartspace/internal/adapter/dto/auth"
	"github.com/aseeltahaa/smartspace/internal/domain/entities"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &authDTO.UserResponse{
		ID:                u.ID.String(),
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		Roles:             roles,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

// ToUserResponses converts a user list
func ToUserResponses(users []entities.User) []*authDTO.UserResponse {
	out := make([]*authDTO.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out
}

// ToSessionResponse describes the session without exposing its token
func ToSessionResponse(s entities.Session, now time.Time) *authDTO.SessionResponse {
	return &authDTO.SessionResponse{
		Authenticated: s.IsAuthenticated(),
		IsAdmin:       s.IsAdmin,
		ExpiresAt:     s.ExpiresAt,
		Expired:       s.Expired(now),
		User:          ToUserResponse(s.User),
	}
}
