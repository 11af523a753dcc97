package users

import (
	"time"

	"github.com/janisto/profile-console/internal/platform/timeutil"
	profilesvc "github.com/janisto/profile-console/internal/service/profile"
)

// Profile represents a stored profile response.
type Profile struct {
	ID        string `json:"id"            doc:"Unique identifier"     example:"0b6f3c1e-8d7a-4a8e-9d3b-2f1e5c7a9b10"`
	Name      string `json:"name"          doc:"Display name"          example:"Ann Lee"`
	Email     string `json:"email"         doc:"Email address"         example:"ann@example.com"`
	Age       *int   `json:"age,omitempty" doc:"Age in years"          example:"30"`
	CreatedAt string `json:"createdAt"     doc:"Creation timestamp"    example:"2024-01-15T10:30:00.000Z" format:"date-time"`
	UpdatedAt string `json:"updatedAt"     doc:"Last update timestamp" example:"2024-01-15T10:30:00.000Z" format:"date-time"`
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	out := Profile{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
	if p.Age != nil {
		age := *p.Age
		out.Age = &age
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeutil.RFC3339Millis)
}
