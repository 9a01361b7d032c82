package jobs

import "time"

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Job is a posting owned by one employer. Candidates are evaluated against
// its Position, RequiredYearsExperience and FlexibleOnTitle.
type Job struct {
	ID                      string    `json:"id"`
	EmployerID              string    `json:"employerId"`
	Title                   string    `json:"title"`
	Position                string    `json:"position"`
	Description             string    `json:"description"`
	Location                string    `json:"location"`
	RequiredYearsExperience float64   `json:"requiredYearsExperience"`
	FlexibleOnTitle         bool      `json:"flexibleOnTitle"`
	VehicleRequired         bool      `json:"vehicleRequired"`
	Status                  string    `json:"status"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// IsOpen reports whether the job accepts applications.
func (j Job) IsOpen() bool {
	return j.Status == StatusOpen
}

// PublicJob is the applicant facing view of a job.
type PublicJob struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Position        string `json:"position"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	VehicleRequired bool   `json:"vehicleRequired"`
}

func (j Job) Public() PublicJob {
	return PublicJob{
		ID:              j.ID,
		Title:           j.Title,
		Position:        j.Position,
		Description:     j.Description,
		Location:        j.Location,
		VehicleRequired: j.VehicleRequired,
	}
}
