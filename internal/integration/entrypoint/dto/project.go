package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/agency-crm/backend/internal/domain/entity"
)

// CreateProjectRequest represents the request body for project creation.
type CreateProjectRequest struct {
	ClientID    string          `json:"client_id" binding:"required,uuid"`
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	Status      string          `json:"status,omitempty" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	StartDate   *string         `json:"start_date,omitempty"`
	EndDate     *string         `json:"end_date,omitempty"`
}

// UpdateProjectRequest represents the request body for a partial project update.
type UpdateProjectRequest struct {
	ClientID     *string          `json:"client_id,omitempty"`
	Name         *string          `json:"name,omitempty" binding:"omitempty,max=255"`
	Description  *string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	Status       *string          `json:"status,omitempty" binding:"omitempty,oneof=planning active on_hold completed cancelled"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	StartDate    *string          `json:"start_date,omitempty"`
	EndDate      *string          `json:"end_date,omitempty"`
	ClearEndDate bool             `json:"clear_end_date,omitempty"`
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	HourlyRate  string    `json:"hourly_rate"`
	StartDate   *string   `json:"start_date,omitempty"`
	EndDate     *string   `json:"end_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse represents the response for listing projects.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToProjectResponse converts a project entity.
func ToProjectResponse(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		ClientID:    p.ClientID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		HourlyRate:  money(p.HourlyRate),
		StartDate:   formatOptionalDate(p.StartDate),
		EndDate:     formatOptionalDate(p.EndDate),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProjectListResponse converts project entities.
func ToProjectListResponse(projects []*entity.Project) ProjectListResponse {
	return ProjectListResponse{
		Projects: lo.Map(projects, func(p *entity.Project, _ int) ProjectResponse { return ToProjectResponse(p) }),
	}
}
