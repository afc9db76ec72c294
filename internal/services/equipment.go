package services

import (
	"math"

	"farmpanel/internal/models"
)

// DashboardStats is the aggregate view rendered on the dashboard.
type DashboardStats struct {
	TotalEquipment      int64   `json:"total_equipment"`
	Operational         int64   `json:"operational"`
	MaintenanceRequired int64   `json:"maintenance_required"`
	Efficiency          float64 `json:"efficiency"`
}

// SearchResult is the outcome of an inventory search. Filtering is not
// implemented yet; any non-empty term yields an empty result set with
// Unavailable set and a notice for the user.
type SearchResult struct {
	Term        string
	Results     []models.Equipment
	Unavailable bool
	Notice      string
}

type EquipmentService struct{}

func NewEquipmentService() *EquipmentService {
	return &EquipmentService{}
}

// Stats computes the dashboard counts and the efficiency ratio.
// Efficiency is operational/total as a percentage rounded to one
// decimal; an empty fleet reports 0 rather than dividing by zero.
func (s *EquipmentService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := models.DB.Model(&models.Equipment{}).Count(&stats.TotalEquipment).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.Equipment{}).Where("status = ?", models.StatusOperational).Count(&stats.Operational).Error; err != nil {
		return nil, err
	}
	if err := models.DB.Model(&models.Equipment{}).Where("status = ?", models.StatusMaintenanceRequired).Count(&stats.MaintenanceRequired).Error; err != nil {
		return nil, err
	}

	if stats.TotalEquipment > 0 {
		ratio := float64(stats.Operational) / float64(stats.TotalEquipment) * 100
		stats.Efficiency = math.Round(ratio*10) / 10
	}

	return stats, nil
}

// List returns all equipment ordered by name
func (s *EquipmentService) List() ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := models.DB.Order("name").Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// Search accepts a free-text term. Advanced filtering (type, location,
// status, date ranges) is not built yet, so the result is always empty
// and flagged unavailable for any non-empty term.
func (s *EquipmentService) Search(term string) *SearchResult {
	result := &SearchResult{
		Term:    term,
		Results: []models.Equipment{},
	}

	if term != "" {
		result.Unavailable = true
		result.Notice = "Advanced search functionality coming soon"
	}

	return result
}
