// Package rubric generates the per-position scoring frameworks that are
// embedded into analysis prompts.
package rubric

import (
	"hvac-ats-backend/internal/positions"
)

// FlexibilityPenalty is subtracted from the final score when a posting
// requires an exact title and the candidate only holds an equivalent one.
const FlexibilityPenalty = 9

// Overqualification override band.
const (
	OverqualifiedMin = 70
	OverqualifiedMax = 75
)

// Band is an inclusive score range.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Scoring documents the tier bands a framework refers to.
type Scoring struct {
	GreenTier  Band `json:"greenTier"`
	YellowTier Band `json:"yellowTier"`
	RedTier    Band `json:"redTier"`
}

// DefaultScoring returns the tier bands shared by every position.
func DefaultScoring() Scoring {
	return Scoring{
		GreenTier:  Band{Min: 80, Max: 100},
		YellowTier: Band{Min: 50, Max: 79},
		RedTier:    Band{Min: 0, Max: 49},
	}
}

// Rubric is a generated framework plus its tier documentation.
type Rubric struct {
	Framework string  `json:"framework"`
	Scoring   Scoring `json:"scoring"`
}

// ServiceTechnician builds the HVAC service technician framework.
func ServiceTechnician(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(serviceTechnicianProfile, requiredYears, flexibleOnTitle)
}

// LeadHVACTechnician builds the lead technician framework.
func LeadHVACTechnician(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(leadTechnicianProfile, requiredYears, flexibleOnTitle)
}

// Dispatcher builds the dispatcher framework.
func Dispatcher(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(dispatcherProfile, requiredYears, flexibleOnTitle)
}

// AdminAssistant builds the administrative assistant framework.
func AdminAssistant(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(adminAssistantProfile, requiredYears, flexibleOnTitle)
}

// CustomerServiceRep builds the customer service representative framework.
func CustomerServiceRep(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(customerServiceProfile, requiredYears, flexibleOnTitle)
}

// Apprentice builds the apprentice framework, including the entry-level
// "Give Them a Chance" rule.
func Apprentice(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(apprenticeProfile, requiredYears, flexibleOnTitle)
}

// Bookkeeper builds the bookkeeper framework.
func Bookkeeper(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(bookkeeperProfile, requiredYears, flexibleOnTitle)
}

// WarehouseAssociate builds the warehouse associate framework.
func WarehouseAssociate(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(warehouseProfile, requiredYears, flexibleOnTitle)
}

// SalesRep builds the HVAC sales representative framework.
func SalesRep(requiredYears float64, flexibleOnTitle bool) Rubric {
	return build(salesRepProfile, requiredYears, flexibleOnTitle)
}

// Generator is the shared signature of the position generators.
type Generator func(requiredYears float64, flexibleOnTitle bool) Rubric

// ForType returns the generator for a rubric-backed position family.
// ok is false for positions.TypeGeneric.
func ForType(t positions.Type) (gen Generator, ok bool) {
	switch t {
	case positions.TypeServiceTechnician:
		return ServiceTechnician, true
	case positions.TypeLeadTechnician:
		return LeadHVACTechnician, true
	case positions.TypeDispatcher:
		return Dispatcher, true
	case positions.TypeAdminAssistant:
		return AdminAssistant, true
	case positions.TypeCustomerServiceRep:
		return CustomerServiceRep, true
	case positions.TypeApprentice:
		return Apprentice, true
	case positions.TypeBookkeeper:
		return Bookkeeper, true
	case positions.TypeWarehouseAssociate:
		return WarehouseAssociate, true
	case positions.TypeSalesRep:
		return SalesRep, true
	case positions.TypeGeneric:
		return nil, false
	}
	return nil, false
}

// WeightsFor exposes the matrix calibration for a family, mainly for tooling.
func WeightsFor(t positions.Type) (Weights, bool) {
	p, ok := profileFor(t)
	if !ok {
		return Weights{}, false
	}
	return p.weights, true
}

func profileFor(t positions.Type) (profile, bool) {
	switch t {
	case positions.TypeServiceTechnician:
		return serviceTechnicianProfile, true
	case positions.TypeLeadTechnician:
		return leadTechnicianProfile, true
	case positions.TypeDispatcher:
		return dispatcherProfile, true
	case positions.TypeAdminAssistant:
		return adminAssistantProfile, true
	case positions.TypeCustomerServiceRep:
		return customerServiceProfile, true
	case positions.TypeApprentice:
		return apprenticeProfile, true
	case positions.TypeBookkeeper:
		return bookkeeperProfile, true
	case positions.TypeWarehouseAssociate:
		return warehouseProfile, true
	case positions.TypeSalesRep:
		return salesRepProfile, true
	}
	return profile{}, false
}
