/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculation types (decimal amounts, TimePoints) from the external
  contract (float64 amounts rounded to cents, YYYY-MM-DD strings).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Calculation:
    CalculationRequest, CalculationDTO, BenefitDTO

  Admission bundle:
    AdmissionRequest (JSON body; the HTML form uses the same field names)

  Catalog:
    RotationDTO

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/admission-benefits/benefit"
	"github.com/warp/admission-benefits/generic"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CalculationRequest is the body of POST /api/calculations.
type CalculationRequest struct {
	HireDate   string             `json:"hire_date"`
	Rotation   string             `json:"rotation"`
	DailyRates map[string]float64 `json:"daily_rates"` // keyed by benefit kind, e.g. {"vt": 12.5}
}

// CalculationDTO is the full calculation result.
type CalculationDTO struct {
	ID          string       `json:"id"`
	HireDate    string       `json:"hire_date"`
	Rotation    string       `json:"rotation"`
	Cutoff      string       `json:"cutoff"`
	DayCount    int          `json:"day_count"`
	WorkingDays []string     `json:"working_days"`
	Benefits    []BenefitDTO `json:"benefits"`
}

// BenefitDTO is one benefit's totals and installments.
type BenefitDTO struct {
	Kind         string    `json:"kind"`
	Label        string    `json:"label"`
	Name         string    `json:"name"`
	Currency     string    `json:"currency"`
	DailyRate    float64   `json:"daily_rate"`
	Total        float64   `json:"total"`
	Cap          float64   `json:"cap"`
	Installments []float64 `json:"installments"`
}

// AdmissionRequest carries the admission form. Field names match the HTML form.
type AdmissionRequest struct {
	Name       string             `json:"nome"`
	Company    string             `json:"empresa"`
	Client     string             `json:"cliente"`
	HireDate   string             `json:"data_admissao"`
	Rotation   string             `json:"escala"`
	Role       string             `json:"cargo"`
	Shift      string             `json:"turno"`
	Bank       string             `json:"banco"`
	PixKeyType string             `json:"tipo_pix"`
	PixKey     string             `json:"chave_pix"`
	DailyRates map[string]float64 `json:"daily_rates"`
}

// RotationDTO describes one catalog entry.
type RotationDTO struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Business    bool   `json:"business"`
	WorkDays    int    `json:"work_days,omitempty"`
	RestDays    int    `json:"rest_days,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// ToCalculationDTO converts a calculation result to its JSON form.
func ToCalculationDTO(id string, r *benefit.Result) CalculationDTO {
	dto := CalculationDTO{
		ID:          id,
		HireDate:    r.HireDate.String(),
		Rotation:    r.Rotation.String(),
		Cutoff:      r.Cutoff.String(),
		DayCount:    r.DayCount(),
		WorkingDays: make([]string, len(r.Days)),
		Benefits:    make([]BenefitDTO, len(r.Benefits)),
	}
	for i, d := range r.Days {
		dto.WorkingDays[i] = d.String()
	}
	for i, b := range r.Benefits {
		dto.Benefits[i] = toBenefitDTO(b)
	}
	return dto
}

func toBenefitDTO(b benefit.Breakdown) BenefitDTO {
	dto := BenefitDTO{
		Kind:         string(b.Kind),
		Label:        b.Label,
		Name:         b.Name,
		Currency:     string(b.Total.Unit),
		DailyRate:    b.DailyRate.Float64(),
		Total:        cents(b.Total),
		Cap:          cents(b.Cap),
		Installments: make([]float64, len(b.Installments)),
	}
	for i, inst := range b.Installments {
		dto.Installments[i] = cents(inst)
	}
	return dto
}

// cents rounds to two decimals for display.
func cents(a generic.Amount) float64 {
	f, _ := a.Value.Round(2).Float64()
	return f
}
