package dto

import (
	"github.com/shared-expenses/backend/internal/application/usecase/report"
)

// CategorySummaryResponse represents one category's aggregated spend.
type CategorySummaryResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
}

// SummaryResponse represents the monthly household summary.
type SummaryResponse struct {
	DeclaredIncome  string                    `json:"declared_income"`
	TotalSpent      string                    `json:"total_spent"`
	SpendByCategory []CategorySummaryResponse `json:"spend_by_category"`
}

// ToSummaryResponse converts a summary use case output to a SummaryResponse DTO.
func ToSummaryResponse(output *report.GetSummaryOutput) SummaryResponse {
	categories := make([]CategorySummaryResponse, len(output.SpendByCategory))
	for i, c := range output.SpendByCategory {
		categories[i] = CategorySummaryResponse{
			CategoryID:   c.CategoryID.String(),
			CategoryName: c.CategoryName,
			Amount:       c.Amount.String(),
		}
	}
	return SummaryResponse{
		DeclaredIncome:  output.DeclaredIncome.String(),
		TotalSpent:      output.TotalSpent.String(),
		SpendByCategory: categories,
	}
}
