package domain

import "imobhub/internal/model"

type SheetService interface {
	InsertLead(row int, lead model.Lead) error
	FindFirstFreeRow() (int, error)
}
