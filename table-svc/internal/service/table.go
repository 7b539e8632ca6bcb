package service

import (
	"errors"

	"tableside/table-svc/internal/domain"
)

var ErrInvalidTableNumber = errors.New("table number must be positive")

type TableService struct {
	repo      TableRepository
	qrEncoder QRGenerator
}

func NewTableService(repo TableRepository, qr QRGenerator) *TableService {
	return &TableService{repo: repo, qrEncoder: qr}
}

// Create issues the table's QR token at creation time; the token never
// changes afterwards so printed codes stay valid.
func (s *TableService) Create(tableNumber, seats int, isActive bool) (*domain.Table, error) {
	if tableNumber <= 0 {
		return nil, ErrInvalidTableNumber
	}
	if seats <= 0 {
		seats = 4
	}

	token, err := NewOpaqueToken()
	if err != nil {
		return nil, err
	}

	table := &domain.Table{
		TableNumber: tableNumber,
		Seats:       seats,
		IsActive:    isActive,
		QRToken:     token,
	}
	if err := s.repo.CreateTable(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *TableService) List() ([]domain.TableOverview, error) {
	return s.repo.ListTables()
}

func (s *TableService) QRCodePNG(tableID int) ([]byte, error) {
	table, err := s.repo.GetTable(tableID)
	if err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(table.QRToken)
}
