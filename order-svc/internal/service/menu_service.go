package service

import "tableside/order-svc/internal/domain"

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) Categories() ([]domain.Category, error) {
	return s.repo.ListCategories()
}

func (s *MenuService) Products(categoryID int) ([]domain.Product, error) {
	return s.repo.ListProducts(categoryID)
}
