package usecase

import (
	"strings"

	"taskhub-backend/internal/task/domain"
	"taskhub-backend/internal/task/repository"
)

// categoryUsecase implements CategoryUsecase.
type categoryUsecase struct {
	categoryRepo repository.CategoryRepository
	priorityRepo repository.PriorityRepository
}

// NewCategoryUsecase creates a new instance of categoryUsecase.
func NewCategoryUsecase(categoryRepo repository.CategoryRepository, priorityRepo repository.PriorityRepository) CategoryUsecase {
	return &categoryUsecase{
		categoryRepo: categoryRepo,
		priorityRepo: priorityRepo,
	}
}

func (u *categoryUsecase) CreateCategory(userID string, req CategoryRequest) (*domain.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrEmptyTitle
	}
	existing, err := u.categoryRepo.FindByName(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	category := &domain.Category{
		UserID:      userID,
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		IsActive:    true,
	}
	if err := u.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *categoryUsecase) ListCategories(userID string) ([]*domain.Category, error) {
	return u.categoryRepo.FindByUserID(userID)
}

func (u *categoryUsecase) UpdateCategory(userID, categoryID string, req CategoryRequest) (*domain.Category, error) {
	category, err := u.getOwned(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) != "" && req.Name != category.Name {
		existing, err := u.categoryRepo.FindByName(userID, req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, domain.ErrDuplicateName
		}
		category.Name = req.Name
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if err := u.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *categoryUsecase) DeactivateCategory(userID, categoryID string) error {
	category, err := u.getOwned(userID, categoryID)
	if err != nil {
		return err
	}
	category.IsActive = false
	return u.categoryRepo.Update(category)
}

func (u *categoryUsecase) EnsureCategory(userID, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyTitle
	}
	return u.categoryRepo.Ensure(userID, name)
}

func (u *categoryUsecase) ListPriorities() ([]*domain.Priority, error) {
	return u.priorityRepo.FindAll()
}

func (u *categoryUsecase) getOwned(userID, categoryID string) (*domain.Category, error) {
	category, err := u.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return category, nil
}
