package financeService

import (
	"FinTrackGolang/internal/api/finance"
	financeRepository "FinTrackGolang/internal/api/finance/repository"
	"FinTrackGolang/internal/entity"
	contextPkg "FinTrackGolang/pkg/context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *financeService) CreateCategory(ctx context.Context, userID string, req finance.CreateCategoryRequest) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Category{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Category{}, err
	}

	category := entity.Category{
		ID:        ULID,
		UserID:    userID,
		Name:      req.Name,
		Type:      req.Type,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := category.Validate(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid category data")
		return entity.Category{}, err
	}

	if err := repo.Categories.CreateCategory(ctx, category); err != nil {
		if !errors.Is(err, finance.ErrCategoryExists) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to create category")
		}
		return entity.Category{}, err
	}

	return category, nil
}

func (s *financeService) GetCategoryByID(ctx context.Context, userID string, id string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Category{}, err
	}

	return repo.Categories.GetCategoryByID(ctx, userID, id)
}

func (s *financeService) GetCategoriesByUserID(ctx context.Context, userID string) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Categories.GetCategoriesByUserID(ctx, userID)
}

func (s *financeService) UpdateCategory(ctx context.Context, userID string, id string, req finance.UpdateCategoryRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	category, err := repo.Categories.GetCategoryByID(ctx, userID, id)
	if err != nil {
		return err
	}

	category.Name = req.Name
	category.Type = req.Type
	category.UpdatedAt = time.Now()

	if err := category.Validate(); err != nil {
		return err
	}

	if err := repo.Categories.UpdateCategory(ctx, category); err != nil {
		if !errors.Is(err, finance.ErrCategoryExists) && !errors.Is(err, finance.ErrCategoryNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to update category")
		}
		return err
	}

	return nil
}

func (s *financeService) DeleteCategory(ctx context.Context, userID string, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.financeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}

	return repo.Categories.DeleteCategory(ctx, userID, id)
}

// getOrCreateCategory resolves a category by (name, type), creating it when
// missing. A unique violation from a concurrent insert is resolved by
// re-fetching, so two racing requests converge on the same row.
func (s *financeService) getOrCreateCategory(ctx context.Context, repo financeRepository.Client, userID string, name string, categoryType string) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	category, err := repo.Categories.GetCategoryByNameAndType(ctx, userID, name, categoryType)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, finance.ErrCategoryNotFound) {
		return entity.Category{}, err
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Category{}, err
	}

	category = entity.Category{
		ID:        ULID,
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.Categories.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, finance.ErrCategoryExists) {
			return repo.Categories.GetCategoryByNameAndType(ctx, userID, name, categoryType)
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create category during resolution")
		return entity.Category{}, err
	}

	return category, nil
}
