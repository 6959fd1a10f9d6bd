package usecases

import (
	"context"

	"banking/internal/application/user/dto"
	"banking/internal/domain/user"
	"banking/internal/shared/constants"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
)

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, req dto.ListUsersRequest) (*dto.ListUsersResponse, error) {
	page := req.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	users, total, err := uc.userRepo.List(ctx, user.ListFilter{
		Page:     page,
		PageSize: pageSize,
		Email:    req.Email,
		Status:   req.Status,
		Role:     req.Role,
		OrderBy:  req.OrderBy,
		Order:    req.Order,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users")
	}

	return &dto.ListUsersResponse{
		Users:      dto.ToUserResponses(users),
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}
