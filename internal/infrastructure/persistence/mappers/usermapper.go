package mappers

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UserModel) (*user.User, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *user.User) (*models.UserModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

// UserMapperImpl is the concrete implementation of UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email := model.Email
	cpf := model.CPF

	firstName, err := vo.NewName(model.FirstName)
	if err != nil {
		return nil, fmt.Errorf("failed to create first name value object: %w", err)
	}

	lastName, err := vo.NewName(model.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to create last name value object: %w", err)
	}

	role, err := vo.ParseRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to parse role: %w", err)
	}

	status, err := vo.ParseStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}

	profile := user.Profile{PhoneNumber: model.PhoneNumber}
	if model.DateOfBirth != nil {
		dob := time.Time(*model.DateOfBirth).UTC()
		dob = time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
		profile.DateOfBirth = &dob
	}

	authData := &user.AuthData{
		PasswordHash:               model.PasswordHash,
		EmailVerified:              model.EmailVerified,
		EmailVerifiedAt:            model.EmailVerifiedAt,
		EmailVerificationToken:     model.EmailVerificationToken,
		EmailVerificationExpiresAt: model.EmailVerificationExpiresAt,
		LoginAttempts:              model.LoginAttempts,
		LockedUntil:                model.LockedUntil,
		LastLoginAt:                model.LastLoginAt,
		LastLoginIP:                model.LastLoginIP,
	}

	userEntity, err := user.ReconstructUser(
		model.ID,
		model.SID,
		&email,
		&cpf,
		firstName,
		lastName,
		role,
		status,
		profile,
		model.CreatedAt,
		model.UpdatedAt,
		model.Version,
		authData,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}

	return userEntity, nil
}

// ToModel converts a domain entity to a persistence model
func (m *UserMapperImpl) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	authData := entity.GetAuthData()

	model := &models.UserModel{
		ID:                         entity.ID(),
		SID:                        entity.SID(),
		Email:                      *entity.Email(),
		CPF:                        *entity.CPF(),
		FirstName:                  entity.FirstName().String(),
		LastName:                   entity.LastName().String(),
		PhoneNumber:                entity.PhoneNumber(),
		Role:                       entity.Role().String(),
		Status:                     entity.Status().String(),
		Version:                    entity.Version(),
		CreatedAt:                  entity.CreatedAt(),
		UpdatedAt:                  entity.UpdatedAt(),
		PasswordHash:               authData.PasswordHash,
		EmailVerified:              authData.EmailVerified,
		EmailVerifiedAt:            authData.EmailVerifiedAt,
		EmailVerificationToken:     authData.EmailVerificationToken,
		EmailVerificationExpiresAt: authData.EmailVerificationExpiresAt,
		LoginAttempts:              authData.LoginAttempts,
		LockedUntil:                authData.LockedUntil,
		LastLoginAt:                authData.LastLoginAt,
		LastLoginIP:                authData.LastLoginIP,
	}

	if dob := entity.DateOfBirth(); dob != nil {
		date := datatypes.Date(*dob)
		model.DateOfBirth = &date
	}

	return model, nil
}

// ToEntities converts multiple persistence models to domain entities
func (m *UserMapperImpl) ToEntities(modelList []*models.UserModel) ([]*user.User, error) {
	entities := make([]*user.User, 0, len(modelList))
	for _, model := range modelList {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map user %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
