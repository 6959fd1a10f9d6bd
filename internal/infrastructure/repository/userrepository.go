package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"banking/internal/domain/user"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/infrastructure/persistence/mappers"
	"banking/internal/infrastructure/persistence/models"
	"banking/internal/shared/db"
	"banking/internal/shared/logger"
	"banking/internal/shared/query"
)

// allowedUserOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedUserOrderByFields = map[string]bool{
	"id":         true,
	"email":      true,
	"last_name":  true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

// UserRepository implements the user repository interface with DDD patterns
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new DDD user repository
func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, userEntity *user.User) error {
	// Convert domain entity to persistence model
	model, err := r.mapper.ToModel(userEntity)
	if err != nil {
		r.logger.Errorw("failed to map user entity to model", "error", err)
		return fmt.Errorf("failed to map user entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Set the ID back to the entity
	if err := userEntity.SetID(model.ID); err != nil {
		r.logger.Errorw("failed to set user ID", "error", err)
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created successfully", "id", model.ID, "sid", model.SID)
	return nil
}

// Update persists every mutable column of the aggregate
func (r *UserRepository) Update(ctx context.Context, userEntity *user.User) error {
	model, err := r.mapper.ToModel(userEntity)
	if err != nil {
		r.logger.Errorw("failed to map user entity to model", "id", userEntity.ID(), "error", err)
		return fmt.Errorf("failed to map user entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"email":                         model.Email,
			"cpf":                           model.CPF,
			"first_name":                    model.FirstName,
			"last_name":                     model.LastName,
			"phone_number":                  model.PhoneNumber,
			"date_of_birth":                 model.DateOfBirth,
			"role":                          model.Role,
			"status":                        model.Status,
			"version":                       model.Version,
			"password_hash":                 model.PasswordHash,
			"email_verified":                model.EmailVerified,
			"email_verified_at":             model.EmailVerifiedAt,
			"email_verification_token":      model.EmailVerificationToken,
			"email_verification_expires_at": model.EmailVerificationExpiresAt,
			"login_attempts":                model.LoginAttempts,
			"locked_until":                  model.LockedUntil,
			"last_login_at":                 model.LastLoginAt,
			"last_login_ip":                 model.LastLoginIP,
			"updated_at":                    model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// GetBySID retrieves a user by SID
func (r *UserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	return r.findOne(ctx, "sid = ?", sid)
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// GetByCPF retrieves a user by the 11 CPF digits
func (r *UserRepository) GetByCPF(ctx context.Context, cpf string) (*user.User, error) {
	return r.findOne(ctx, "cpf = ?", cpf)
}

// GetByVerificationToken retrieves a user by the hash of a pending verification token
func (r *UserRepository) GetByVerificationToken(ctx context.Context, tokenHash string) (*user.User, error) {
	return r.findOne(ctx, "email_verification_token = ?", tokenHash)
}

func (r *UserRepository) findOne(ctx context.Context, condition string, arg interface{}) (*user.User, error) {
	var model models.UserModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(condition, arg).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user", "condition", condition, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Convert persistence model to domain entity
	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model to entity", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}

	return entity, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// ExistsByCPF checks if a user with the given CPF exists
func (r *UserRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	return r.exists(ctx, "cpf = ?", cpf)
}

func (r *UserRepository) exists(ctx context.Context, condition string, arg interface{}) (bool, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.UserModel{}).Where(condition, arg).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check user existence", "condition", condition, "error", err)
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return count > 0, nil
}

// List retrieves a paginated list of users
func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	var userModels []*models.UserModel
	var total int64

	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.UserModel{})

	// Apply filters
	if filter.Email != "" {
		q = q.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	// Count total records
	if err := q.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count users", "error", err)
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Apply sorting
	sort := query.SortFilter{SortBy: "created_at", SortOrder: "desc"}
	if allowedUserOrderByFields[filter.OrderBy] {
		sort = query.SortFilter{SortBy: filter.OrderBy, SortOrder: filter.Order}
	}
	// id breaks ties so pages are stable
	q = q.Order(sort.OrderClause()).Order("id ASC")

	// Apply pagination
	page := query.PageFilter{Page: filter.Page, PageSize: filter.PageSize}
	q = q.Offset(page.Offset()).Limit(page.Limit())

	if err := q.Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users", "error", err)
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	entities, err := r.mapper.ToEntities(userModels)
	if err != nil {
		r.logger.Errorw("failed to map user models to entities", "error", err)
		return nil, 0, fmt.Errorf("failed to map users: %w", err)
	}

	return entities, total, nil
}

// ClaimBootstrapAdmin locks the bootstrap row, so concurrent registrations
// decide the first admin one after another.
func (r *UserRepository) ClaimBootstrapAdmin(ctx context.Context) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	// schemas built by AutoMigrate have no seeded row
	seed := &models.BootstrapStateModel{ID: models.BootstrapStateID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		r.logger.Errorw("failed to seed bootstrap state", "error", err)
		return false, fmt.Errorf("failed to seed bootstrap state: %w", err)
	}

	var state models.BootstrapStateModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&state, models.BootstrapStateID).Error; err != nil {
		r.logger.Errorw("failed to lock bootstrap state", "error", err)
		return false, fmt.Errorf("failed to lock bootstrap state: %w", err)
	}
	if state.AdminGranted {
		return false, nil
	}

	var admins int64
	if err := tx.Model(&models.UserModel{}).Where("role = ?", vo.RoleAdmin.String()).Count(&admins).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}

	if err := tx.Model(&state).Update("admin_granted", true).Error; err != nil {
		r.logger.Errorw("failed to update bootstrap state", "error", err)
		return false, fmt.Errorf("failed to update bootstrap state: %w", err)
	}

	return admins == 0, nil
}
