package user

import "context"

// Repository defines the interface for user data operations.
// Lookups return (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id uint) (*User, error)

	// GetBySID retrieves a user by external SID (usr_ prefixed)
	GetBySID(ctx context.Context, sid string) (*User, error)

	// GetByEmail expects the normalized address
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByCPF expects the 11 raw digits
	GetByCPF(ctx context.Context, cpf string) (*User, error)

	// GetByVerificationToken looks up by the token hash, never the plain token
	GetByVerificationToken(ctx context.Context, tokenHash string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)

	// List retrieves a paginated list of users and the total count
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)

	// ClaimBootstrapAdmin reports true to exactly one caller: the first
	// registration of an installation that has no admin yet. It must run in
	// the registration transaction; concurrent claims wait for its commit.
	ClaimBootstrapAdmin(ctx context.Context) (bool, error)
}

// ListFilter represents filtering and pagination options for user list
type ListFilter struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status,omitempty"`
	Role     string `json:"role,omitempty"`
	OrderBy  string `json:"order_by,omitempty"`
	Order    string `json:"order,omitempty"` // asc or desc
}
