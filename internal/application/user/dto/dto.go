package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"banking/internal/domain/user"
	"banking/internal/shared/biztime"
)

// RegisterRequest is the body of POST /auth/register. Email, cpf and password
// carry no binding rules: absent, null and non-string values reach the value
// objects so every failure carries its typed error.
type RegisterRequest struct {
	Email       string `json:"email"`
	CPF         string `json:"cpf"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number,omitempty" binding:"omitempty,e164"`
	DateOfBirth string `json:"date_of_birth,omitempty" binding:"omitempty,datetime=2006-01-02"`

	// nonText lists the identity fields that arrived as numbers, booleans,
	// objects or arrays; their raw JSON is kept in the string field
	nonText []string
}

// UnmarshalJSON decodes the body without failing on non-string identity fields.
// null decodes to the empty string like an absent field.
func (r *RegisterRequest) UnmarshalJSON(data []byte) error {
	type plain RegisterRequest
	body := struct {
		*plain
		Email    json.RawMessage `json:"email"`
		CPF      json.RawMessage `json:"cpf"`
		Password json.RawMessage `json:"password"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	r.nonText = nil
	for _, f := range []struct {
		name   string
		raw    json.RawMessage
		target *string
	}{
		{"email", body.Email, &r.Email},
		{"cpf", body.CPF, &r.CPF},
		{"password", body.Password, &r.Password},
	} {
		text, ok, err := identityText(f.raw)
		if err != nil {
			return err
		}
		*f.target = text
		if !ok {
			r.nonText = append(r.nonText, f.name)
		}
	}
	return nil
}

// NonTextFields returns the identity fields that were not JSON strings
func (r RegisterRequest) NonTextFields() []string {
	return r.nonText
}

// identityText reports ok=false for values that are neither strings nor null
func identityText(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", true, nil
	}
	if raw[0] != '"' {
		return string(raw), false, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", false, err
	}
	return text, true, nil
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest is the body of POST /auth/verify-email
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required,len=64,hexadecimal"`
}

// ValidateRequest is the body of POST /validate; absent fields are skipped
type ValidateRequest struct {
	Email    *string `json:"email,omitempty" yaml:"email,omitempty"`
	CPF      *string `json:"cpf,omitempty" yaml:"cpf,omitempty"`
	Password *string `json:"password,omitempty" yaml:"password,omitempty"`
}

// ListUsersRequest represents the query of GET /admin/users
type ListUsersRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Email    string `form:"email"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive suspended pending_verification"`
	Role     string `form:"role" binding:"omitempty,oneof=user moderator admin"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at email last_name"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// UpdateUserStatusRequest is the body of PATCH /admin/users/:sid/status
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// FieldValidation reports the outcome for a single identity field
type FieldValidation struct {
	Field      string `json:"field" yaml:"field"`
	Valid      bool   `json:"valid" yaml:"valid"`
	Normalized string `json:"normalized,omitempty" yaml:"normalized,omitempty"`
	Formatted  string `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	ErrorType  string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ValidationReport is the result of validating any subset of email, cpf and password
type ValidationReport struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Fields []FieldValidation `json:"fields" yaml:"fields"`
}

// Add appends a field result; any invalid field invalidates the report
func (r *ValidationReport) Add(field FieldValidation) {
	r.Fields = append(r.Fields, field)
	if !field.Valid {
		r.Valid = false
	}
}

// UserResponse represents the response for a user. CPF is always masked.
type UserResponse struct {
	SID           string     `json:"id"`
	Email         string     `json:"email"`
	CPF           string     `json:"cpf"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	FullName      string     `json:"full_name"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	DateOfBirth   string     `json:"date_of_birth,omitempty"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	EmailVerified bool       `json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
}

// ListUsersResponse represents the response for listing users
type ListUsersResponse struct {
	Users      []*UserResponse    `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ToUserResponse maps the aggregate to its public representation
func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}

	resp := &UserResponse{
		SID:           u.SID(),
		Email:         u.Email().String(),
		CPF:           u.CPF().Masked(),
		FirstName:     u.FirstName().String(),
		LastName:      u.LastName().String(),
		FullName:      u.FullName(),
		PhoneNumber:   u.PhoneNumber(),
		Role:          u.Role().String(),
		Status:        u.Status().String(),
		EmailVerified: u.IsEmailVerified(),
		LastLoginAt:   u.GetAuthData().LastLoginAt,
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
	if dob := u.DateOfBirth(); dob != nil {
		resp.DateOfBirth = dob.Format(biztime.DateLayout)
	}
	return resp
}

// ToUserResponses maps a page of aggregates
func ToUserResponses(users []*user.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// NewPagination computes the page count for a total
func NewPagination(page, pageSize int, total int64) PaginationResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginationResponse{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
