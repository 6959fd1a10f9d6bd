package usecases

import (
	"banking/internal/application/user/dto"
	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/errors"
)

type ValidateIdentityCommand struct {
	Email    *string
	CPF      *string
	Password *string
}

// ValidateIdentityUseCase checks identity fields without touching storage
type ValidateIdentityUseCase struct {
	metrics MetricsRecorder
}

func NewValidateIdentityUseCase(metrics MetricsRecorder) *ValidateIdentityUseCase {
	return &ValidateIdentityUseCase{metrics: metricsOrNop(metrics)}
}

// Execute validates every supplied field independently; the report is valid
// only when all of them are. At least one field must be supplied.
func (uc *ValidateIdentityUseCase) Execute(cmd ValidateIdentityCommand) (*dto.ValidationReport, error) {
	if cmd.Email == nil && cmd.CPF == nil && cmd.Password == nil {
		return nil, errors.NewValidationError("at least one of email, cpf or password is required")
	}

	report := &dto.ValidationReport{Valid: true, Fields: make([]dto.FieldValidation, 0, 3)}

	if cmd.Email != nil {
		field := dto.FieldValidation{Field: FieldEmail}
		if email, err := vo.NewEmail(*cmd.Email); err != nil {
			uc.fail(&field, err)
		} else {
			field.Valid = true
			field.Normalized = email.String()
		}
		report.Add(field)
	}

	if cmd.CPF != nil {
		field := dto.FieldValidation{Field: FieldCPF}
		if cpf, err := vo.NewCPF(*cmd.CPF); err != nil {
			uc.fail(&field, err)
		} else {
			field.Valid = true
			field.Normalized = cpf.String()
			field.Formatted = cpf.FormattedString()
		}
		report.Add(field)
	}

	if cmd.Password != nil {
		// the password itself is never echoed back
		field := dto.FieldValidation{Field: FieldPassword}
		if _, err := vo.NewPassword(*cmd.Password); err != nil {
			uc.fail(&field, err)
		} else {
			field.Valid = true
		}
		report.Add(field)
	}

	return report, nil
}

func (uc *ValidateIdentityUseCase) fail(field *dto.FieldValidation, err error) {
	field.Valid = false
	field.Error = err.Error()
	if appErr := errors.GetAppError(err); appErr != nil {
		field.ErrorType = string(appErr.Type)
	}
	uc.metrics.ValidationFailed(field.Field, field.ErrorType)
}
