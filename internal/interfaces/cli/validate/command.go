package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"banking/internal/application/user/dto"
	"banking/internal/application/user/usecases"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// ErrInvalidIdentity is returned when at least one supplied field fails validation
var ErrInvalidIdentity = errors.New("identity validation failed")

type options struct {
	email    string
	cpf      string
	password string
	output   string
}

func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an email, CPF or password offline",
		Long: `Run the registration validation rules against the given fields without
touching the database. Exits with a non-zero status if any field is invalid.`,
		Example: `  banking validate --email user@example.com --cpf 111.444.777-35
  banking validate --password 'Secret#123' --output yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Email address to validate")
	cmd.Flags().StringVar(&opts.cpf, "cpf", "", "CPF to validate, with or without punctuation")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password to check against the password policy")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatJSON, "Output format (json, yaml)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if opts.output != formatJSON && opts.output != formatYAML {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	var command usecases.ValidateIdentityCommand
	flags := cmd.Flags()
	if flags.Changed("email") {
		command.Email = &opts.email
	}
	if flags.Changed("cpf") {
		command.CPF = &opts.cpf
	}
	if flags.Changed("password") {
		command.Password = &opts.password
	}

	report, err := usecases.NewValidateIdentityUseCase(nil).Execute(command)
	if err != nil {
		return err
	}

	if err := writeReport(cmd.OutOrStdout(), report, opts.output); err != nil {
		return err
	}

	if !report.Valid {
		return ErrInvalidIdentity
	}
	return nil
}

func writeReport(w io.Writer, report *dto.ValidationReport, format string) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
