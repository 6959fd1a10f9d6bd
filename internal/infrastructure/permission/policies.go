package permission

import (
	"fmt"

	vo "banking/internal/domain/user/valueobjects"
	"banking/internal/shared/logger"
)

// Resources and actions checked by the HTTP layer
const (
	ResourceProfile = "profile"
	ResourceUsers   = "users"

	ActionRead         = "read"
	ActionList         = "list"
	ActionUpdateStatus = "update_status"
)

// DefaultPolicies are the permissions each role holds directly
func DefaultPolicies() [][]string {
	return [][]string{
		{vo.RoleUser.String(), ResourceProfile, ActionRead},

		{vo.RoleModerator.String(), ResourceUsers, ActionRead},
		{vo.RoleModerator.String(), ResourceUsers, ActionList},

		{vo.RoleAdmin.String(), ResourceUsers, ActionUpdateStatus},
	}
}

// DefaultRoleHierarchy lists (role, parent) pairs; admin > moderator > user
func DefaultRoleHierarchy() [][2]string {
	return [][2]string{
		{vo.RoleModerator.String(), vo.RoleUser.String()},
		{vo.RoleAdmin.String(), vo.RoleModerator.String()},
	}
}

// InitDefaultPolicies seeds the role permissions; existing rules are left untouched
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, policy := range DefaultPolicies() {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	for _, pair := range DefaultRoleHierarchy() {
		if err := e.AddRoleInheritance(pair[0], pair[1]); err != nil {
			return err
		}
	}

	log.Info("default permissions initialized successfully")
	return nil
}
