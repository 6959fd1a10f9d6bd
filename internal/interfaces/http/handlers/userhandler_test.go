package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"banking/internal/application/user/dto"
	"banking/internal/interfaces/http/handlers/testutil"
	"banking/internal/shared/errors"
)

func newUserHandler(svc *mockUserService) *UserHandler {
	return NewUserHandler(svc, testutil.NewMockLogger())
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("binds filters", func(t *testing.T) {
		svc := &mockUserService{}
		want := dto.ListUsersRequest{Page: 2, PageSize: 10, Status: "active"}
		svc.On("ListUsers", mock.Anything, want).Return(&dto.ListUsersResponse{
			Users:      []*dto.UserResponse{sampleUser()},
			Pagination: dto.NewPagination(2, 10, 11),
		}, nil)

		c, w := testutil.NewTestContext(http.MethodGet, "/admin/users", nil)
		testutil.SetQueryParams(c, map[string]string{"page": "2", "page_size": "10", "status": "active"})
		newUserHandler(svc).ListUsers(c)

		require.Equal(t, http.StatusOK, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var list dto.ListUsersResponse
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		assert.Len(t, list.Users, 1)
		assert.Equal(t, 2, list.Pagination.TotalPages)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := &mockUserService{}

		c, w := testutil.NewTestContext(http.MethodGet, "/admin/users", nil)
		testutil.SetQueryParams(c, map[string]string{"status": "deleted"})
		newUserHandler(svc).ListUsers(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized page", func(t *testing.T) {
		svc := &mockUserService{}

		c, w := testutil.NewTestContext(http.MethodGet, "/admin/users", nil)
		testutil.SetQueryParams(c, map[string]string{"page_size": "1000"})
		newUserHandler(svc).ListUsers(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	tests := []struct {
		name       string
		sid        string
		setup      func(svc *mockUserService)
		wantStatus int
	}{
		{
			name: "found",
			sid:  testUserSID,
			setup: func(svc *mockUserService) {
				svc.On("GetUser", mock.Anything, testUserSID).Return(sampleUser(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			sid:  testUserSID,
			setup: func(svc *mockUserService) {
				svc.On("GetUser", mock.Anything, testUserSID).Return(nil, errors.NewNotFoundError("user not found"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong prefix",
			sid:        "acc_abcdefghij12",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUserService{}
			if tt.setup != nil {
				tt.setup(svc)
			}

			c, w := testutil.NewTestContext(http.MethodGet, "/admin/users/"+tt.sid, nil)
			testutil.SetURLParam(c, "sid", tt.sid)
			newUserHandler(svc).GetUser(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_UpdateUserStatus(t *testing.T) {
	body := dto.UpdateUserStatusRequest{Status: "suspended"}

	t.Run("success passes the acting admin", func(t *testing.T) {
		svc := &mockUserService{}
		updated := sampleUser()
		updated.Status = "suspended"
		svc.On("UpdateUserStatus", mock.Anything, testUserSID, testAdminSID, body).Return(updated, nil)

		c, w := testutil.NewTestContext(http.MethodPatch, "/admin/users/"+testUserSID+"/status", body)
		testutil.SetURLParam(c, "sid", testUserSID)
		testutil.SetAuthContext(c, testAdminSID, "admin")
		newUserHandler(svc).UpdateUserStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid status value", func(t *testing.T) {
		svc := &mockUserService{}

		c, w := testutil.NewTestContext(http.MethodPatch, "/admin/users/"+testUserSID+"/status",
			dto.UpdateUserStatusRequest{Status: "pending_verification"})
		testutil.SetURLParam(c, "sid", testUserSID)
		testutil.SetAuthContext(c, testAdminSID, "admin")
		newUserHandler(svc).UpdateUserStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("self change is forbidden", func(t *testing.T) {
		svc := &mockUserService{}
		svc.On("UpdateUserStatus", mock.Anything, testAdminSID, testAdminSID, body).
			Return(nil, errors.NewForbiddenError("cannot change your own status"))

		c, w := testutil.NewTestContext(http.MethodPatch, "/admin/users/"+testAdminSID+"/status", body)
		testutil.SetURLParam(c, "sid", testAdminSID)
		testutil.SetAuthContext(c, testAdminSID, "admin")
		newUserHandler(svc).UpdateUserStatus(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
