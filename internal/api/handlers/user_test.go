package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_GetAll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().Build(t, ts.DB.DB)
	testutil.NewUserBuilder().Build(t, ts.DB.DB)

	resp, err := http.Get(ts.APIURL("/getAllUser"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		Users []map[string]interface{} `json:"users"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Len(t, result.Users, 2)
	for _, u := range result.Users {
		assert.NotContains(t, u, "nonce")
	}
}

func TestUserHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	t.Run("existing user", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/user/" + user.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/user/not-a-uuid"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestUserHandler_GetByWallet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().WithWallet("KnownWallet").Build(t, ts.DB.DB)

	t.Run("existing wallet", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/wallet/KnownWallet"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/wallet/UnknownWallet"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("user updates own profile", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)

		resp := testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/profile/"+auth.User.ID), auth.Token,
			map[string]string{"displayName": "New Name", "bio": "hello"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			User struct {
				Profile domain.Profile `json:"profile"`
			} `json:"user"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "New Name", result.User.Profile.DisplayName)
	})

	t.Run("updating another user is forbidden", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)
		other := testutil.NewUserBuilder().Build(t, ts.DB.DB)

		resp := testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/profile/"+other.ID.String()), auth.Token,
			map[string]string{"bio": "vandalism"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		ts.DB.Truncate(t)
		other := testutil.NewUserBuilder().Build(t, ts.DB.DB)

		resp := testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/profile/"+other.ID.String()), "",
			map[string]string{"bio": "anonymous"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestUserHandler_ChangeRole(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("non-admin always gets 403", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)
		target := testutil.NewUserBuilder().Build(t, ts.DB.DB)

		// Against another user.
		resp := testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/role/"+target.ID.String()), auth.Token,
			map[string]string{"role": "admin"})
		resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)

		// Against themselves.
		resp = testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/role/"+auth.User.ID), auth.Token,
			map[string]string{"role": "admin"})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("admin promotes a user", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)

		// Elevate the caller directly in the store.
		admin, err := ts.Repos.User.GetByWallet(context.Background(), w.Address)
		require.NoError(t, err)
		admin.Role = domain.RoleAdmin
		require.NoError(t, ts.Repos.User.Update(context.Background(), admin))

		target := testutil.NewUserBuilder().Build(t, ts.DB.DB)

		resp := testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/role/"+target.ID.String()), auth.Token,
			map[string]string{"role": "moderator"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		updated, err := ts.Repos.User.GetByID(context.Background(), target.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleModerator, updated.Role)
	})

	t.Run("invalid role", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)

		admin, err := ts.Repos.User.GetByWallet(context.Background(), w.Address)
		require.NoError(t, err)
		admin.Role = domain.RoleAdmin
		require.NoError(t, ts.Repos.User.Update(context.Background(), admin))

		resp := testutil.DoRequest(t, http.MethodPatch,
			ts.APIURL("/role/"+auth.User.ID), auth.Token,
			map[string]string{"role": "superuser"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("self deletion", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)

		resp := testutil.DoRequest(t, http.MethodDelete,
			ts.APIURL("/user/"+auth.User.ID), auth.Token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		// The deleted user's token no longer authorizes anything.
		me := testutil.DoRequest(t, http.MethodGet, ts.APIURL("/protected/me"), auth.Token, nil)
		defer me.Body.Close()
		testutil.AssertStatusCode(t, me, http.StatusUnauthorized)
	})

	t.Run("deleting another user is forbidden", func(t *testing.T) {
		ts.DB.Truncate(t)
		w := testutil.NewWallet(t)
		auth := w.Authenticate(t, ts)
		target := testutil.NewUserBuilder().Build(t, ts.DB.DB)

		resp := testutil.DoRequest(t, http.MethodDelete,
			ts.APIURL("/user/"+target.ID.String()), auth.Token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})
}
