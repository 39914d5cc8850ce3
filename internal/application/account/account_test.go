package account

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/application/identity"
	"warden/internal/application/testutil"
	"warden/internal/domain/account"
	"warden/internal/domain/agent"
	"warden/internal/domain/license"
	"warden/internal/infrastructure/auth"
	"warden/internal/shared/errors"
)

type stubStatus struct{ status agent.Status }

func (s stubStatus) Status(string) agent.Status { return s.status }

type stubQueue struct{ n int }

func (s stubQueue) Len(string) int { return s.n }

type stubBans struct {
	n   int64
	err error
}

func (s stubBans) CountActive(context.Context, string) (int64, error) { return s.n, s.err }

func newCustomerService(t *testing.T) (*CustomerService, *testutil.MockCustomerRepository, *testutil.MockLicenseRepository) {
	t.Helper()
	log := testutil.NewMockLogger()
	customers := testutil.NewMockCustomerRepository()
	licenses := testutil.NewMockLicenseRepository()
	resolver := identity.NewResolver(customers, testutil.NewMockPanelAdminRepository(), log)
	svc := NewCustomerService(customers, licenses, resolver,
		stubStatus{agent.Status{Online: true, Players: 12}}, stubQueue{3}, stubBans{n: 5}, log)
	return svc, customers, licenses
}

func TestCustomerLogin(t *testing.T) {
	svc, customers, _ := newCustomerService(t)
	customers.Add(&account.Customer{ID: "cust-1", Email: "owner@example.com", PasswordHash: account.Digest("hunter2"), LicenseKey: "WARD-A"})
	ctx := context.Background()

	res, err := svc.Login(ctx, " Owner@Example.com ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", res.Token)
	assert.Equal(t, "WARD-A", res.LicenseKey)

	_, err = svc.Login(ctx, "owner@example.com", "wrong")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidCredentials))

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidCredentials))

	_, err = svc.Login(ctx, "", "x")
	assert.True(t, errors.HasCode(err, errors.CodeMissingFields))
}

func TestCustomerDashboard(t *testing.T) {
	svc, customers, licenses := newCustomerService(t)
	customers.Add(&account.Customer{ID: "cust-1", LicenseKey: "WARD-A"})
	licenses.Add(&license.License{LicenseKey: "WARD-A", Status: license.StatusActive})

	d, err := svc.Dashboard(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "WARD-A", d.License.LicenseKey)
	assert.True(t, d.Status.Online)
	assert.Equal(t, 12, d.Status.Players)
	assert.Equal(t, int64(5), d.ActiveBans)
	assert.Equal(t, 3, d.QueuedActions)

	assert.False(t, d.AgentOutdated)

	_, err = svc.Dashboard(context.Background(), "")
	assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
}

func TestCustomerDashboardFlagsOutdatedAgent(t *testing.T) {
	log := testutil.NewMockLogger()
	customers := testutil.NewMockCustomerRepository()
	licenses := testutil.NewMockLicenseRepository()
	customers.Add(&account.Customer{ID: "cust-1", LicenseKey: "WARD-A"})
	licenses.Add(&license.License{LicenseKey: "WARD-A", Status: license.StatusActive})
	resolver := identity.NewResolver(customers, testutil.NewMockPanelAdminRepository(), log)

	for _, tc := range []struct {
		reported string
		latest   string
		want     bool
	}{
		{"1.2.0", "1.3.0", true},
		{"v1.3.0", "1.3.0", false},
		{"1.4.0", "1.3.0", false},
		{"", "1.3.0", false},
		{"1.2.0", "", false},
	} {
		svc := NewCustomerService(customers, licenses, resolver,
			stubStatus{agent.Status{Online: true, Version: tc.reported}}, stubQueue{}, stubBans{}, log)
		svc.SetLatestAgentVersion(tc.latest)

		d, err := svc.Dashboard(context.Background(), "cust-1")
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.AgentOutdated, "reported %q latest %q", tc.reported, tc.latest)
	}
}

func TestCustomerCreate(t *testing.T) {
	svc, _, licenses := newCustomerService(t)
	licenses.Add(&license.License{LicenseKey: "WARD-A", Status: license.StatusActive})
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCustomerCommand{Email: "New@Example.com", Password: "pw", LicenseKey: "WARD-A"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "new@example.com", c.Email)
	assert.True(t, account.DigestMatches("pw", c.PasswordHash))

	_, err = svc.Create(ctx, CreateCustomerCommand{Email: "new@example.com", Password: "pw", LicenseKey: "WARD-A"})
	assert.True(t, errors.HasCode(err, errors.CodeConflict))

	_, err = svc.Create(ctx, CreateCustomerCommand{Email: "b@example.com", Password: "pw", LicenseKey: "WARD-NONE"})
	assert.True(t, errors.HasCode(err, errors.CodeLicenseNotFound))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	res, err := svc.Login(ctx, "new@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, c.ID, res.Token)
}

func owner(key string) identity.Identity {
	return identity.Identity{Kind: identity.KindOwner, LicenseKey: key, SubjectID: "cust"}
}

func TestPanelAdmins_Lifecycle(t *testing.T) {
	repo := testutil.NewMockPanelAdminRepository()
	svc := NewPanelAdminService(repo, testutil.NewMockLogger())
	resolver := identity.NewResolver(testutil.NewMockCustomerRepository(), repo, testutil.NewMockLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, owner("WARD-A"), "mod", "pw")
	require.NoError(t, err)
	assert.Len(t, created.Token, 64)
	assert.NotEqual(t, created.Token, created.Admin.TokenHash)
	assert.Equal(t, account.Digest(created.Token), created.Admin.TokenHash)

	ident, err := resolver.Resolve(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, identity.KindAdmin, ident.Kind)

	_, err = svc.Create(ctx, owner("WARD-A"), "mod", "other")
	assert.True(t, errors.HasCode(err, errors.CodeConflict))

	list, err := svc.List(ctx, owner("WARD-A"))
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = svc.List(ctx, owner("WARD-B"))
	require.NoError(t, err)
	assert.Empty(t, list)

	inactive := false
	_, err = svc.Update(ctx, owner("WARD-B"), created.Admin.ID, UpdateAdminCommand{Active: &inactive})
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))

	updated, err := svc.Update(ctx, owner("WARD-A"), created.Admin.ID, UpdateAdminCommand{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	ident, err = resolver.Resolve(ctx, created.Token)
	require.NoError(t, err)
	assert.False(t, ident.Resolved())

	require.NoError(t, svc.Delete(ctx, owner("WARD-A"), created.Admin.ID))
	assert.True(t, errors.HasCode(svc.Delete(ctx, owner("WARD-A"), created.Admin.ID), errors.CodeNotFound))
}

func TestPanelAdmins_RequireOwner(t *testing.T) {
	svc := NewPanelAdminService(testutil.NewMockPanelAdminRepository(), testutil.NewMockLogger())
	admin := identity.Identity{Kind: identity.KindAdmin, LicenseKey: "WARD-A"}

	_, err := svc.Create(context.Background(), admin, "x", "y")
	assert.True(t, errors.HasCode(err, errors.CodeForbidden))
	_, err = svc.List(context.Background(), identity.Identity{})
	assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
}

func TestPanelAdminLogin_RotatesToken(t *testing.T) {
	repo := testutil.NewMockPanelAdminRepository()
	svc := NewPanelAdminService(repo, testutil.NewMockLogger())
	resolver := identity.NewResolver(testutil.NewMockCustomerRepository(), repo, testutil.NewMockLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, owner("WARD-A"), "mod", "pw")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "", "mod", "pw")
	require.NoError(t, err)
	assert.Equal(t, "WARD-A", res.LicenseKey)
	assert.NotEqual(t, created.Token, res.Token)

	old, err := resolver.Resolve(ctx, created.Token)
	require.NoError(t, err)
	assert.False(t, old.Resolved())

	fresh, err := resolver.Resolve(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "WARD-A", fresh.LicenseKey)

	_, err = svc.Login(ctx, "WARD-A", "mod", "bad")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidCredentials))
	_, err = svc.Login(ctx, "WARD-B", "mod", "pw")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidCredentials))
}

func TestOperatorLogin(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("console-pass")
	require.NoError(t, err)
	jwtSvc := auth.NewJWTService("jwt-secret", 30)
	svc := NewOperatorService(hash, auth.OperatorSubject, hasher, jwtSvc, testutil.NewMockLogger())

	session, err := svc.Login(context.Background(), "console-pass")
	require.NoError(t, err)
	assert.Equal(t, int64(1800), session.ExpiresIn)

	claims, err := jwtSvc.Verify(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, OperatorRole, claims.Role)
	assert.Equal(t, auth.OperatorSubject, claims.Subject)

	_, err = svc.Login(context.Background(), "nope")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidCredentials))

	disabled := NewOperatorService("", auth.OperatorSubject, hasher, jwtSvc, testutil.NewMockLogger())
	_, err = disabled.Login(context.Background(), "console-pass")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidCredentials))
}

func TestSettings(t *testing.T) {
	repo := testutil.NewMockSettingsRepository()
	svc := NewSettingsService(repo, testutil.NewMockLogger())
	ctx := context.Background()

	doc, err := svc.Get(ctx, "WARD-A")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(doc))

	saved, err := svc.Put(ctx, "WARD-A", json.RawMessage(` {"speedhack": {"enabled": true}} `))
	require.NoError(t, err)
	assert.Equal(t, `{"speedhack":{"enabled":true}}`, string(saved))

	doc, err = svc.Get(ctx, "WARD-A")
	require.NoError(t, err)
	assert.JSONEq(t, `{"speedhack":{"enabled":true}}`, string(doc))

	for _, bad := range []string{``, `[]`, `"x"`, `{"a":`} {
		_, err := svc.Put(ctx, "WARD-A", json.RawMessage(bad))
		assert.True(t, errors.HasCode(err, errors.CodeMissingFields), "input %q", bad)
	}

	repo.Err = stderrors.New("down")
	_, err = svc.Get(ctx, "WARD-A")
	assert.True(t, errors.HasCode(err, errors.CodeDBError))
}
