package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	accountapp "warden/internal/application/account"
	banapp "warden/internal/application/ban"
	"warden/internal/application/command"
	"warden/internal/application/identity"
	licenseapp "warden/internal/application/license"
	"warden/internal/application/liveness"
	"warden/internal/application/serverlog"
	apptest "warden/internal/application/testutil"
	"warden/internal/domain/account"
	"warden/internal/domain/license"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/mirror"
	"warden/internal/interfaces/http/handlers/testutil"
)

// fixture wires real services over the in-memory repositories.
type fixture struct {
	licenseRepo  *apptest.MockLicenseRepository
	customerRepo *apptest.MockCustomerRepository
	adminRepo    *apptest.MockPanelAdminRepository
	banRepo      *apptest.MockBanRepository
	blobs        *apptest.MockBlobStore

	resolver  *identity.Resolver
	licenses  *licenseapp.Service
	tracker   *liveness.Tracker
	queue     *command.Queue
	logs      *serverlog.Service
	bans      *banapp.Service
	customers *accountapp.CustomerService
	admins    *accountapp.PanelAdminService
	settings  *accountapp.SettingsService
	writer    *mirror.Writer
}

func newFixture(t *testing.T, legacyUnban bool) *fixture {
	t.Helper()
	log := apptest.NewMockLogger()

	f := &fixture{
		licenseRepo:  apptest.NewMockLicenseRepository(),
		customerRepo: apptest.NewMockCustomerRepository(),
		adminRepo:    apptest.NewMockPanelAdminRepository(),
		banRepo:      apptest.NewMockBanRepository(),
		blobs:        apptest.NewMockBlobStore(),
		writer:       mirror.NewWriter(time.Second, log),
	}
	t.Cleanup(f.writer.Wait)

	f.resolver = identity.NewResolver(f.customerRepo, f.adminRepo, log)
	f.licenses = licenseapp.NewService(f.licenseRepo, &apptest.PassthroughTx{}, auth.NewAssertionSigner("handler-secret"), f.resolver, "WARD", log)
	f.tracker = liveness.NewTracker(apptest.NewMockStatusMirror(), f.writer, log)
	f.queue = command.NewQueue(f.resolver, log)
	f.logs = serverlog.NewService(apptest.NewMockLogRepository(), f.writer, log)
	f.bans = banapp.NewService(f.banRepo, f.queue, f.resolver, f.blobs, "evidence", legacyUnban, log)
	f.customers = accountapp.NewCustomerService(f.customerRepo, f.licenseRepo, f.resolver, f.tracker, f.queue, f.bans, log)
	f.admins = accountapp.NewPanelAdminService(f.adminRepo, log)
	f.settings = accountapp.NewSettingsService(apptest.NewMockSettingsRepository(), log)
	return f
}

// addTenant stores an active license with an owning customer whose id is
// the owner token.
func (f *fixture) addTenant(key, ownerToken string) {
	f.licenseRepo.Add(&license.License{LicenseKey: key, Status: license.StatusActive, CreatedAt: time.Now().UTC()})
	f.customerRepo.Add(&account.Customer{
		ID:           ownerToken,
		Email:        ownerToken + "@example.com",
		PasswordHash: account.Digest("secret-pw"),
		LicenseKey:   key,
	})
}

func owner(key string) identity.Identity {
	return identity.Identity{Kind: identity.KindOwner, LicenseKey: key, SubjectID: "cust"}
}

func parse(t *testing.T, w *httptest.ResponseRecorder) testutil.APIResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp), w.Body.String())
	return resp
}

func decodeData(t *testing.T, resp testutil.APIResponse, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, target))
}
