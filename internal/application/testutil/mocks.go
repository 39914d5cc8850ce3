// Package testutil provides in-memory collaborators for testing the
// application layer without a database.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"warden/internal/domain/account"
	"warden/internal/domain/agent"
	"warden/internal/domain/ban"
	"warden/internal/domain/license"
	"warden/internal/shared/logger"
)

// MockLicenseRepository is an in-memory license.Repository.
type MockLicenseRepository struct {
	mu       sync.RWMutex
	licenses map[string]*license.License

	// Err, when set, is returned by every call.
	Err       error
	BindCalls int
}

func NewMockLicenseRepository() *MockLicenseRepository {
	return &MockLicenseRepository{licenses: make(map[string]*license.License)}
}

// Add stores a copy of l.
func (m *MockLicenseRepository) Add(l *license.License) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *l
	m.licenses[l.LicenseKey] = &c
}

func (m *MockLicenseRepository) Create(ctx context.Context, l *license.License) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.licenses[l.LicenseKey]; ok {
		return fmt.Errorf("duplicate license key %s", l.LicenseKey)
	}
	c := *l
	m.licenses[l.LicenseKey] = &c
	return nil
}

func (m *MockLicenseRepository) Get(ctx context.Context, key string) (*license.License, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.licenses[key]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (m *MockLicenseRepository) List(ctx context.Context) ([]*license.License, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*license.License, 0, len(m.licenses))
	for _, l := range m.licenses {
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LicenseKey < out[j].LicenseKey })
	return out, nil
}

func (m *MockLicenseRepository) BindHWID(ctx context.Context, key, hwid string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BindCalls++
	l, ok := m.licenses[key]
	if !ok || l.BoundHWID() != "" {
		return false, nil
	}
	h := hwid
	l.HWID = &h
	return true, nil
}

func (m *MockLicenseRepository) TouchLastSeen(ctx context.Context, key string, at time.Time) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.licenses[key]; ok {
		t := at
		l.LastSeen = &t
	}
	return nil
}

func (m *MockLicenseRepository) SetStatus(ctx context.Context, key, status string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.licenses[key]
	if !ok {
		return false, nil
	}
	l.Status = status
	return true, nil
}

func (m *MockLicenseRepository) SetExpiry(ctx context.Context, key string, expiresAt *time.Time) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.licenses[key]
	if !ok {
		return false, nil
	}
	l.ExpiresAt = expiresAt
	return true, nil
}

func (m *MockLicenseRepository) Delete(ctx context.Context, key string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.licenses[key]; !ok {
		return false, nil
	}
	delete(m.licenses, key)
	return true, nil
}

// MockCustomerRepository is an in-memory account.CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*account.Customer

	Err   error
	Calls int
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*account.Customer)}
}

func (m *MockCustomerRepository) Add(c *account.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.customers[c.ID] = &cp
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *account.Customer) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.customers {
		if existing.Email == c.Email {
			return fmt.Errorf("duplicate email %s", c.Email)
		}
	}
	cp := *c
	m.customers[c.ID] = &cp
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*account.Customer, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*account.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*account.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*account.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// MockPanelAdminRepository is an in-memory account.PanelAdminRepository.
type MockPanelAdminRepository struct {
	mu     sync.RWMutex
	admins map[uint]*account.PanelAdmin
	nextID uint

	Err error
}

func NewMockPanelAdminRepository() *MockPanelAdminRepository {
	return &MockPanelAdminRepository{admins: make(map[uint]*account.PanelAdmin)}
}

func (m *MockPanelAdminRepository) Create(ctx context.Context, a *account.PanelAdmin) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.admins {
		if existing.LicenseKey == a.LicenseKey && existing.Username == a.Username {
			return fmt.Errorf("duplicate username %s", a.Username)
		}
	}
	m.nextID++
	a.ID = m.nextID
	cp := *a
	m.admins[a.ID] = &cp
	return nil
}

func (m *MockPanelAdminRepository) GetByID(ctx context.Context, id uint) (*account.PanelAdmin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *MockPanelAdminRepository) GetActiveByTokenHash(ctx context.Context, tokenHash string) (*account.PanelAdmin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.admins {
		if a.Active && a.TokenHash != "" && a.TokenHash == tokenHash {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockPanelAdminRepository) GetByUsername(ctx context.Context, licenseKey, username string) (*account.PanelAdmin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.admins {
		if a.LicenseKey == licenseKey && a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockPanelAdminRepository) FindByUsername(ctx context.Context, username string) ([]*account.PanelAdmin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*account.PanelAdmin
	for _, a := range m.admins {
		if a.Username == username {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockPanelAdminRepository) ListByLicense(ctx context.Context, licenseKey string) ([]*account.PanelAdmin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*account.PanelAdmin{}
	for _, a := range m.admins {
		if a.LicenseKey == licenseKey {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockPanelAdminRepository) Update(ctx context.Context, a *account.PanelAdmin) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[a.ID]; !ok {
		return fmt.Errorf("panel admin %d not found", a.ID)
	}
	cp := *a
	m.admins[a.ID] = &cp
	return nil
}

func (m *MockPanelAdminRepository) Delete(ctx context.Context, id uint) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.admins, id)
	return nil
}

// MockBanRepository is an in-memory ban.Repository.
type MockBanRepository struct {
	mu   sync.RWMutex
	bans map[string]*ban.Ban

	Err error
}

func NewMockBanRepository() *MockBanRepository {
	return &MockBanRepository{bans: make(map[string]*ban.Ban)}
}

func copyBan(b *ban.Ban) *ban.Ban {
	c := *b
	c.Identifiers = append([]string{}, b.Identifiers...)
	return &c
}

func (m *MockBanRepository) Create(ctx context.Context, b *ban.Ban) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bans[b.BanID]; ok {
		return fmt.Errorf("duplicate ban id %s", b.BanID)
	}
	m.bans[b.BanID] = copyBan(b)
	return nil
}

func (m *MockBanRepository) Get(ctx context.Context, banID string) (*ban.Ban, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bans[banID]
	if !ok {
		return nil, nil
	}
	return copyBan(b), nil
}

func (m *MockBanRepository) newestFirst(licenseKey string, keep func(*ban.Ban) bool) []*ban.Ban {
	out := []*ban.Ban{}
	for _, b := range m.bans {
		if b.LicenseKey == licenseKey && keep(b) {
			out = append(out, copyBan(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].BanID > out[j].BanID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *MockBanRepository) ListByLicense(ctx context.Context, licenseKey string) ([]*ban.Ban, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.newestFirst(licenseKey, func(*ban.Ban) bool { return true }), nil
}

func (m *MockBanRepository) FindActiveByIdentifiers(ctx context.Context, licenseKey string, identifiers []string, now time.Time) (*ban.Ban, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	want := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		want[id] = struct{}{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matches := m.newestFirst(licenseKey, func(b *ban.Ban) bool {
		if !b.IsActive(now) {
			return false
		}
		for _, id := range b.Identifiers {
			if _, ok := want[id]; ok {
				return true
			}
		}
		return false
	})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (m *MockBanRepository) CountActive(ctx context.Context, licenseKey string, now time.Time) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.newestFirst(licenseKey, func(b *ban.Ban) bool { return b.IsActive(now) }))), nil
}

func (m *MockBanRepository) SetEvidenceURL(ctx context.Context, banID, url string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bans[banID]
	if !ok {
		return false, nil
	}
	u := url
	b.EvidenceURL = &u
	return true, nil
}

func (m *MockBanRepository) SetExpiry(ctx context.Context, banID string, expiresAt time.Time) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bans[banID]
	if !ok {
		return false, nil
	}
	t := expiresAt
	b.ExpiresAt = &t
	return true, nil
}

// MockStatusMirror is an in-memory agent.StatusMirror.
type MockStatusMirror struct {
	mu   sync.Mutex
	rows map[string]agent.LivenessRecord

	Err     error
	Upserts int
}

func NewMockStatusMirror() *MockStatusMirror {
	return &MockStatusMirror{rows: make(map[string]agent.LivenessRecord)}
}

func (m *MockStatusMirror) Upsert(ctx context.Context, licenseKey string, rec agent.LivenessRecord, online bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upserts++
	if m.Err != nil {
		return m.Err
	}
	if cur, ok := m.rows[licenseKey]; ok && cur.LastSeenAt.After(rec.LastSeenAt) {
		return nil
	}
	m.rows[licenseKey] = rec
	return nil
}

func (m *MockStatusMirror) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, rec := range m.rows {
		if rec.LastSeenAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

// Row returns the mirrored record for licenseKey.
func (m *MockStatusMirror) Row(licenseKey string) (agent.LivenessRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[licenseKey]
	return rec, ok
}

// MockLogRepository is an in-memory agent.LogRepository. Events are kept
// newest first per tenant.
type MockLogRepository struct {
	mu     sync.Mutex
	events map[string][]*agent.LogEvent

	InsertErr error
	ListErr   error
}

func NewMockLogRepository() *MockLogRepository {
	return &MockLogRepository{events: make(map[string][]*agent.LogEvent)}
}

func (m *MockLogRepository) Insert(ctx context.Context, licenseKey string, e *agent.LogEvent) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *e
	m.events[licenseKey] = append([]*agent.LogEvent{&c}, m.events[licenseKey]...)
	return nil
}

func (m *MockLogRepository) ListRecent(ctx context.Context, licenseKey string, limit int) ([]*agent.LogEvent, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.events[licenseKey]
	if len(events) > limit {
		events = events[:limit]
	}
	return append([]*agent.LogEvent{}, events...), nil
}

func (m *MockLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key, events := range m.events {
		kept := events[:0]
		for _, e := range events {
			if e.Time.Before(cutoff) {
				n++
				continue
			}
			kept = append(kept, e)
		}
		m.events[key] = kept
	}
	return n, nil
}

// Count returns how many events are stored for licenseKey.
func (m *MockLogRepository) Count(licenseKey string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events[licenseKey])
}

// MockSettingsRepository is an in-memory agent.SettingsRepository.
type MockSettingsRepository struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage

	Err error
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{docs: make(map[string]json.RawMessage)}
}

func (m *MockSettingsRepository) Get(ctx context.Context, licenseKey string) (json.RawMessage, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[licenseKey]
	if !ok {
		return nil, nil
	}
	return append(json.RawMessage{}, doc...), nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, licenseKey string, doc json.RawMessage) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[licenseKey] = append(json.RawMessage{}, doc...)
	return nil
}

// MockBlobStore records uploads in memory.
type MockBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	UploadErr error
	URLErr    error
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{objects: make(map[string][]byte)}
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+objectPath] = append([]byte{}, data...)
	return nil
}

func (m *MockBlobStore) PublicURL(bucket, objectPath string) (string, error) {
	if m.URLErr != nil {
		return "", m.URLErr
	}
	return "https://cdn.test/" + bucket + "/" + objectPath, nil
}

// Objects returns the stored object keys in sorted order.
func (m *MockBlobStore) Objects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Object returns the bytes stored under bucket/path.
func (m *MockBlobStore) Object(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key]
}

// MockLogger records log calls.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

func NewMockLogger() *MockLogger {
	return &MockLogger{entries: make([]LogEntry, 0)}
}

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args...) }

func (m *MockLogger) With(args ...any) logger.Interface { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	m.log("DEBUG", msg, keysAndValues...)
}

func (m *MockLogger) Infow(msg string, keysAndValues ...interface{}) {
	m.log("INFO", msg, keysAndValues...)
}

func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.log("WARN", msg, keysAndValues...)
}

func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	m.log("ERROR", msg, keysAndValues...)
}

func (m *MockLogger) log(level, msg string, fields ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  make(map[string]interface{}),
	}
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			entry.Fields[key] = fields[i+1]
		}
	}
	m.entries = append(m.entries, entry)
}

// GetEntries returns all logged entries.
func (m *MockLogger) GetEntries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), m.entries...)
}

// CountLevel returns how many entries were logged at level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// PassthroughTx runs fn directly with ctx.
type PassthroughTx struct {
	Calls int
}

func (p *PassthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.Calls++
	return fn(ctx)
}
