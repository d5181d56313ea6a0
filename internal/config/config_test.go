package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakobMartens/inselbahn/internal/domain"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
user = "inselbahn"
password = "secret"
dbname = "inselbahn"

[tours]
hold_ttl_minutes = 10
booking_code_prefix = "IB"

[capacity.UNTERLAND]
online = 36
staffed = 45

[capacity.PREMIUM]
online = 16
staffed = 20
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Minute, cfg.Tours.HoldTTL())
	assert.Equal(t, 60*time.Second, cfg.Tours.ReapInterval())
	assert.Equal(t, CapacityConfig{Online: 36, Staffed: 45}, cfg.Capacity["UNTERLAND"])
	assert.Equal(t, "postgres", cfg.Locking.Backend)
	assert.Contains(t, cfg.Database.DSN(), "statement_timeout=5000")
}

func TestLoad_EnvOverridesPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestValidate_RejectsStaffedBelowOnline(t *testing.T) {
	_, err := Load(writeConfig(t, sampleConfig+`
[capacity.BROKEN]
online = 40
staffed = 30
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_RejectsUnknownLockBackend(t *testing.T) {
	_, err := Load(writeConfig(t, sampleConfig+`
[locking]
backend = "zookeeper"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestToursConfig_BookingWindow(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	w := cfg.Tours.BookingWindow()
	assert.Equal(t, time.Hour, w.MinNotice)
	assert.Equal(t, 7*24*time.Hour, w.MaxAdvance)
	assert.Equal(t, "Laufkundschaft", cfg.Tours.WalkInName)
}

func TestConfig_CapacityPolicy(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	policy, err := cfg.CapacityPolicy()
	require.NoError(t, err)

	staffed, err := policy.Capacity(domain.TourPremium, domain.ChannelStaffed)
	require.NoError(t, err)
	assert.Equal(t, 20, staffed)

	cfg.Capacity["FERRY"] = CapacityConfig{Online: 1, Staffed: 1}
	_, err = cfg.CapacityPolicy()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_RejectsIncompleteCapacityTable(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
http_port = 9090

[capacity.UNTERLAND]
online = 36
staffed = 45
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "capacity.PREMIUM")
}

func TestValidate_RedisLockTTL(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig+`
[locking]
backend = "redis"
`))
	require.NoError(t, err)
	assert.Greater(t, cfg.Locking.LockTTLMs, cfg.Database.StatementTimeoutMs)

	_, err = Load(writeConfig(t, sampleConfig+`
[locking]
backend = "redis"
lock_ttl_ms = 5000
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// Для postgres TTL не используется
	_, err = Load(writeConfig(t, sampleConfig+`
[locking]
backend = "postgres"
lock_ttl_ms = 100
`))
	assert.NoError(t, err)
}
