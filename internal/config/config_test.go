package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL", "DB_DRIVER", "DATABASE_URL",
		"MONGODB_URI", "MONGODB_PASSWORD", "MONGODB_DATABASE", "JWT_SECRET",
		"JWKS_URL", "APP_URL", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY",
		"CLOUDINARY_API_SECRET", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/meetapp")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "meetapp", cfg.MongoDBDatabase)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.HasCloudinary())
}

func TestLoadConfig_Mongo(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "Mongo")
	t.Setenv("MONGODB_URI", "mongodb+srv://app:<password>@cluster.example.net")
	t.Setenv("JWKS_URL", "https://auth.example.com/.well-known/jwks.json")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("MONGODB_PASSWORD", "pw")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown driver", Config{DBDriver: "mysql", DatabaseURL: "x", JWTSecret: "s"}},
		{"sqlite without url", Config{DBDriver: DriverSQLite, JWTSecret: "s"}},
		{"mongo without uri", Config{DBDriver: DriverMongo, JWTSecret: "s"}},
		{"no token settings", Config{DBDriver: DriverSQLite, DatabaseURL: "file.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}

	ok := Config{DBDriver: DriverSQLite, DatabaseURL: "file.db", JWTSecret: "s"}
	assert.NoError(t, ok.Validate())
}
