package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "vendora"
	defaultJWTSecret = "change-me-in-production"
	defaultAppPort   = "8080"
	defaultAppEnv    = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Later calls return the first result.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":      defaultMongoURI,
		"MONGO_DB":       defaultMongoDB,
		"JWT_SECRET":     defaultJWTSecret,
		"JWT_ISSUER":     "vendora",
		"JWT_AUDIENCE":   "vendora-api",
		"APP_PORT":       defaultAppPort,
		"APP_ENV":        defaultAppEnv,
		"STORAGE_DRIVER": "local",
	}
}

// ── App ──────────────────────────────────────────────────────────────────────

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// ── Mongo ────────────────────────────────────────────────────────────────────

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDatabase() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

// LogMongoURI is the optional MongoDB endpoint for the async log sink.
// Empty disables the sink.
func LogMongoURI() string { _ = Load(); return get("LOG_MONGO_URI", "") }
func LogMongoDB() string  { _ = Load(); return get("LOG_MONGO_DB", MongoDatabase()) }

// ── JWT ──────────────────────────────────────────────────────────────────────

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func JWTIssuer() string   { _ = Load(); return get("JWT_ISSUER", "vendora") }
func JWTAudience() string { _ = Load(); return get("JWT_AUDIENCE", "vendora-api") }

// ── Storage ──────────────────────────────────────────────────────────────────

// StorageDriver selects the image storage backend: "local" or "r2".
func StorageDriver() string {
	_ = Load()
	return strings.ToLower(get("STORAGE_DRIVER", "local"))
}

func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", "storage") }
func StorageLocalURL() string {
	_ = Load()
	return get("STORAGE_URL", "http://localhost:"+AppPort()+"/storage")
}

func R2AccountID() string { _ = Load(); return get("R2_ACCOUNT_ID", "") }
func R2AccessKey() string { _ = Load(); return get("R2_ACCESS_KEY_ID", "") }
func R2Secret() string    { _ = Load(); return get("R2_SECRET_ACCESS_KEY", "") }
func R2Bucket() string    { _ = Load(); return get("R2_BUCKET", "") }
func R2PublicURL() string { _ = Load(); return get("R2_PUBLIC_URL", "") }

// ── Admin seed ───────────────────────────────────────────────────────────────

func AdminSeedEmail() string    { _ = Load(); return get("ADMIN_EMAIL", "") }
func AdminSeedUsername() string { _ = Load(); return get("ADMIN_USERNAME", "") }
func AdminSeedPassword() string { _ = Load(); return get("ADMIN_PASSWORD", "") }

// ── File loading ─────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
