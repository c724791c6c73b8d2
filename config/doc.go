// Package config resolves process configuration for securekit.
//
// Values come from an optional config.yml (read with Viper), an optional
// .env file (loaded with godotenv) and the process environment, in that
// order of increasing precedence. Environment names map onto nested keys:
// JWT_SECRET fills jwt.secret, ENCRYPTION_KEY fills encryption.key and
// DATABASE_URL fills database.url. Only keys the target struct declares are
// bound, so unrelated variables like DATABASE_URL_REPLICA never interfere.
//
// # Usage
//
//	var cfg AppConfig
//	if err := config.Load("securekit", &cfg); err != nil {
//	    return err
//	}
package config
