package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be positive (got %v)", c.Auth.AccessTokenTTL)
	}

	if c.Storage.BasePath == "" {
		return fmt.Errorf("storage.base_path must not be empty")
	}

	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("storage.max_upload_size must be positive (got %d)", c.Storage.MaxUploadSize)
	}

	if c.Storage.ThumbnailSize <= 0 {
		return fmt.Errorf("storage.thumbnail_size must be positive (got %d)", c.Storage.ThumbnailSize)
	}

	if c.Items.HardDeleteRetentionDays < 0 {
		return fmt.Errorf("items.hard_delete_retention_days must be >= 0 (got %d)", c.Items.HardDeleteRetentionDays)
	}

	return nil
}
