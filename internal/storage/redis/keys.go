package redis

import "fmt"

const defaultKeyPrefix = "beaverfarm"

// userKey returns the Redis key for a user record
func (s *Storage) userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", s.prefix(), username)
}

func (s *Storage) prefix() string {
	if s.cfg.KeyPrefix == "" {
		return defaultKeyPrefix
	}
	return s.cfg.KeyPrefix
}
