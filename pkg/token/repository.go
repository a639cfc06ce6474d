package token

import (
	"fmt"

	"github.com/go-redis/redis"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(client *redis.Client) *redisRepository {
	return &redisRepository{client}
}

type redisRepository struct {
	client *redis.Client
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("sessions:%d", userID)
}

func (r redisRepository) AddSession(userID uint, tokenID string) error {
	return r.client.SAdd(sessionKey(userID), tokenID).Err()
}

func (r redisRepository) RemoveSession(userID uint, tokenID string) error {
	return r.client.SRem(sessionKey(userID), tokenID).Err()
}

func (r redisRepository) ClearSessions(userID uint) error {
	return r.client.Del(sessionKey(userID)).Err()
}

func (r redisRepository) HasSession(userID uint, tokenID string) (bool, error) {
	return r.client.SIsMember(sessionKey(userID), tokenID).Result()
}
