package resettokenrepository

import (
	"context"
	"encoding/json"
	"errors"
	c "fintrack/internal/core/domain/common"
	e "fintrack/internal/core/domain/errors"
	passwordreset "fintrack/internal/core/domain/password_reset"
	"time"

	"github.com/go-redis/redis/v9"
)

// All tokens of a namespace live in one hash, field = token.
const keySuffix = ":password_reset_tokens"

var takeScript = redis.NewScript(`
local v = redis.call("HGET", KEYS[1], ARGV[1])
if v then
	redis.call("HDEL", KEYS[1], ARGV[1])
end
return v
`)

type record struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expiresAt"`
}

func encode(rt passwordreset.ResetToken) ([]byte, error) {
	return json.Marshal(record{
		Token:     string(rt.Token),
		Email:     string(rt.Email),
		ExpiresAt: rt.ExpiresAt.UnixMilli(),
	})
}

func decode(data string) (rt passwordreset.ResetToken, err error) {
	var r record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return rt, err
	}
	return passwordreset.ResetToken{
		Token:     passwordreset.Token(r.Token),
		Email:     c.Email(r.Email),
		ExpiresAt: time.UnixMilli(r.ExpiresAt).UTC(),
	}, nil
}

type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(client *redis.Client, namespace string) *Redis {
	if client == nil {
		panic(e.NewNilArgumentError("client"))
	}
	return &Redis{client: client, key: namespace + keySuffix}
}

func (r *Redis) Create(ctx context.Context, token passwordreset.ResetToken) error {
	data, err := encode(token)
	if err != nil {
		return err
	}
	created, err := r.client.HSetNX(ctx, r.key, string(token.Token), data).Result()
	if err != nil {
		return err
	}
	if !created {
		return passwordreset.ErrTokenAlreadyExists
	}
	return nil
}

func (r *Redis) GetByToken(ctx context.Context, token passwordreset.Token) (rt passwordreset.ResetToken, err error) {
	data, err := r.client.HGet(ctx, r.key, string(token)).Result()
	if errors.Is(err, redis.Nil) {
		return rt, passwordreset.ErrTokenDoesNotExist
	}
	if err != nil {
		return rt, err
	}
	return decode(data)
}

func (r *Redis) Take(ctx context.Context, token passwordreset.Token) (rt passwordreset.ResetToken, err error) {
	data, err := takeScript.Run(ctx, r.client, []string{r.key}, string(token)).Text()
	if errors.Is(err, redis.Nil) {
		return rt, passwordreset.ErrTokenDoesNotExist
	}
	if err != nil {
		return rt, err
	}
	return decode(data)
}

// DeleteExpired also drops records that can no longer be decoded,
// they could never be verified anyway.
func (r *Redis) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return 0, err
	}

	fields := make([]string, 0)
	for field, data := range all {
		rt, err := decode(data)
		if err != nil || rt.IsExpired(before) {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return 0, nil
	}
	return r.client.HDel(ctx, r.key, fields...).Result()
}
