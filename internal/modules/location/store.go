// README: Postcode cache backed by Redis.
package location

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const postcodeKeyPrefix = "postcode:%s"

// Store persists geocoded postcodes. Entries are written without expiry:
// a postcode's geography does not change, and unresolvable postcodes are
// stored as empty PostcodeInfo values so they are not re-fetched.
type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) Get(ctx context.Context, postcode string) (*PostcodeInfo, bool, error) {
	val, err := s.redis.Get(ctx, postcodeKey(postcode)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var info PostcodeInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		return nil, false, err
	}
	return &info, true, nil
}

func (s *Store) Put(ctx context.Context, postcode string, info *PostcodeInfo) error {
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, postcodeKey(postcode), b, 0).Err()
}

// PutMany writes a batch of geocoding results in one round trip.
func (s *Store) PutMany(ctx context.Context, infos map[string]*PostcodeInfo) error {
	if len(infos) == 0 {
		return nil
	}
	pipe := s.redis.Pipeline()
	for pc, info := range infos {
		b, err := json.Marshal(info)
		if err != nil {
			return err
		}
		pipe.Set(ctx, postcodeKey(pc), b, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func postcodeKey(postcode string) string {
	return fmt.Sprintf(postcodeKeyPrefix, Normalize(postcode))
}
