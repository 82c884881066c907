package redis

import (
	"context"

	"github.com/kailas-cloud/plagcheck/internal/db"
)

// ZAdd adds member with score to a sorted set.
func (s *Store) ZAdd(ctx context.Context, key string, score float64, member string) error {
	cmd := s.b().Zadd().Key(key).ScoreMember().ScoreMember(score, member).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}

// ZRange returns all members in ascending score order.
func (s *Store) ZRange(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Zrange().Key(key).Min("0").Max("-1").Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return members, nil
}

// ZRem removes member. Returns false if it was not present.
func (s *Store) ZRem(ctx context.Context, key, member string) (bool, error) {
	cmd := s.b().Zrem().Key(key).Member(member).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpZRem, Err: err}
	}
	return n > 0, nil
}

// ZCard returns the number of members.
func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	cmd := s.b().Zcard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpZCard, Err: err}
	}
	return n, nil
}

// HSetZAdd pipelines HSET key and ZADD zkey member in a single DoMulti round-trip.
// The hash is written first, so a reader that sees the index member finds the record.
func (s *Store) HSetZAdd(
	ctx context.Context, key string, fields map[string]string, zkey string, score float64, member string,
) error {
	results := s.client.DoMulti(ctx,
		s.hsetCmd(key, fields),
		s.b().Zadd().Key(zkey).ScoreMember().ScoreMember(score, member).Build(),
	)
	if err := results[0].Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	if err := results[1].Error(); err != nil {
		return &db.Error{Op: db.OpZAdd, Err: err}
	}
	return nil
}
