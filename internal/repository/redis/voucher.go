package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KeHamTruyen/SoCo-DATN-sub000/internal/domain"
	apperrors "github.com/KeHamTruyen/SoCo-DATN-sub000/pkg/errors"
)

const keyPrefix = "voucher:"

// VoucherRepository implements repository.VoucherRepository on Redis. The
// voucher table is shared platform state maintained by marketing tooling;
// this engine only reads it, plus a Seed step for the built-in codes.
type VoucherRepository struct {
	client *redis.Client
}

// NewVoucherRepository creates a Redis-backed voucher table.
func NewVoucherRepository(client *redis.Client) *VoucherRepository {
	return &VoucherRepository{client: client}
}

// GetByCode looks up a voucher by its normalized code.
func (r *VoucherRepository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	data, err := r.client.Get(ctx, keyPrefix+code).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("voucher", code)
		}
		return nil, fmt.Errorf("redis get voucher: %w", err)
	}

	var voucher domain.Voucher
	if err := json.Unmarshal(data, &voucher); err != nil {
		return nil, fmt.Errorf("unmarshal voucher: %w", err)
	}

	return &voucher, nil
}

// Seed installs vouchers into the table. Vouchers have no TTL; they are
// removed by the tooling that owns them.
func (r *VoucherRepository) Seed(ctx context.Context, vouchers []domain.Voucher) error {
	for _, v := range vouchers {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal voucher %s: %w", v.Code, err)
		}
		if err := r.client.Set(ctx, keyPrefix+v.Code, data, 0).Err(); err != nil {
			return fmt.Errorf("redis set voucher %s: %w", v.Code, err)
		}
	}
	return nil
}
