package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// defaultProductTTL bounds staleness of cached catalog snapshots.
// Availability numbers are refreshed from upstream feeds, so a short
// TTL keeps validation close to the source of truth.
const defaultProductTTL = 60 * time.Second

// CachedProductRepository is a read-through Redis cache in front of a
// ProductRepository. Only the by-code lookups used on the draft and
// submission hot path are cached; everything else passes through.
// Redis failures degrade to the inner repository, never to the caller.
type CachedProductRepository struct {
	inner  catalog.ProductRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// CachedProductRepositoryOption is a functional option for configuring the cache
type CachedProductRepositoryOption func(*CachedProductRepository)

// WithProductTTL sets the cache entry lifetime
func WithProductTTL(ttl time.Duration) CachedProductRepositoryOption {
	return func(c *CachedProductRepository) {
		c.ttl = ttl
	}
}

// WithProductCacheLogger sets the logger for the cache
func WithProductCacheLogger(logger *zap.Logger) CachedProductRepositoryOption {
	return func(c *CachedProductRepository) {
		c.logger = logger
	}
}

// NewCachedProductRepository wraps a product repository with a Redis cache
func NewCachedProductRepository(inner catalog.ProductRepository, client *redis.Client, opts ...CachedProductRepositoryOption) *CachedProductRepository {
	cache := &CachedProductRepository{
		inner:  inner,
		client: client,
		ttl:    defaultProductTTL,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// productCacheKey generates the cache key for a product code
func (c *CachedProductRepository) productCacheKey(code string) string {
	return fmt.Sprintf("product:code:%s", strings.ToUpper(code))
}

// FindByID finds a product by its ID
func (c *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return c.inner.FindByID(ctx, id)
}

// FindByCode finds a product by its code, consulting the cache first
func (c *CachedProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	if cached := c.get(ctx, code); cached != nil {
		return cached, nil
	}

	product, err := c.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	c.set(ctx, product)
	return product, nil
}

// FindByCodes finds multiple products by their codes. Cached entries
// are served from Redis; the remainder is fetched in one batch and
// cached for the next call.
func (c *CachedProductRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	if len(codes) == 0 {
		return []catalog.Product{}, nil
	}

	products := make([]catalog.Product, 0, len(codes))
	missing := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))

	for _, code := range codes {
		upper := strings.ToUpper(code)
		if seen[upper] {
			continue
		}
		seen[upper] = true

		if cached := c.get(ctx, upper); cached != nil {
			products = append(products, *cached)
		} else {
			missing = append(missing, upper)
		}
	}

	if len(missing) > 0 {
		fetched, err := c.inner.FindByCodes(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i := range fetched {
			c.set(ctx, &fetched[i])
		}
		products = append(products, fetched...)
	}

	return products, nil
}

// FindAll finds all products matching the filter
func (c *CachedProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return c.inner.FindAll(ctx, filter)
}

// FindActive finds all active products
func (c *CachedProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return c.inner.FindActive(ctx, filter)
}

// Save persists the product and invalidates its cache entry
func (c *CachedProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := c.inner.Save(ctx, product); err != nil {
		return err
	}

	if err := c.client.Del(ctx, c.productCacheKey(product.Code)).Err(); err != nil {
		c.logger.Warn("failed to invalidate product cache entry",
			zap.String("code", product.Code),
			zap.Error(err),
		)
	}
	return nil
}

// Count counts products matching the filter
func (c *CachedProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return c.inner.Count(ctx, filter)
}

// ExistsByCode checks if a product with the given code exists
func (c *CachedProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	if cached := c.get(ctx, code); cached != nil {
		return true, nil
	}
	return c.inner.ExistsByCode(ctx, code)
}

// get reads a product from the cache; nil means miss or degraded Redis
func (c *CachedProductRepository) get(ctx context.Context, code string) *catalog.Product {
	key := c.productCacheKey(code)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		c.logger.Warn("product cache read failed", zap.String("code", code), zap.Error(err))
		return nil
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("corrupt product cache entry, dropping", zap.String("code", code), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil
	}
	return &product
}

// set writes a product to the cache, logging but swallowing failures
func (c *CachedProductRepository) set(ctx context.Context, product *catalog.Product) {
	if product == nil {
		return
	}

	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("failed to marshal product for cache", zap.String("code", product.Code), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.productCacheKey(product.Code), data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.String("code", product.Code), zap.Error(err))
	}
}

// Ensure CachedProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*CachedProductRepository)(nil)
