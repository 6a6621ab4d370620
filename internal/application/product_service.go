package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
)

var ErrProductNotFound = errors.New("product not found")

const productCacheTTL = 5 * time.Minute

func productKey(id string) string {
	return "product:" + id
}

// ProductService orchestrates catalog CRUD around the product store, with a
// redis read cache, GCS image uploads, an ES search index maintained through
// the event queue, and best-effort event publishing.
type ProductService struct {
	Repo      repo.ProductRepository
	Redis     *redis.Client
	Logger    *logrus.Logger
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	EventPub  *helpers.RabbitPublisher
}

func NewProductService(r repo.ProductRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, eventPub *helpers.RabbitPublisher) *ProductService {
	return &ProductService{
		Repo:      r,
		Redis:     rdb,
		Logger:    logger,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		EventPub:  eventPub,
	}
}

// ImageUpload carries an optional multipart image for create/update.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	Rating      float64
	UserID      string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Rating      *float64
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput, img *ImageUpload) (*entity.Product, error) {
	p := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Rating:      in.Rating,
		UserID:      in.UserID,
	}

	if img != nil {
		url, err := s.uploadImage(ctx, img)
		if err != nil {
			return nil, err
		}
		p.ImageURL = url
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, EventProductCreated, p)
	return p, nil
}

// Get serves reads through the redis cache. Cache failures degrade to the
// store; they are logged, never surfaced.
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	if s.Redis != nil {
		var cached entity.Product
		found, err := helpers.RedisGetJSON(ctx, s.Redis, productKey(id), &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("product cache read failed")
		}
		if found {
			return &cached, nil
		}
	}

	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, productKey(id), p, productCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("product cache write failed")
		}
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, opts repo.ListOptions) ([]*entity.Product, error) {
	return s.Repo.List(ctx, opts)
}

func (s *ProductService) Filter(ctx context.Context, opts repo.FilterOptions) ([]*entity.Product, error) {
	return s.Repo.Filter(ctx, opts)
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput, img *ImageUpload) (*entity.Product, error) {
	upd := repo.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Rating:      in.Rating,
	}
	if img != nil {
		url, err := s.uploadImage(ctx, img)
		if err != nil {
			return nil, err
		}
		upd.ImageURL = &url
	}

	p, err := s.Repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, id)
	s.publishEvent(ctx, EventProductUpdated, p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.invalidate(ctx, id)

	if s.EventPub != nil {
		ev := CatalogEvent{
			ID:         uuid.NewString(),
			Type:       EventProductDeleted,
			ProductID:  id,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.EventPub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("publish catalog event failed")
		}
	}
	return nil
}

// Search performs a multi_match query against the products index.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ProductService) uploadImage(ctx context.Context, img *ImageUpload) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	objectPath := filepath.ToSlash(filepath.Join("products", uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, img.ContentType, img.Reader)
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, productKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", id).Warn("product cache invalidate failed")
	}
}

func (s *ProductService) publishEvent(ctx context.Context, eventType string, p *entity.Product) {
	if s.EventPub == nil {
		return
	}
	ev := CatalogEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ProductID:  p.ID,
		OccurredAt: time.Now().UTC(),
		Product:    NewProductDoc(p),
	}
	if err := s.EventPub.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", p.ID).Warn("publish catalog event failed")
	}
}
