package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okisetiawan/go-product-catalog/internal/application"
	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
	"github.com/okisetiawan/go-product-catalog/internal/interface/middleware"
	"github.com/okisetiawan/go-product-catalog/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	UserID      string    `json:"user_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *entity.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		UserID:      p.UserID,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(ps []*entity.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResponse(p))
	}
	return out
}

// imageFromForm turns an optional multipart file into an upload descriptor.
// The returned close func must be called after the service finishes.
func imageFromForm(c *gin.Context) (*application.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &application.ImageUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, func() { _ = f.Close() }, nil
}

// Create POST /api/products (admin)
// Accepts multipart form fields plus an optional image file.
func (h *ProductHandler) Create(c *gin.Context) {
	details := map[string]string{}
	name := c.PostForm("name")
	if name == "" {
		details["name"] = "is required"
	}
	category := c.PostForm("category")
	if category == "" {
		details["category"] = "is required"
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		details["price"] = "must be a non-negative number"
	}
	rating := 0.0
	if v := c.PostForm("rating"); v != "" {
		rating, err = strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 5 {
			details["rating"] = "must be a number between 0 and 5"
		}
	}
	if len(details) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	img, closeImg, err := imageFromForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid image", nil)
		return
	}
	defer closeImg()

	in := application.CreateProductInput{
		Name:        name,
		Description: c.PostForm("description"),
		Category:    category,
		Price:       price,
		Rating:      rating,
		UserID:      c.GetString(middleware.CtxUserIDKey),
	}

	p, err := h.Svc.Create(c.Request.Context(), in, img)
	if err != nil {
		h.Logger.WithError(err).Error("create product failed")
		response.Error[any](c, http.StatusInternalServerError, "create product failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, toProductResponse(p), "product created", nil)
}

// List GET /api/products?page=&limit=&sort_by=&sort_order=
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	opts := repo.ListOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
	}

	ps, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		h.Logger.WithError(err).Error("list products failed")
		response.Error[any](c, http.StatusInternalServerError, "list products failed", nil)
		return
	}

	response.Success(c, http.StatusOK, toProductResponses(ps), "products",
		map[string]any{"page": opts.Page, "limit": opts.Limit})
}

// Filter GET /api/products/filter?category=&price_min=&price_max=&rating=
func (h *ProductHandler) Filter(c *gin.Context) {
	opts := repo.FilterOptions{Category: c.Query("category")}

	parse := func(name string) (*float64, bool) {
		v := c.Query(name)
		if v == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		return &f, true
	}

	var ok bool
	if opts.PriceMin, ok = parse("price_min"); !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"price_min": "must be a number"})
		return
	}
	if opts.PriceMax, ok = parse("price_max"); !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"price_max": "must be a number"})
		return
	}
	if opts.RatingMin, ok = parse("rating"); !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"rating": "must be a number"})
		return
	}

	ps, err := h.Svc.Filter(c.Request.Context(), opts)
	if err != nil {
		h.Logger.WithError(err).Error("filter products failed")
		response.Error[any](c, http.StatusInternalServerError, "filter products failed", nil)
		return
	}

	response.Success(c, http.StatusOK, toProductResponses(ps), "products", nil)
}

// Search GET /api/products/search?q=&size=
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("search products failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}

	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"query": q})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get product failed")
		response.Error[any](c, http.StatusInternalServerError, "get product failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductResponse(p), "product", nil)
}

// Update PUT /api/products/:id (admin)
// Multipart form; only present fields are changed.
func (h *ProductHandler) Update(c *gin.Context) {
	var in application.UpdateProductInput
	details := map[string]string{}

	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		in.Category = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			details["price"] = "must be a non-negative number"
		} else {
			in.Price = &f
		}
	}
	if v, ok := c.GetPostForm("rating"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			details["rating"] = "must be a number between 0 and 5"
		} else {
			in.Rating = &f
		}
	}
	if len(details) > 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	img, closeImg, err := imageFromForm(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid image", nil)
		return
	}
	defer closeImg()

	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in, img)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update product failed")
		response.Error[any](c, http.StatusInternalServerError, "update product failed", nil)
		return
	}

	response.Success(c, http.StatusOK, toProductResponse(p), "product updated", nil)
}

// Delete DELETE /api/products/:id (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete product failed")
		response.Error[any](c, http.StatusInternalServerError, "delete product failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "product deleted", nil)
}
