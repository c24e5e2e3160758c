package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service"
)

const (
	maxImageSize       = 5 << 20
	imageUploadTimeout = 30 * time.Second
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

type AdminItemsHandler struct {
	catalog CatalogServicer
}

func NewAdminItemsHandler(catalog CatalogServicer) *AdminItemsHandler {
	return &AdminItemsHandler{catalog: catalog}
}

// ItemParams.StockUnlimited and ItemParams.IsActive default to true.
type ItemParams struct {
	Name           string             `binding:"required,max=128"                         json:"name"`
	Description    string             `binding:"max_bytes=4000"                           json:"description"`
	Price          int64              `binding:"required,gt=0"                            json:"price"`
	Category       string             `binding:"required,oneof=weapon item vehicle money" json:"category"`
	Classname      string             `binding:"required,classname"                       json:"classname"`
	Attachments    domain.Attachments `json:"attachments"`
	SortOrder      int                `json:"sort_order"`
	StockUnlimited *bool              `json:"stock_unlimited"`
	StockQuantity  int64              `binding:"min=0"                                    json:"stock_quantity"`
	IsActive       *bool              `json:"is_active"`
}

func (p ItemParams) toArgs() service.ItemArgs {
	args := service.ItemArgs{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Category:       domain.ItemCategory(p.Category),
		Classname:      p.Classname,
		Attachments:    p.Attachments,
		SortOrder:      p.SortOrder,
		StockUnlimited: true,
		StockQuantity:  p.StockQuantity,
		IsActive:       true,
	}
	if p.StockUnlimited != nil {
		args.StockUnlimited = *p.StockUnlimited
	}
	if p.IsActive != nil {
		args.IsActive = *p.IsActive
	}
	return args
}

// Index GET AdminGroup + AdminItemsRoute. Lists inactive items too.
func (h *AdminItemsHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	items, err := h.catalog.ListItems(ctx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": newItemsResponse(items)})
}

// Create POST AdminGroup + AdminItemsRoute.
func (h *AdminItemsHandler) Create(c *gin.Context) {
	var params ItemParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	item, err := h.catalog.CreateItem(ctx, params.toArgs())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newItemResponse(item))
}

// Update PUT AdminGroup + AdminItemRoute.
func (h *AdminItemsHandler) Update(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var params ItemParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	item, err := h.catalog.UpdateItem(ctx, itemID, params.toArgs())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newItemResponse(item))
}

type ItemActiveParams struct {
	Active *bool `binding:"required" json:"active"`
}

// SetActive PATCH AdminGroup + AdminItemActiveRoute. Deactivation is the soft delete of an item.
func (h *AdminItemsHandler) SetActive(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var params ItemActiveParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.catalog.SetItemActive(ctx, itemID, *params.Active); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": itemID, "active": *params.Active})
}

// UploadImage POST AdminGroup + AdminItemImageRoute. Expects a multipart form with an image field.
func (h *AdminItemsHandler) UploadImage(c *gin.Context) {
	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize+1<<20)
	fileHeader, err := c.FormFile("image")
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errors.New("image file is required")).SetType(gin.ErrorTypePublic)
		return
	}
	if fileHeader.Size > maxImageSize {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("image is too large")).
			SetType(gin.ErrorTypePublic)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("unsupported image type")).
			SetType(gin.ErrorTypePublic)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(c, imageUploadTimeout)
	defer cancel()

	url, err := h.catalog.AttachImage(ctx, itemID, fileHeader.Filename, contentType, file)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": itemID, "image_url": url})
}
