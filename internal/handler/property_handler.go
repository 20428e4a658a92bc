package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/service"
	"aimrealty.com/estateapi/pkg/apperror"
	"aimrealty.com/estateapi/pkg/response"
	"aimrealty.com/estateapi/pkg/storage"
	"aimrealty.com/estateapi/pkg/validator"
)

type PropertyHandler struct {
	propertyService service.PropertyService
	imageStorage    storage.ImageStorage
}

func NewPropertyHandler(propertyService service.PropertyService, imageStorage storage.ImageStorage) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		imageStorage:    imageStorage,
	}
}

func (h *PropertyHandler) List(c *gin.Context) {
	var filter dto.PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get resolves the path parameter as a UUID first and falls back to a
// slug lookup, so both /properties/:id and /properties/my-villa work.
func (h *PropertyHandler) Get(c *gin.Context) {
	key := c.Param("id")

	if id, err := uuid.Parse(key); err == nil {
		property, err := h.propertyService.GetByID(c.Request.Context(), id)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, property)
		return
	}

	property, err := h.propertyService.GetBySlug(c.Request.Context(), key)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	var input dto.UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}

func (h *PropertyHandler) UploadImage(c *gin.Context) {
	if h.imageStorage == nil {
		response.ResponseError(c, apperror.ErrInternal)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property id"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	sortOrder, _ := strconv.Atoi(c.PostForm("sort_order"))

	url, err := h.imageStorage.UploadImage(c.Request.Context(), file, "properties", fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.propertyService.AttachImage(c.Request.Context(), id, url, sortOrder); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
