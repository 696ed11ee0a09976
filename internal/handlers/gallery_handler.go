package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/helpers"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/services"
)

const (
	imageField = "image"
	// multipartOverhead covers boundaries and text fields on top of the file itself.
	multipartOverhead = 64 << 10
)

func ListGallery(g *services.GalleryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		images, err := g.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "Image")
			return
		}
		c.JSON(http.StatusOK, images)
	}
}

func GetGalleryImage(g *services.GalleryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		img, err := g.Get(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			respondError(c, err, "Image")
			return
		}
		c.JSON(http.StatusOK, img)
	}
}

// UploadGalleryImage takes a multipart form with exactly one "image" file and optional
// "title" and "description" (or "caption") fields.
func UploadGalleryImage(g *services.GalleryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, g.MaxBytes()+multipartOverhead)
		if err := c.Request.ParseMultipartForm(g.MaxBytes() + multipartOverhead); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				respondError(c, services.ErrPayloadTooLarge, "Image")
				return
			}
			badRequest(c, "Expected a multipart/form-data body")
			return
		}

		files := c.Request.MultipartForm.File[imageField]
		if len(files) == 0 {
			respondError(c, services.ErrMissingFile, "Image")
			return
		}
		if len(files) > 1 {
			badRequest(c, fmt.Sprintf("Exactly one %q file is allowed", imageField))
			return
		}
		fh := files[0]
		if fh.Size > g.MaxBytes() {
			respondError(c, services.ErrPayloadTooLarge, "Image")
			return
		}
		data, err := readUpload(fh, g.MaxBytes())
		if err != nil {
			respondError(c, err, "Image")
			return
		}

		description := c.PostForm("description")
		if description == "" {
			description = c.PostForm("caption")
		}
		img, err := g.Upload(c.Request.Context(), services.UploadInput{
			Data:         data,
			OriginalName: fh.Filename,
			DeclaredType: fh.Header.Get("Content-Type"),
			Title:        c.PostForm("title"),
			Description:  description,
		})
		if err != nil {
			respondError(c, err, "Image")
			return
		}
		c.JSON(http.StatusCreated, img)
	}
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, services.ErrPayloadTooLarge
	}
	return data, nil
}

func UpdateGalleryImage(g *services.GalleryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var details services.GalleryDetails
		if err := c.ShouldBindJSON(&details); err != nil {
			badRequest(c, "Invalid JSON body")
			return
		}
		img, err := g.UpdateDetails(c.Request.Context(), helpers.StringTrim(c.Param("id")), details)
		if err != nil {
			respondError(c, err, "Image")
			return
		}
		c.JSON(http.StatusOK, img)
	}
}

func DeleteGalleryImage(g *services.GalleryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))
		if err := g.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, "Image")
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Image deleted", ID: id})
	}
}
