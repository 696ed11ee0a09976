package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/helpers"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/services"
)

const maxJSONBody = 1 << 20

func entityTitle(s interface{ Name() string }) string {
	name := s.Name()
	if name == "" {
		return "Document"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func ListDocuments[T any, P models.DocPtr[T]](s *services.CrudService[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := s.List(c.Request.Context())
		if err != nil {
			respondError(c, err, entityTitle(s))
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

func GetDocument[T any, P models.DocPtr[T]](s *services.CrudService[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := s.Get(c.Request.Context(), helpers.StringTrim(c.Param("id")))
		if err != nil {
			respondError(c, err, entityTitle(s))
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func CreateDocument[T any, P models.DocPtr[T]](s *services.CrudService[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc T
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody)
		if err := c.ShouldBindJSON(&doc); err != nil {
			badRequest(c, "Invalid JSON body: "+err.Error())
			return
		}
		created, err := s.Create(c.Request.Context(), &doc)
		if err != nil {
			respondError(c, err, entityTitle(s))
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateDocument merges the JSON body into the stored document.
func UpdateDocument[T any, P models.DocPtr[T]](s *services.CrudService[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				respondError(c, err, entityTitle(s))
				return
			}
			badRequest(c, "Could not read request body")
			return
		}
		updated, err := s.Update(c.Request.Context(), helpers.StringTrim(c.Param("id")), body)
		if err != nil {
			respondError(c, err, entityTitle(s))
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteDocument[T any, P models.DocPtr[T]](s *services.CrudService[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := helpers.StringTrim(c.Param("id"))
		if err := s.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err, entityTitle(s))
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: entityTitle(s) + " deleted", ID: id})
	}
}

type importRequest[T any] struct {
	Replace bool `json:"replace"`
	Items   []T  `json:"items" binding:"required"`
}

// ImportDocuments accepts {"replace": bool, "items": [...]} from the sheet sync job.
func ImportDocuments[T any, P models.DocPtr[T]](s *services.CrudService[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importRequest[T]
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 8*maxJSONBody)
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid import body: "+err.Error())
			return
		}
		n, err := s.Import(c.Request.Context(), req.Items, req.Replace)
		if err != nil {
			respondError(c, err, entityTitle(s))
			return
		}
		c.JSON(http.StatusOK, gin.H{"imported": n, "replace": req.Replace})
	}
}
