package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joshua-takyi/celebration/internal/models"
)

// CrudService serves list/get/create/update/delete for one entity type.
type CrudService[T any, P models.DocPtr[T]] struct {
	repo models.Repo[T]
	spec models.Collection[T]
}

func NewCrudService[T any, P models.DocPtr[T]](repo models.Repo[T], spec models.Collection[T]) *CrudService[T, P] {
	return &CrudService[T, P]{repo: repo, spec: spec}
}

// Name is the singular entity name used in messages.
func (s *CrudService[T, P]) Name() string {
	return s.spec.Singular
}

func (s *CrudService[T, P]) List(ctx context.Context) ([]T, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.spec.Name, err)
	}
	return docs, nil
}

func (s *CrudService[T, P]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.Get(ctx, id)
}

func (s *CrudService[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	*P(doc).DocBase() = models.Base{}
	if err := models.ValidateDocument(doc); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update merges the JSON object patch into the stored document. Fields absent from the
// patch keep their values; id and timestamps cannot be changed.
func (s *CrudService[T, P]) Update(ctx context.Context, id string, patch []byte) (*T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil || fields == nil {
		return nil, models.NewValidationError("body", "request body must be a JSON object")
	}
	delete(fields, "id")
	delete(fields, "_id")
	delete(fields, "createdAt")
	delete(fields, "updatedAt")

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	keep := *P(existing).DocBase()

	cleaned, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode patch: %w", err)
	}
	if err := json.Unmarshal(cleaned, existing); err != nil {
		return nil, models.NewValidationError("body", err.Error())
	}
	*P(existing).DocBase() = keep

	if err := models.ValidateDocument(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, id, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CrudService[T, P]) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Import validates every item before writing any of them. With replace set the
// collection is emptied first; otherwise items are appended.
func (s *CrudService[T, P]) Import(ctx context.Context, items []T, replace bool) (int, error) {
	verr := &models.ValidationError{}
	for i := range items {
		*P(&items[i]).DocBase() = models.Base{}
		if err := models.ValidateDocument(&items[i]); err != nil {
			var fe *models.ValidationError
			if !errors.As(err, &fe) {
				return 0, err
			}
			for _, f := range fe.Fields {
				verr.Fields = append(verr.Fields, models.FieldError{
					Field:   fmt.Sprintf("items[%d].%s", i, f.Field),
					Message: f.Message,
				})
			}
		}
	}
	if len(verr.Fields) > 0 {
		return 0, verr
	}

	if replace {
		if err := s.repo.ReplaceAll(ctx, items); err != nil {
			return 0, fmt.Errorf("failed to replace %s: %w", s.spec.Name, err)
		}
		return len(items), nil
	}
	for i := range items {
		if err := s.repo.Insert(ctx, &items[i]); err != nil {
			return i, fmt.Errorf("failed to import %s %d: %w", s.spec.Singular, i, err)
		}
	}
	return len(items), nil
}
