package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	entityProperty = "property"

	MaxPhotosPerUpload = 10
	MaxPhotoBytes      = 10 << 20
)

var allowedPhotoTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "webp": {},
}

// ErrStorageDisabled is returned for uploads when no bucket is configured.
var ErrStorageDisabled = errors.New("photo storage is not configured")

type PropertyService interface {
	Create(ctx context.Context, a *Access, in *transfer.PropertyInput) (*models.Property, error)
	Get(ctx context.Context, a *Access, id int64) (*models.Property, error)
	List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Property, error)
	Update(ctx context.Context, a *Access, id int64, in *transfer.PropertyInput) (*models.Property, error)
	Remove(ctx context.Context, a *Access, id int64) error
	AddPhotos(ctx context.Context, a *Access, id int64, files []*multipart.FileHeader) ([]models.PropertyPhoto, error)
}

type propertyService struct {
	db      *sql.DB
	pr      repository.PropertyRepository
	ph      repository.PropertyPhotoRepository
	storage ObjectStorage
	act     ActivityService
}

func NewPropertyService(
	db *sql.DB,
	pr repository.PropertyRepository,
	ph repository.PropertyPhotoRepository,
	storage ObjectStorage,
	act ActivityService) PropertyService {
	return &propertyService{
		db:      db,
		pr:      pr,
		ph:      ph,
		storage: storage,
		act:     act,
	}
}

func (s *propertyService) Create(ctx context.Context, a *Access, in *transfer.PropertyInput) (*models.Property, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	property := &models.Property{
		WorkspaceID: a.WorkspaceID,
		OwnerID:     a.UserID,
		Status:      models.PropertyStatusAvailable,
	}
	applyPropertyInput(property, in)

	id, err := s.pr.Create(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	property.ID = id

	s.act.Record(ctx, a, models.ActionCreate, entityProperty, id)
	return property, nil
}

func (s *propertyService) Get(ctx context.Context, a *Access, id int64) (*models.Property, error) {
	property, err := s.load(ctx, a, id)
	if err != nil {
		return nil, err
	}

	photos, err := s.ph.ListByPropertyID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load photos: %w", err)
	}
	property.Photos = photos

	return property, nil
}

func (s *propertyService) List(ctx context.Context, a *Access, filter repository.ListFilter) ([]*models.Property, error) {
	return s.pr.List(ctx, a.WorkspaceID, filter)
}

func (s *propertyService) Update(ctx context.Context, a *Access, id int64, in *transfer.PropertyInput) (*models.Property, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	property, err := s.load(ctx, a, id)
	if err != nil {
		return nil, err
	}
	applyPropertyInput(property, in)

	ok, err := s.pr.Update(ctx, property)
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionUpdate, entityProperty, id)
	return property, nil
}

func (s *propertyService) Remove(ctx context.Context, a *Access, id int64) error {
	ok, err := s.pr.Remove(ctx, a.WorkspaceID, id)
	if err != nil {
		return fmt.Errorf("remove property: %w", err)
	}
	if !ok {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}

	s.act.Record(ctx, a, models.ActionDelete, entityProperty, id)
	return nil
}

type photoUpload struct {
	data     []byte
	fileType types.Type
}

// AddPhotos checks every file before anything is stored, then uploads them
// and records the rows in one transaction.
func (s *propertyService) AddPhotos(ctx context.Context, a *Access, id int64, files []*multipart.FileHeader) ([]models.PropertyPhoto, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files: %w", ErrValidation)
	}
	if len(files) > MaxPhotosPerUpload {
		return nil, fmt.Errorf("at most %d photos per upload: %w", MaxPhotosPerUpload, ErrValidation)
	}
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	if _, err := s.load(ctx, a, id); err != nil {
		return nil, err
	}

	uploads := make([]photoUpload, 0, len(files))
	for _, file := range files {
		upload, err := readPhoto(file)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	order, err := s.ph.NextDisplayOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("photo order: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer tx.Rollback()

	photos := make([]models.PropertyPhoto, 0, len(uploads))
	for i, upload := range uploads {
		photo, err := s.savePhoto(ctx, tx, id, order+i, upload)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *photo)
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	s.act.Record(ctx, a, models.ActionUpdate, entityProperty, id)
	return photos, nil
}

func (s *propertyService) savePhoto(ctx context.Context, tx *sql.Tx, propertyID int64, order int, upload photoUpload) (*models.PropertyPhoto, error) {
	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	fileName := fmt.Sprintf("properties/%d/%s.%s", propertyID, key, upload.fileType.Extension)

	url, err := s.storage.Upload(ctx, fileName, upload.data, upload.fileType.MIME.Value)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	photo := &models.PropertyPhoto{
		PropertyID:   propertyID,
		FileName:     fileName,
		FileType:     upload.fileType.MIME.Value,
		FileURL:      url,
		DisplayOrder: order,
	}
	photo.ID, err = s.ph.Create(ctx, tx, photo)
	if err != nil {
		return nil, fmt.Errorf("save photo: %w", err)
	}
	return photo, nil
}

func (s *propertyService) load(ctx context.Context, a *Access, id int64) (*models.Property, error) {
	property, isExist, err := s.pr.GetByID(ctx, a.WorkspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if !isExist {
		return nil, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return property, nil
}

func readPhoto(file *multipart.FileHeader) (photoUpload, error) {
	if file.Size > MaxPhotoBytes {
		return photoUpload{}, fmt.Errorf("%s is larger than %d bytes: %w", file.Filename, MaxPhotoBytes, ErrValidation)
	}

	content, err := file.Open()
	if err != nil {
		return photoUpload{}, fmt.Errorf("error opening file: %w", err)
	}
	defer content.Close()

	data, err := io.ReadAll(io.LimitReader(content, MaxPhotoBytes+1))
	if err != nil {
		return photoUpload{}, fmt.Errorf("error reading file content: %w", err)
	}
	if len(data) > MaxPhotoBytes {
		return photoUpload{}, fmt.Errorf("%s is larger than %d bytes: %w", file.Filename, MaxPhotoBytes, ErrValidation)
	}

	kind, err := sniffPhoto(data)
	if err != nil {
		return photoUpload{}, fmt.Errorf("%s: %w", file.Filename, err)
	}
	return photoUpload{data: data, fileType: kind}, nil
}

// sniffPhoto identifies the image from its content, ignoring the client's
// declared type.
func sniffPhoto(data []byte) (types.Type, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return types.Unknown, fmt.Errorf("unsupported file type: %w", ErrValidation)
	}
	if _, ok := allowedPhotoTypes[kind.Extension]; !ok {
		return types.Unknown, fmt.Errorf("file type %s is not allowed: %w", kind.Extension, ErrValidation)
	}
	return kind, nil
}

func applyPropertyInput(p *models.Property, in *transfer.PropertyInput) {
	p.Title = in.Title
	p.Address = in.Address
	p.City = in.City
	p.State = in.State
	p.Zip = in.Zip
	p.PropertyType = in.PropertyType
	p.Price = in.Price
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.AreaSqft = in.AreaSqft
	p.Description = in.Description
	if in.Status != "" {
		p.Status = in.Status
	}
}
