package container

import (
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/celebration/internal/config"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/services"
	"github.com/joshua-takyi/celebration/internal/storage"
)

// Stores groups the repositories of one persistence driver.
type Stores struct {
	Users     models.UserRepo
	Settings  models.SettingsRepo
	Events    models.Repo[models.Event]
	Contacts  models.Repo[models.Contact]
	Reminders models.Repo[models.Reminder]
	Notes     models.Repo[models.Note]
	Gallery   models.Repo[models.GalleryImage]
}

func MongoStores(mdb *models.MongodbRepo) (*Stores, error) {
	users, err := models.NewMongoUserRepo(mdb)
	if err != nil {
		return nil, err
	}
	settings, err := models.NewMongoSettingsRepo(mdb)
	if err != nil {
		return nil, err
	}
	events, err := models.NewMongoRepo(mdb, models.EventCollection)
	if err != nil {
		return nil, err
	}
	contacts, err := models.NewMongoRepo(mdb, models.ContactCollection)
	if err != nil {
		return nil, err
	}
	reminders, err := models.NewMongoRepo(mdb, models.ReminderCollection)
	if err != nil {
		return nil, err
	}
	notes, err := models.NewMongoRepo(mdb, models.NoteCollection)
	if err != nil {
		return nil, err
	}
	gallery, err := models.NewMongoRepo(mdb, models.GalleryCollection)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:     users,
		Settings:  settings,
		Events:    events,
		Contacts:  contacts,
		Reminders: reminders,
		Notes:     notes,
		Gallery:   gallery,
	}, nil
}

func MemoryStores() *Stores {
	return &Stores{
		Users:     models.NewMemoryUserRepo(),
		Settings:  models.NewMemorySettingsRepo(),
		Events:    models.NewMemoryRepo(models.EventCollection),
		Contacts:  models.NewMemoryRepo(models.ContactCollection),
		Reminders: models.NewMemoryRepo(models.ReminderCollection),
		Notes:     models.NewMemoryRepo(models.NoteCollection),
		Gallery:   models.NewMemoryRepo(models.GalleryCollection),
	}
}

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Storage storage.Storage

	AuthService     *services.AuthService
	EventService    *services.CrudService[models.Event, *models.Event]
	ContactService  *services.CrudService[models.Contact, *models.Contact]
	ReminderService *services.CrudService[models.Reminder, *models.Reminder]
	NoteService     *services.CrudService[models.Note, *models.Note]
	GalleryService  *services.GalleryService
	SettingsService *services.SettingsService
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, stores *Stores, st storage.Storage) (*Container, error) {
	if stores == nil || st == nil {
		return nil, fmt.Errorf("container: stores and storage are required")
	}
	return &Container{
		Config:  cfg,
		Logger:  logger,
		Storage: st,

		AuthService:     services.NewAuthService(stores.Users, cfg.JWTSecret, cfg.TokenExpiry),
		EventService:    services.NewCrudService(stores.Events, models.EventCollection),
		ContactService:  services.NewCrudService(stores.Contacts, models.ContactCollection),
		ReminderService: services.NewCrudService(stores.Reminders, models.ReminderCollection),
		NoteService:     services.NewCrudService(stores.Notes, models.NoteCollection),
		GalleryService:  services.NewGalleryService(stores.Gallery, st, cfg.MaxUploadBytes, logger),
		SettingsService: services.NewSettingsService(stores.Settings),
	}, nil
}
