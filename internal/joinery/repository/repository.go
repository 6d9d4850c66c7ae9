package repository

import (
	"errors"

	"github.com/bitfantasy/joinery/internal/joinery/store"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the data-access collection. Every repository shares the
// one store handle; when it is degraded, reads return empty collections
// and writes return store.ErrUnavailable.
type Repositories struct {
	Customer        *CustomerRepository
	Supplier        *SupplierRepository
	Hardware        *HardwareRepository
	Material        *MaterialRepository
	TemplateCabinet *TemplateCabinetRepository
	QuoteProject    *QuoteProjectRepository
	JoineryItem     *JoineryItemRepository
	Cabinet         *CabinetRepository
	Task            *TaskRepository
	Installer       *InstallerRepository
	Setting         *SettingRepository
	Document        *DocumentRepository
}

// NewRepositories creates the data-access collection
func NewRepositories(st *store.Store) *Repositories {
	return &Repositories{
		Customer:        NewCustomerRepository(st),
		Supplier:        NewSupplierRepository(st),
		Hardware:        NewHardwareRepository(st),
		Material:        NewMaterialRepository(st),
		TemplateCabinet: NewTemplateCabinetRepository(st),
		QuoteProject:    NewQuoteProjectRepository(st),
		JoineryItem:     NewJoineryItemRepository(st),
		Cabinet:         NewCabinetRepository(st),
		Task:            NewTaskRepository(st),
		Installer:       NewInstallerRepository(st),
		Setting:         NewSettingRepository(st),
		Document:        NewDocumentRepository(st),
	}
}
