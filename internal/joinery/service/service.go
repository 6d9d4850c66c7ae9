package service

import (
	"context"

	"github.com/bitfantasy/joinery/internal/config"
	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/sse"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Entity tags key the query cache and the invalidation stream. A write to
// an entity evicts every cached read carrying its tag and broadcasts the
// tag to stream clients.
const (
	TagCustomer        = "customer"
	TagSupplier        = "supplier"
	TagHardware        = "hardware"
	TagMaterial        = "material"
	TagTemplateCabinet = "template_cabinet"
	TagQuoteProject    = "quote_project"
	TagJoineryItem     = "joinery_item"
	TagCabinet         = "cabinet"
	TagProjectTask     = "project_task"
	TagInstaller       = "installer"
	TagSetting         = "setting"
	TagDocument        = "project_document"
)

// Services is the service collection
type Services struct {
	Customer        *CustomerService
	Supplier        *SupplierService
	Hardware        *HardwareService
	Material        *MaterialService
	TemplateCabinet *TemplateCabinetService
	QuoteProject    *QuoteProjectService
	JoineryItem     *JoineryItemService
	Cabinet         *CabinetService
	Task            *TaskService
	Installer       *InstallerService
	Setting         *SettingService
	Document        *DocumentService
	QuoteExport     *QuoteExportService
	CatalogImport   *CatalogImportService
}

// NewServices creates the service collection
func NewServices(repos *repository.Repositories, qc cache.Store, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// Document uploads are rejected without object storage;
			// metadata reads still work.
			minioClient = nil
		}
	}

	hardwareSvc := NewHardwareService(repos.Hardware, qc)
	materialSvc := NewMaterialService(repos.Material, qc)
	quoteProjectSvc := NewQuoteProjectService(repos.QuoteProject, repos.Customer, repos.Installer, qc)
	joineryItemSvc := NewJoineryItemService(repos.JoineryItem, repos.QuoteProject, repos.Hardware, repos.Material, qc)

	return &Services{
		Customer:        NewCustomerService(repos.Customer, qc),
		Supplier:        NewSupplierService(repos.Supplier, qc),
		Hardware:        hardwareSvc,
		Material:        materialSvc,
		TemplateCabinet: NewTemplateCabinetService(repos.TemplateCabinet, qc),
		QuoteProject:    quoteProjectSvc,
		JoineryItem:     joineryItemSvc,
		Cabinet:         NewCabinetService(repos.Cabinet, repos.JoineryItem, repos.TemplateCabinet, qc),
		Task:            NewTaskService(repos.Task, repos.QuoteProject, qc),
		Installer:       NewInstallerService(repos.Installer, qc),
		Setting:         NewSettingService(repos.Setting, qc),
		Document:        NewDocumentService(repos.Document, repos.QuoteProject, minioClient, cfg.MinIO.Bucket, qc),
		QuoteExport:     NewQuoteExportService(repos.QuoteProject, repos.JoineryItem),
		CatalogImport:   NewCatalogImportService(hardwareSvc, materialSvc),
	}
}

// invalidate evicts an entity's cached reads and notifies stream clients.
// Called after every successful write, never before.
func invalidate(ctx context.Context, qc cache.Store, entity, id, action string) {
	if qc != nil {
		qc.Invalidate(ctx, entity)
	}
	sse.PublishInvalidation(entity, id, action)
}
