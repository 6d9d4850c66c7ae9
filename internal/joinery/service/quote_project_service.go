package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bitfantasy/joinery/internal/joinery/cache"
	"github.com/bitfantasy/joinery/internal/joinery/entity"
	"github.com/bitfantasy/joinery/internal/joinery/repository"
	"github.com/bitfantasy/joinery/internal/joinery/validation"
	"github.com/google/uuid"
)

// QuoteProjectService handles quotes, projects and the install schedule.
// A row is a quote or a project by the IsQuote flag; accepting a quote is
// an update flipping the flag.
type QuoteProjectService struct {
	repo          *repository.QuoteProjectRepository
	customerRepo  *repository.CustomerRepository
	installerRepo *repository.InstallerRepository
	qc            cache.Store
}

// NewQuoteProjectService creates the quote/project service
func NewQuoteProjectService(
	repo *repository.QuoteProjectRepository,
	customerRepo *repository.CustomerRepository,
	installerRepo *repository.InstallerRepository,
	qc cache.Store,
) *QuoteProjectService {
	return &QuoteProjectService{
		repo:          repo,
		customerRepo:  customerRepo,
		installerRepo: installerRepo,
		qc:            qc,
	}
}

// CreateQuoteProjectRequest carries a new quote or project. IsQuote
// defaults to true when omitted.
type CreateQuoteProjectRequest struct {
	IsQuote     *bool      `json:"is_quote"`
	Name        string     `json:"name"`
	Address     *string    `json:"address"`
	CustomerID  *string    `json:"customer_id"`
	QuoteDate   *time.Time `json:"quote_date"`
	TotalAmount float64    `json:"total_amount"`
}

// UpdateQuoteProjectRequest carries a partial update
type UpdateQuoteProjectRequest struct {
	IsQuote                 *bool      `json:"is_quote"`
	Name                    *string    `json:"name"`
	Address                 *string    `json:"address"`
	Status                  *string    `json:"status"`
	CustomerID              *string    `json:"customer_id"`
	QuoteDate               *time.Time `json:"quote_date"`
	TotalAmount             *float64   `json:"total_amount"`
	InstallCommencementDate *time.Time `json:"install_commencement_date"`
	InstallDurationDays     *int       `json:"install_duration_days"`
	Priority                *int       `json:"priority"`
}

var knownStatuses = map[string]bool{
	entity.QuoteStatusDraft:        true,
	entity.QuoteStatusSent:         true,
	entity.QuoteStatusAccepted:     true,
	entity.QuoteStatusRejected:     true,
	entity.QuoteStatusExpired:      true,
	entity.ProjectStatusInProgress: true,
	entity.ProjectStatusCompleted:  true,
}

// ListQuotes returns quotes newest first
func (s *QuoteProjectService) ListQuotes(ctx context.Context) ([]entity.QuoteProject, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagQuoteProject, "list", "quotes"), func(ctx context.Context) ([]entity.QuoteProject, error) {
		return s.repo.FindAll(ctx, true)
	})
}

// ListProjects returns projects newest first
func (s *QuoteProjectService) ListProjects(ctx context.Context) ([]entity.QuoteProject, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagQuoteProject, "list", "projects"), func(ctx context.Context) ([]entity.QuoteProject, error) {
		return s.repo.FindAll(ctx, false)
	})
}

// Schedule returns projects by install commencement date, unscheduled last
func (s *QuoteProjectService) Schedule(ctx context.Context) ([]entity.QuoteProject, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagQuoteProject, "schedule"), func(ctx context.Context) ([]entity.QuoteProject, error) {
		return s.repo.FindSchedule(ctx)
	})
}

// Get returns one quote or project
func (s *QuoteProjectService) Get(ctx context.Context, id string) (*entity.QuoteProject, error) {
	return cache.Through(ctx, s.qc, cache.NewKey(TagQuoteProject, "id", id), func(ctx context.Context) (*entity.QuoteProject, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create validates and stores a new quote or project
func (s *QuoteProjectService) Create(ctx context.Context, userID string, req *CreateQuoteProjectRequest) (*entity.QuoteProject, error) {
	errs := validation.Errors{}
	validation.Required(errs, "name", "Name", req.Name)
	validation.NonNegative(errs, "total_amount", "Total amount", req.TotalAmount)
	if req.CustomerID != nil && *req.CustomerID != "" {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			errs["customer_id"] = "Customer not found"
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	isQuote := true
	if req.IsQuote != nil {
		isQuote = *req.IsQuote
	}
	status := entity.QuoteStatusDraft
	if !isQuote {
		status = entity.ProjectStatusInProgress
	}

	qp := &entity.QuoteProject{
		ID:          uuid.New().String()[:32],
		IsQuote:     isQuote,
		QuoteNumber: newQuoteNumber(),
		Name:        validation.Clean(req.Name),
		Address:     validation.CleanPtr(req.Address),
		Status:      status,
		CustomerID:  validation.CleanPtr(req.CustomerID),
		QuoteDate:   req.QuoteDate,
		TotalAmount: req.TotalAmount,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, qp); err != nil {
		return nil, fmt.Errorf("create quote project: %w", err)
	}

	s.invalidateAll(ctx, qp.ID, "created")
	return qp, nil
}

// Update validates and applies a partial update
func (s *QuoteProjectService) Update(ctx context.Context, id string, req *UpdateQuoteProjectRequest) (*entity.QuoteProject, error) {
	errs := validation.Errors{}
	if req.Name != nil {
		validation.Required(errs, "name", "Name", *req.Name)
	}
	if req.Status != nil && !knownStatuses[*req.Status] {
		errs["status"] = "Unknown status"
	}
	if req.TotalAmount != nil {
		validation.NonNegative(errs, "total_amount", "Total amount", *req.TotalAmount)
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			errs["customer_id"] = "Customer not found"
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	qp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsQuote != nil && *req.IsQuote != qp.IsQuote {
		qp.IsQuote = *req.IsQuote
		// Converting an accepted quote starts the project unless the
		// caller sets a status in the same request.
		if !qp.IsQuote && req.Status == nil {
			qp.Status = entity.ProjectStatusInProgress
		}
	}
	if req.Name != nil {
		qp.Name = validation.Clean(*req.Name)
	}
	if req.Address != nil {
		qp.Address = validation.CleanPtr(req.Address)
	}
	if req.Status != nil {
		qp.Status = *req.Status
	}
	if req.CustomerID != nil {
		qp.CustomerID = validation.CleanPtr(req.CustomerID)
	}
	if req.QuoteDate != nil {
		qp.QuoteDate = req.QuoteDate
	}
	if req.TotalAmount != nil {
		qp.TotalAmount = *req.TotalAmount
	}
	if req.InstallCommencementDate != nil {
		qp.InstallCommencementDate = req.InstallCommencementDate
	}
	if req.InstallDurationDays != nil {
		qp.InstallDurationDays = req.InstallDurationDays
	}
	if req.Priority != nil {
		qp.Priority = *req.Priority
	}

	if err := s.repo.Update(ctx, qp); err != nil {
		return nil, fmt.Errorf("update quote project: %w", err)
	}

	s.invalidateAll(ctx, qp.ID, "updated")
	return qp, nil
}

// Delete removes a quote or project. Rows still carrying joinery items,
// tasks or documents are protected by the store and rejected.
func (s *QuoteProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return conflictOnFK(err, "Cannot delete: this quote or project still has joinery items, tasks or documents. Delete them first.")
	}
	s.invalidateAll(ctx, id, "deleted")
	return nil
}

// === Installer assignments ===

// ListInstallers returns a project's assigned installers
func (s *QuoteProjectService) ListInstallers(ctx context.Context, projectID string) ([]entity.ProjectInstaller, error) {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.FindInstallers(ctx, projectID)
}

// AssignInstaller attaches an installer to a project
func (s *QuoteProjectService) AssignInstaller(ctx context.Context, projectID, installerID string) (*entity.ProjectInstaller, error) {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.installerRepo.FindByID(ctx, installerID); err != nil {
		return nil, err
	}

	row := &entity.ProjectInstaller{
		ID:             uuid.New().String()[:32],
		QuoteProjectID: projectID,
		InstallerID:    installerID,
	}
	if err := s.repo.AssignInstaller(ctx, row); err != nil {
		return nil, fmt.Errorf("assign installer: %w", err)
	}

	s.invalidateAll(ctx, projectID, "updated")
	return row, nil
}

// UnassignInstaller detaches an installer from a project
func (s *QuoteProjectService) UnassignInstaller(ctx context.Context, projectID, installerID string) error {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repo.UnassignInstaller(ctx, projectID, installerID); err != nil {
		return fmt.Errorf("unassign installer: %w", err)
	}
	s.invalidateAll(ctx, projectID, "updated")
	return nil
}

// invalidateAll evicts quote/project reads plus the cross-project tasks
// view, which embeds project rows.
func (s *QuoteProjectService) invalidateAll(ctx context.Context, id, action string) {
	if s.qc != nil {
		s.qc.Invalidate(ctx, TagProjectTask)
	}
	invalidate(ctx, s.qc, TagQuoteProject, id, action)
}

func newQuoteNumber() string {
	return fmt.Sprintf("Q-%s-%s", time.Now().Format("20060102"), strings.ToUpper(uuid.New().String()[:4]))
}
