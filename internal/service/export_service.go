package service

import (
	"alcyxob/fitness-tracker/internal/analytics"
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExportNotFound    = errors.New("progress export not found")
	ErrExportWriteFailed = errors.New("failed to write progress export")
)

const (
	exportPrefix      = "exports"
	exportContentType = "application/json"
)

// ExportDetails is an export record with a temporary download link.
type ExportDetails struct {
	domain.ProgressExport
	DownloadURL string `json:"downloadUrl"`
}

type ExportService interface {
	// CreateExport writes a JSON report of the user's whole history to object storage.
	CreateExport(ctx context.Context, userID primitive.ObjectID) (*ExportDetails, error)
	GetExport(ctx context.Context, userID, exportID primitive.ObjectID) (*ExportDetails, error)
	ListExports(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressExport, error)
}

type exportService struct {
	sessionRepo   repository.SessionRepository
	exportRepo    repository.ExportRepository
	fileStorage   storage.FileStorage
	presignExpiry time.Duration
	now           func() time.Time
}

func NewExportService(
	sessionRepo repository.SessionRepository,
	exportRepo repository.ExportRepository,
	fileStorage storage.FileStorage,
	presignExpiry time.Duration,
) ExportService {
	return &exportService{
		sessionRepo:   sessionRepo,
		exportRepo:    exportRepo,
		fileStorage:   fileStorage,
		presignExpiry: presignExpiry,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *exportService) CreateExport(ctx context.Context, userID primitive.ObjectID) (*ExportDetails, error) {
	sessions, err := s.sessionRepo.Find(ctx, userID, repository.SessionQuery{Sort: repository.SortDateAsc})
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := analytics.BuildReport(userID, sessions, now)
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportWriteFailed, err)
	}

	objectKey := storage.ObjectKey(exportPrefix, userID.Hex(), storage.ExtensionForContentType(exportContentType))
	if err = s.fileStorage.PutObject(ctx, objectKey, exportContentType, body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportWriteFailed, err)
	}

	export := &domain.ProgressExport{
		UserID:      userID,
		S3ObjectKey: objectKey,
		FileName:    fmt.Sprintf("progress-%s.json", now.Format("20060102-150405")),
		ContentType: exportContentType,
		Size:        int64(len(body)),
		Sessions:    report.Sessions,
		CreatedAt:   now,
	}
	exportID, err := s.exportRepo.Create(ctx, export)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.WithField("key", objectKey).Warnf("orphaned export object: %v", delErr)
		}
		return nil, err
	}
	export.ID = exportID

	return s.withDownloadURL(ctx, export)
}

func (s *exportService) GetExport(ctx context.Context, userID, exportID primitive.ObjectID) (*ExportDetails, error) {
	export, err := s.exportRepo.GetByID(ctx, exportID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return s.withDownloadURL(ctx, export)
}

func (s *exportService) ListExports(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressExport, error) {
	return s.exportRepo.GetByUserID(ctx, userID)
}

func (s *exportService) withDownloadURL(ctx context.Context, export *domain.ProgressExport) (*ExportDetails, error) {
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, export.S3ObjectKey, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}
	return &ExportDetails{ProgressExport: *export, DownloadURL: url}, nil
}
