package services

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"memerender/internal/generation"
	"memerender/internal/logging"
	"memerender/internal/models"
	"memerender/internal/repositories"
)

const defaultHistoryPageSize = 50

// HistoryService exposes the signed-in user's past generations.
type HistoryService interface {
	Startup(ctx context.Context)
	List(limit, offset int) ([]models.GenerationRecord, error)
	Get(id string) (*models.GenerationRecord, error)
	Delete(id string) error
	Clear() error
}

type historyService struct {
	repo    repositories.GenerationRecordRepository
	auth    AuthService
	context context.Context
}

func NewHistoryService(repo repositories.GenerationRecordRepository, auth AuthService) HistoryService {
	return &historyService{repo: repo, auth: auth}
}

func (s *historyService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *historyService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

func (s *historyService) userID() (uint, error) {
	if s.auth == nil {
		return 0, nil
	}
	u := s.auth.State().User
	if u == nil {
		return 0, ErrNotSignedIn
	}
	return u.ID, nil
}

func (s *historyService) List(limit, offset int) ([]models.GenerationRecord, error) {
	uid, err := s.userID()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(s.ctx(), uid, limit, offset)
}

func (s *historyService) Get(id string) (*models.GenerationRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("record ID is required")
	}
	uid, err := s.userID()
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.GetByID(s.ctx(), id)
	if err != nil {
		return nil, err
	}
	if uid != 0 && rec.UserID != uid {
		return nil, repositories.ErrNotFound
	}
	return rec, nil
}

func (s *historyService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.DeleteByID(s.ctx(), strings.TrimSpace(id))
}

func (s *historyService) Clear() error {
	uid, err := s.userID()
	if err != nil {
		return err
	}
	return s.repo.DeleteByUser(s.ctx(), uid)
}

// HistoryRecorder persists generation outcomes. Failures are logged only.
type HistoryRecorder struct {
	repo repositories.GenerationRecordRepository
	log  *log.Logger
}

func NewHistoryRecorder(repo repositories.GenerationRecordRepository) *HistoryRecorder {
	return &HistoryRecorder{repo: repo, log: logging.Named("history")}
}

// Record has the generation.Recorder signature.
func (r *HistoryRecorder) Record(ctx context.Context, o generation.Outcome) {
	rec := &models.GenerationRecord{
		ID:       uuid.NewString(),
		UserID:   o.UserID,
		Prompt:   o.Request.Prompt,
		Size:     o.Request.Size,
		Quality:  o.Request.Quality,
		Status:   string(o.Status),
		Error:    o.Error,
		ImageB64: o.Base64,
	}
	if o.Request.Model != nil {
		rec.Provider = o.Request.Model.Provider()
		rec.Model = o.Request.Model.Name()
	}
	if err := r.repo.Create(ctx, rec); err != nil {
		r.log.Warn("record generation", "err", err)
		return
	}
	r.log.Debug("recorded generation", "id", rec.ID, "status", rec.Status)
}
