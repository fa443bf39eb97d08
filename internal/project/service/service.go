package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/riasku/internal/clock"
	"github.com/smallbiznis/riasku/internal/project/domain"
	"github.com/smallbiznis/riasku/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Snapshots *store.Snapshots
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	snapshots *store.Snapshots
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("project.service"),
		clock:     p.Clock,
		snapshots: p.Snapshots,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Project, error) {
	return s.snapshots.LoadProjects(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Project, error) {
	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	for _, project := range projects {
		if project.ID == id {
			return project, nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Project{}, domain.ErrInvalidTitle
	}

	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	now := s.clock.Now().Format(dateLayout)
	project := domain.Project{
		ID:        nextID(projects),
		Title:     title,
		Client:    strings.TrimSpace(req.Client),
		ClientID:  req.ClientID,
		Date:      req.Date,
		Budget:    req.Budget,
		Status:    domain.ProjectStatusBooked,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	projects = append(projects, project)
	if err := s.snapshots.SaveProjects(ctx, projects); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (s *Service) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	if project.ID <= 0 {
		return domain.Project{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(project.Title) == "" {
		return domain.Project{}, domain.ErrInvalidTitle
	}

	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		return domain.Project{}, err
	}
	for i := range projects {
		if projects[i].ID == project.ID {
			project.CreatedAt = projects[i].CreatedAt
			project.UpdatedAt = s.clock.Now().Format(dateLayout)
			projects[i] = project
			if err := s.snapshots.SaveProjects(ctx, projects); err != nil {
				return domain.Project{}, err
			}
			return project, nil
		}
	}
	return domain.Project{}, domain.ErrNotFound
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	projects, err := s.snapshots.LoadProjects(ctx)
	if err != nil {
		return err
	}
	for i := range projects {
		if projects[i].ID == id {
			projects = append(projects[:i], projects[i+1:]...)
			return s.snapshots.SaveProjects(ctx, projects)
		}
	}
	return domain.ErrNotFound
}

func nextID(projects []domain.Project) int64 {
	var max int64
	for _, project := range projects {
		if project.ID > max {
			max = project.ID
		}
	}
	return max + 1
}
