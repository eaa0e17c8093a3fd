package service

import (
	"context"
	"fmt"
	"time"

	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/maheshrc27/realty-crm/internal/transfer"
	"github.com/shopspring/decimal"
)

// UpcomingWindow is how far ahead the dashboard looks for due tasks.
const UpcomingWindow = 7 * 24 * time.Hour

type DashboardService interface {
	Summary(ctx context.Context, a *Access) (*transfer.DashboardSummary, error)
	Analytics(ctx context.Context, a *Access) (*transfer.Analytics, error)
}

type dashboardService struct {
	lr  repository.LeadRepository
	pr  repository.PropertyRepository
	tr  repository.TaskRepository
	cr  repository.ClientRepository
	act ActivityService
}

func NewDashboardService(
	lr repository.LeadRepository,
	pr repository.PropertyRepository,
	tr repository.TaskRepository,
	cr repository.ClientRepository,
	act ActivityService) DashboardService {
	return &dashboardService{
		lr:  lr,
		pr:  pr,
		tr:  tr,
		cr:  cr,
		act: act,
	}
}

// Summary builds the dashboard for the caller's tier. Each tier adds to the
// one below it.
func (s *dashboardService) Summary(ctx context.Context, a *Access) (*transfer.DashboardSummary, error) {
	tier := a.EffectiveTier()
	summary := &transfer.DashboardSummary{
		Tier:     tier,
		Features: plans.FeaturesForTier(tier),
	}

	var err error
	if summary.Leads, err = s.lr.StatusSummary(ctx, a.WorkspaceID); err != nil {
		return nil, fmt.Errorf("lead summary: %w", err)
	}
	if summary.Properties, err = s.pr.StatusSummary(ctx, a.WorkspaceID); err != nil {
		return nil, fmt.Errorf("property summary: %w", err)
	}
	if summary.UpcomingTasks, err = s.tr.ListOpenDueBefore(ctx, a.WorkspaceID, time.Now().Add(UpcomingWindow)); err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}

	if a.Can(plans.FeatureSharedPipeline) {
		if summary.MemberLeads, err = s.lr.CountByMember(ctx, a.WorkspaceID); err != nil {
			return nil, fmt.Errorf("member leads: %w", err)
		}
	}

	if a.Can(plans.FeatureClients) {
		count, err := s.cr.CountByWorkspace(ctx, a.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("count clients: %w", err)
		}
		summary.ClientCount = &count
	}

	if a.Can(plans.FeatureActivityLogs) {
		if summary.RecentActivity, err = s.act.List(ctx, a, RecentActivityLimit, 0); err != nil {
			return nil, fmt.Errorf("recent activity: %w", err)
		}
	}

	return summary, nil
}

func (s *dashboardService) Analytics(ctx context.Context, a *Access) (*transfer.Analytics, error) {
	summary, err := s.lr.StatusSummary(ctx, a.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("lead summary: %w", err)
	}
	return ComputeAnalytics(summary), nil
}

// ComputeAnalytics derives the conversion rate (won over all leads) and the
// pipeline value (budgets of leads still open).
func ComputeAnalytics(summary []models.StatusCount) *transfer.Analytics {
	out := &transfer.Analytics{PipelineValue: decimal.Zero}
	for _, sc := range summary {
		out.TotalLeads += sc.Count
		switch sc.Status {
		case models.LeadStatusWon:
			out.WonLeads += sc.Count
		case models.LeadStatusLost:
		default:
			out.PipelineValue = out.PipelineValue.Add(sc.Total)
		}
	}
	if out.TotalLeads > 0 {
		rate := decimal.NewFromInt(int64(out.WonLeads)).Div(decimal.NewFromInt(int64(out.TotalLeads))).Round(4)
		out.ConversionRate = rate.InexactFloat64()
	}
	return out
}
