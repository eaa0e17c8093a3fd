package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/maheshrc27/realty-crm/internal/demo"
	"github.com/maheshrc27/realty-crm/internal/models"
	"github.com/maheshrc27/realty-crm/internal/plans"
	"github.com/maheshrc27/realty-crm/internal/repository"
	"github.com/spf13/cobra"
)

var (
	seedEmail string
	seedTier  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an account's workspace with demo data",
	Long: `Seed copies the demo leads, properties, tasks and clients into the workspace
of an existing account and, once every row is written, activates the chosen
plan on it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		s := &seeder{
			users:      repository.NewUserRepository(db),
			profiles:   repository.NewProfileRepository(db),
			leads:      repository.NewLeadRepository(db),
			properties: repository.NewPropertyRepository(db),
			tasks:      repository.NewTaskRepository(db),
			clients:    repository.NewClientRepository(db),
		}

		res, err := s.seed(cmd.Context(), seedEmail, seedTier, time.Now())
		if err != nil {
			return err
		}

		color.Green("Seeded workspace %d for %s (%s)", res.WorkspaceID, seedEmail, res.Tier)
		fmt.Fprintf(cmd.OutOrStdout(), "  %d properties, %d leads, %d tasks, %d clients\n",
			res.Properties, res.Leads, res.Tasks, res.Clients)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "email of the account to seed")
	seedCmd.Flags().StringVar(&seedTier, "tier", plans.TierCorporate, "plan to activate on the account")
	_ = seedCmd.MarkFlagRequired("email")
}

type seedResult struct {
	WorkspaceID int64
	Tier        string
	Properties  int
	Leads       int
	Tasks       int
	Clients     int

	propertyIDs []int64
	leadIDs     []int64
	taskIDs     []int64
	clientIDs   []int64
}

type seeder struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	leads      repository.LeadRepository
	properties repository.PropertyRepository
	tasks      repository.TaskRepository
	clients    repository.ClientRepository
}

func (s *seeder) seed(ctx context.Context, email, tier string, now time.Time) (*seedResult, error) {
	if !plans.IsValidTier(tier) {
		return nil, fmt.Errorf("unknown tier %q", tier)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	user, isExist, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, fmt.Errorf("no account for %s, sign up first", email)
	}

	profile, isExist, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, fmt.Errorf("account %s has no profile", email)
	}

	res, err := s.insertDemo(ctx, user.ID, profile.WorkspaceID, tier, now)
	if err != nil {
		return nil, err
	}

	profile.Tier = tier
	profile.SubscriptionStatus = models.SubscriptionStatusActive
	if err := s.profiles.UpdateBilling(ctx, profile); err != nil {
		return nil, errors.Join(fmt.Errorf("activate plan: %w", err), s.undo(ctx, profile.WorkspaceID, res))
	}
	return res, nil
}

// insertDemo writes the demo rows. On failure the rows already written are
// removed again so a rerun starts clean.
func (s *seeder) insertDemo(ctx context.Context, userID, workspaceID int64, tier string, now time.Time) (*seedResult, error) {
	data := demo.Workspace(now)
	res := &seedResult{WorkspaceID: workspaceID, Tier: tier}

	fail := func(err error) (*seedResult, error) {
		return nil, errors.Join(err, s.undo(ctx, workspaceID, res))
	}

	propertyIDs := map[int64]int64{}
	for _, p := range data.Properties {
		demoID := p.ID
		p.WorkspaceID, p.OwnerID = workspaceID, userID
		id, err := s.properties.Create(ctx, p)
		if err != nil {
			return fail(fmt.Errorf("seed property %q: %w", p.Title, err))
		}
		propertyIDs[demoID] = id
		res.propertyIDs = append(res.propertyIDs, id)
		res.Properties++
	}

	leadIDs := map[int64]int64{}
	for _, l := range data.Leads {
		demoID := l.ID
		l.WorkspaceID, l.OwnerID = workspaceID, userID
		l.PropertyID = remap(l.PropertyID, propertyIDs)
		id, err := s.leads.Create(ctx, l)
		if err != nil {
			return fail(fmt.Errorf("seed lead %q: %w", l.Name, err))
		}
		leadIDs[demoID] = id
		res.leadIDs = append(res.leadIDs, id)
		res.Leads++
	}

	for _, t := range data.Tasks {
		t.WorkspaceID, t.CreatorID, t.AssigneeID = workspaceID, userID, userID
		t.LeadID = remap(t.LeadID, leadIDs)
		id, err := s.tasks.Create(ctx, t)
		if err != nil {
			return fail(fmt.Errorf("seed task %q: %w", t.Title, err))
		}
		res.taskIDs = append(res.taskIDs, id)
		res.Tasks++
	}

	if plans.HasFeature(plans.FeatureClients, tier) {
		for _, c := range data.Clients {
			c.WorkspaceID = workspaceID
			id, err := s.clients.Create(ctx, c)
			if err != nil {
				return fail(fmt.Errorf("seed client %q: %w", c.Name, err))
			}
			res.clientIDs = append(res.clientIDs, id)
			res.Clients++
		}
	}

	return res, nil
}

func (s *seeder) undo(ctx context.Context, workspaceID int64, res *seedResult) error {
	var errs []error
	remove := func(kind string, ids []int64, rm func(context.Context, int64, int64) (bool, error)) {
		for _, id := range ids {
			if _, err := rm(ctx, workspaceID, id); err != nil {
				errs = append(errs, fmt.Errorf("remove seeded %s %d: %w", kind, id, err))
			}
		}
	}
	remove("client", res.clientIDs, s.clients.Remove)
	remove("task", res.taskIDs, s.tasks.Remove)
	remove("lead", res.leadIDs, s.leads.Remove)
	remove("property", res.propertyIDs, s.properties.Remove)
	return errors.Join(errs...)
}

func remap(id *int64, ids map[int64]int64) *int64 {
	if id == nil {
		return nil
	}
	newID, ok := ids[*id]
	if !ok {
		return nil
	}
	return &newID
}
