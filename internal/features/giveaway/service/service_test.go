package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"atlas3-backend/internal/domain/network"
	"atlas3-backend/internal/domain/rule"
	"atlas3-backend/internal/features/giveaway/models"
	"atlas3-backend/internal/features/giveaway/models/dto"
	"atlas3-backend/internal/features/giveaway/repository"
	"atlas3-backend/internal/features/giveaway/repository/gormrepo"
	projectmodels "atlas3-backend/internal/features/project/models"
	projectgorm "atlas3-backend/internal/features/project/repository/gormrepo"
	usermodels "atlas3-backend/internal/features/user/models"
	"atlas3-backend/internal/service/notifications"
	"atlas3-backend/internal/testutil"
)

var creator = usermodels.Session{UserID: "user-1", Type: usermodels.UserTypeCreator}

type recordingDispatcher struct {
	jobs []notifications.Job
}

func (d *recordingDispatcher) Dispatch(job notifications.Job) {
	d.jobs = append(d.jobs, job)
}

// failingRepo fails the n-th Create made inside a transaction.
type failingRepo struct {
	repository.GiveawayRepository
	failOn  int
	creates *int
}

func (r failingRepo) Transaction(ctx context.Context, fn func(repo repository.GiveawayRepository) error) error {
	return r.GiveawayRepository.Transaction(ctx, func(tx repository.GiveawayRepository) error {
		return fn(failingRepo{GiveawayRepository: tx, failOn: r.failOn, creates: r.creates})
	})
}

func (r failingRepo) Create(ctx context.Context, g *models.Giveaway) error {
	*r.creates++
	if *r.creates == r.failOn {
		return errors.New("insert failed")
	}
	return r.GiveawayRepository.Create(ctx, g)
}

type fixture struct {
	db       *gorm.DB
	svc      *giveawayService
	repo     repository.GiveawayRepository
	notifier *recordingDispatcher
	alpha    *projectmodels.Project
	beta     *projectmodels.Project
	gamma    *projectmodels.Project
	deadline time.Time
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	client := testutil.GetEmptyTestDB(t,
		&projectmodels.Project{},
		&projectmodels.Allowlist{},
		&projectmodels.DiscordGuild{},
		&models.Giveaway{},
	)
	db := client.GetDB()
	ctx := context.Background()
	projects := projectgorm.NewProjectRepository(db)

	alpha := &projectmodels.Project{
		ID:            "p-alpha",
		Slug:          "alpha",
		Name:          "Alpha",
		Description:   "Alpha project",
		BannerImage:   "alpha.png",
		Status:        projectmodels.ProjectStatusPublished,
		Phase:         projectmodels.PhasePremint,
		Network:       network.Ethereum,
		DefaultRoleID: "role-1",
		DefaultRules:  []rule.Rule{guildRule("alpha-guild", "g1")},
		HolderRules:   []rule.Rule{nftRule("alpha-holder", "0xa1")},
		Allowlist:     &projectmodels.Allowlist{ID: "al-alpha", Type: projectmodels.AllowlistDiscordRole, RoleID: "role-1"},
	}
	beta := &projectmodels.Project{
		ID:            "p-beta",
		Slug:          "beta",
		Name:          "Beta",
		Status:        projectmodels.ProjectStatusPublished,
		Phase:         projectmodels.PhasePremint,
		Network:       network.Polygon,
		DefaultRoleID: "role-2",
		DefaultRules:  []rule.Rule{guildRule("beta-guild", "g2")},
		HolderRules:   []rule.Rule{nftRule("beta-holder", "n1")},
		DiscordGuild: &projectmodels.DiscordGuild{
			ID:                           "dg-beta",
			GuildID:                      "g2",
			IncomingCollabsChannelID:     "chan-beta",
			IncomingCollabsMentionRoleID: "mention-beta",
		},
	}
	gamma := &projectmodels.Project{
		ID:          "p-gamma",
		Slug:        "gamma",
		Name:        "Gamma",
		Status:      projectmodels.ProjectStatusPublished,
		Phase:       projectmodels.PhasePostmint,
		Network:     network.Solana,
		HolderRules: []rule.Rule{nftRule("gamma-holder", "n3")},
	}
	for _, p := range []*projectmodels.Project{alpha, beta, gamma} {
		require.NoError(t, projects.Create(ctx, p))
	}

	repo := gormrepo.NewGiveawayRepository(db)
	notifier := &recordingDispatcher{}
	svc := NewGiveawayService(repo, projects, notifier).(*giveawayService)

	return &fixture{
		db:       db,
		svc:      svc,
		repo:     repo,
		notifier: notifier,
		alpha:    alpha,
		beta:     beta,
		gamma:    gamma,
		deadline: time.Now().Add(time.Hour),
		ctx:      ctx,
	}
}

func (f *fixture) giveSpotsRequest(targets ...string) *dto.GiveawayUpsertRequest {
	return &dto.GiveawayUpsertRequest{
		Type:                  models.GiveawayTypeRaffle,
		MaxWinners:            10,
		CollabType:            models.CollabTypeGiveSpots,
		CollabProjectIDs:      targets,
		CollabDuration:        24,
		CollabRequestDeadline: &f.deadline,
	}
}

func (f *fixture) countGiveaways(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Giveaway{}).Count(&n).Error)
	return n
}

func TestCreate_GiveSpotsCollab(t *testing.T) {
	f := newFixture(t)

	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	stored, err := f.repo.GetBySlug(f.ctx, g.Slug)
	require.NoError(t, err)
	assert.Equal(t, "alpha-x-beta", stored.Slug)
	assert.Equal(t, "Alpha x Beta", stored.Name)
	assert.Equal(t, []string{"alpha-guild", "beta-holder"}, rule.IDs(stored.Rules))
	assert.Equal(t, rule.TypeDiscordGuild, stored.Rules[0].Type())
	assert.Equal(t, rule.TypeOwnNft, stored.Rules[1].Type())
	assert.Equal(t, "role-1", stored.DiscordRoleID)
	assert.Equal(t, network.Ethereum, stored.Network)
	assert.Equal(t, models.GiveawayStatusCollabPending, stored.Status)
	assert.Equal(t, models.CollabTypeGiveSpots, stored.CollabType)
	assert.Equal(t, 10, stored.MaxWinners)
	assert.Equal(t, 24, stored.CollabDuration)
	assert.Equal(t, "user-1", stored.OwnerID)
	assert.Equal(t, "Alpha project", stored.Description)
	require.NotNil(t, stored.CollabProjectID)
	assert.Equal(t, "p-beta", *stored.CollabProjectID)
	require.NotNil(t, stored.CollabProject)
	assert.Equal(t, "beta", stored.CollabProject.Slug)

	assert.Equal(t, []notifications.Job{
		notifications.CollabRequest("alpha-x-beta", "chan-beta", "mention-beta"),
	}, f.notifier.jobs)
}

func TestCreate_PastDeadlinePersistsNothing(t *testing.T) {
	f := newFixture(t)
	req := f.giveSpotsRequest("p-beta")
	past := time.Now().Add(-time.Hour)
	req.CollabRequestDeadline = &past

	_, err := f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrDeadlinePassed)
	assert.Zero(t, f.countGiveaways(t))
	assert.Empty(t, f.notifier.jobs)
}

func TestCreate_ReceiveSpotsCollab(t *testing.T) {
	f := newFixture(t)
	req := &dto.GiveawayUpsertRequest{
		Name:            "Spots for Alpha",
		Type:            models.GiveawayTypeFCFS,
		MaxWinners:      5,
		CollabType:      models.CollabTypeReceiveSpots,
		CollabProjectID: "p-beta",
		CollabDuration:  48,
		Rules:           []rule.Rule{tweetRule(""), guildRule("alpha-guild", "g1")},
	}

	g, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)

	stored, err := f.repo.GetByID(f.ctx, g.ID)
	require.NoError(t, err)
	ids := rule.IDs(stored.Rules)
	require.Len(t, ids, 3)
	assert.Equal(t, []string{"beta-guild", "alpha-holder"}, ids[:2])
	assert.Equal(t, rule.TypeTwitterTweet, stored.Rules[2].Type())
	assert.Equal(t, "role-2", stored.DiscordRoleID)
	// alpha receives, so its own network applies rather than beta's Polygon.
	assert.Equal(t, network.Ethereum, stored.Network)
	assert.Equal(t, "spots-for-alpha", stored.Slug)
}

func TestCreate_ReceiveSpotsFromMintedProjectNotEligible(t *testing.T) {
	f := newFixture(t)
	req := &dto.GiveawayUpsertRequest{
		Type:            models.GiveawayTypeRaffle,
		MaxWinners:      5,
		CollabType:      models.CollabTypeReceiveSpots,
		CollabProjectID: "p-gamma",
		CollabDuration:  24,
	}

	_, err := f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrProjectNotEligible)
	assert.Equal(t, "Project not eligible", ErrProjectNotEligible.Message)
	assert.Zero(t, f.countGiveaways(t))
}

func TestCreate_StandaloneGiveaway(t *testing.T) {
	f := newFixture(t)
	ends := time.Now().Add(24 * time.Hour)
	amount := decimal.RequireFromString("2.5")
	req := &dto.GiveawayUpsertRequest{
		Name:       "Summer Drop!",
		Type:       models.GiveawayTypeRaffle,
		MaxWinners: 3,
		EndsAt:     &ends,
		Rules:      []rule.Rule{tweetRule("")},
		Settings:   &models.GiveawaySettings{PreventDuplicateIPs: true},
		PaymentToken: &models.PaymentToken{
			Symbol:       "USDT",
			TokenAddress: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
			Network:      network.Ethereum,
		},
		PaymentTokenAmount: &amount,
	}

	g, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)

	stored, err := f.repo.GetByID(f.ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "summer-drop", stored.Slug)
	assert.Equal(t, models.GiveawayStatusRunning, stored.Status)
	assert.Nil(t, stored.CollabProjectID)
	assert.Equal(t, "role-1", stored.DiscordRoleID)
	assert.True(t, stored.Settings.PreventDuplicateIPs)
	require.Len(t, stored.Rules, 1)
	assert.NotEmpty(t, stored.Rules[0].ID)
	require.NotNil(t, stored.PaymentToken)
	assert.Equal(t, "USDT", stored.PaymentToken.Symbol)
	require.NotNil(t, stored.PaymentTokenAmount)
	assert.True(t, stored.PaymentTokenAmount.Equal(amount))
	assert.Empty(t, f.notifier.jobs)
}

func TestCreate_StandaloneEndDate(t *testing.T) {
	f := newFixture(t)
	req := &dto.GiveawayUpsertRequest{Type: models.GiveawayTypeRaffle, MaxWinners: 1}

	_, err := f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrEndDateRequired)

	past := time.Now().Add(-time.Second)
	req.EndsAt = &past
	_, err = f.svc.Create(f.ctx, creator, "alpha", req)
	require.ErrorIs(t, err, ErrEndDatePassed)
	assert.Equal(t, "End Date must be in the future", ErrEndDatePassed.Message)
	assert.Zero(t, f.countGiveaways(t))
}

func TestCreate_TakenSlugGetsSuffix(t *testing.T) {
	f := newFixture(t)
	ends := time.Now().Add(time.Hour)
	req := &dto.GiveawayUpsertRequest{Name: "Mint Pass", Type: models.GiveawayTypeRaffle, MaxWinners: 1, EndsAt: &ends}

	first, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)
	second, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)

	assert.Equal(t, "mint-pass", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "mint-pass-"))
	assert.Len(t, second.Slug, len("mint-pass-")+6)
}

func TestCreate_TeamSpotsSpawnsPrivateGiveaway(t *testing.T) {
	f := newFixture(t)
	req := f.giveSpotsRequest("p-beta")
	req.TeamSpots = 3
	req.Rules = []rule.Rule{tweetRule("")}

	primary, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.countGiveaways(t))
	assert.Equal(t, 10, primary.MaxWinners)
	assert.False(t, primary.Settings.Private)

	var teams []*models.Giveaway
	require.NoError(t, f.db.Where("parent_id = ?", primary.ID).Find(&teams).Error)
	require.Len(t, teams, 1)

	team := teams[0]
	assert.Equal(t, 3, team.MaxWinners)
	assert.True(t, team.Settings.Private)
	assert.Equal(t, []string{"alpha-guild"}, rule.IDs(team.Rules))
	assert.Len(t, team.Slug, teamSlugLength)
	assert.False(t, strings.HasPrefix(team.Slug, "alpha"))
	assert.Equal(t, "Alpha x Beta Team", team.Name)

	// Only the primary giveaway is announced.
	assert.Len(t, f.notifier.jobs, 1)
}

func TestCreate_MultipleTargetsInCallerOrder(t *testing.T) {
	f := newFixture(t)
	req := f.giveSpotsRequest("p-beta", "p-gamma", "p-beta")

	last, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)

	assert.EqualValues(t, 3, f.countGiveaways(t))
	assert.Equal(t, "p-beta", *last.CollabProjectID)
	assert.True(t, strings.HasPrefix(last.Slug, "alpha-x-beta-"))

	gamma, err := f.repo.GetBySlug(f.ctx, "alpha-x-gamma")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha-guild", "gamma-holder"}, rule.IDs(gamma.Rules))

	// Gamma has no incoming collabs channel.
	require.Len(t, f.notifier.jobs, 2)
	assert.Equal(t, "alpha-x-beta", f.notifier.jobs[0].GiveawaySlug)
	assert.Equal(t, last.Slug, f.notifier.jobs[1].GiveawaySlug)
}

func TestCreate_MultipleTargetsRollBackTogether(t *testing.T) {
	f := newFixture(t)
	creates := 0
	f.svc.giveaways = failingRepo{GiveawayRepository: f.repo, failOn: 2, creates: &creates}

	_, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta", "p-gamma"))
	require.Error(t, err)

	assert.Zero(t, f.countGiveaways(t))
	assert.Empty(t, f.notifier.jobs)
}

func TestCreate_UnknownTargetFailsBeforeWrites(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta", "p-missing"))
	assert.ErrorIs(t, err, ErrCollabProjectMissing)
	assert.Zero(t, f.countGiveaways(t))
}

func TestCreate_ValidationOrder(t *testing.T) {
	f := newFixture(t)

	req := f.giveSpotsRequest("p-beta")
	req.MaxWinners = 0
	_, err := f.svc.Create(f.ctx, usermodels.Session{UserID: "u", Type: usermodels.UserTypeUser}, "missing", req)
	assert.ErrorIs(t, err, ErrMaxWinners, "max winners is checked first")

	req = f.giveSpotsRequest("p-beta")
	req.Type = "LOTTERY"
	_, err = f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = f.svc.Create(f.ctx, usermodels.Session{UserID: "u", Type: usermodels.UserTypeUser}, "alpha", f.giveSpotsRequest("p-beta"))
	assert.ErrorIs(t, err, ErrForbidden)

	req = f.giveSpotsRequest("p-beta")
	req.Name = strings.Repeat("n", 151)
	_, err = f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrNameTooLong)

	req = f.giveSpotsRequest("p-beta")
	req.Description = strings.Repeat("d", 5001)
	_, err = f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrDescriptionTooLong)

	_, err = f.svc.Create(f.ctx, creator, "missing", f.giveSpotsRequest("p-beta"))
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCreate_ProjectMustBePublished(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&projectmodels.Project{}).Where("id = ?", "p-alpha").
		Update("status", projectmodels.ProjectStatusDraft).Error)

	_, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	assert.ErrorIs(t, err, ErrProjectNotPublished)
}

func TestCreate_CollabPreconditions(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		project string
		mutate  func(r *dto.GiveawayUpsertRequest)
		want    error
	}{
		{"invalid collab type", "alpha", func(r *dto.GiveawayUpsertRequest) { r.CollabType = "SWAP" }, ErrInvalidCollabType},
		{"missing deadline", "alpha", func(r *dto.GiveawayUpsertRequest) { r.CollabRequestDeadline = nil }, ErrDeadlineRequired},
		{"zero duration", "alpha", func(r *dto.GiveawayUpsertRequest) { r.CollabDuration = 0 }, ErrCollabDuration},
		{"duration over a week", "alpha", func(r *dto.GiveawayUpsertRequest) { r.CollabDuration = 169 }, ErrCollabDuration},
		{"no targets", "alpha", func(r *dto.GiveawayUpsertRequest) { r.CollabProjectIDs = nil }, ErrCollabTargetsRequired},
		{"giver without allowlist", "beta", func(r *dto.GiveawayUpsertRequest) { r.CollabProjectIDs = []string{"p-alpha"} }, ErrAllowlistRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.giveSpotsRequest("p-beta")
			tt.mutate(req)
			_, err := f.svc.Create(f.ctx, creator, tt.project, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, f.countGiveaways(t))
}

func TestCreate_GiverNeedsGuildRule(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&projectmodels.Project{}).Where("id = ?", "p-alpha").
		Update("default_rules", datatypes.JSONSlice[rule.Rule]{tweetRule("only-tweet")}).Error)

	_, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	assert.ErrorIs(t, err, ErrDiscordGuildRuleMissing)
}

func TestCreate_ReceiveAfterMintNeedsHolderRules(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(&projectmodels.Project{}).Where("id = ?", "p-gamma").
		Update("holder_rules", datatypes.JSONSlice[rule.Rule]{}).Error)

	req := &dto.GiveawayUpsertRequest{
		Type:            models.GiveawayTypeRaffle,
		MaxWinners:      1,
		CollabType:      models.CollabTypeReceiveSpots,
		CollabProjectID: "p-beta",
		CollabDuration:  24,
	}
	_, err := f.svc.Create(f.ctx, creator, "gamma", req)
	assert.ErrorIs(t, err, ErrHolderRulesRequired)
}

func TestCreate_PaymentTokenValidation(t *testing.T) {
	f := newFixture(t)
	ends := time.Now().Add(time.Hour)
	amount := decimal.NewFromInt(1)

	req := &dto.GiveawayUpsertRequest{
		Type:               models.GiveawayTypeRaffle,
		MaxWinners:         1,
		EndsAt:             &ends,
		PaymentToken:       &models.PaymentToken{Symbol: "X", TokenAddress: "nope", Network: network.Ethereum},
		PaymentTokenAmount: &amount,
	}
	_, err := f.svc.Create(f.ctx, creator, "alpha", req)
	assert.Error(t, err)

	req.PaymentToken = &models.PaymentToken{Symbol: "X", TokenAddress: "abc", Network: network.TBD}
	_, err = f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrPaymentTokenNetwork)

	zero := decimal.Zero
	req.PaymentToken = &models.PaymentToken{Symbol: "SOL", TokenAddress: "So11111111111111111111111111111111111111112", Network: network.Solana}
	req.PaymentTokenAmount = &zero
	_, err = f.svc.Create(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrPaymentTokenAmount)
}

func (f *fixture) editRequest(g *models.Giveaway, rules []rule.Rule) *dto.GiveawayUpsertRequest {
	return &dto.GiveawayUpsertRequest{
		ID:         g.ID,
		Name:       "Renamed",
		Type:       g.Type,
		MaxWinners: 20,
		Rules:      rules,
	}
}

func TestUpdate_CreatorCannotDropPartnerRules(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)
	f.notifier.jobs = nil

	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, []rule.Rule{guildRule("alpha-guild", "g1")}))
	require.ErrorIs(t, err, ErrProtectedRuleRemoved)

	stored, err := f.repo.GetByID(f.ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha x Beta", stored.Name)
	assert.Equal(t, 10, stored.MaxWinners)
	assert.Equal(t, []string{"alpha-guild", "beta-holder"}, rule.IDs(stored.Rules))
}

func TestUpdate_CreatorCannotRewritePartnerRules(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	// Same id, different contract.
	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, []rule.Rule{
		guildRule("alpha-guild", "g1"),
		nftRule("beta-holder", "0xswapped"),
	}))
	require.ErrorIs(t, err, ErrProtectedRuleChanged)

	stored, err := f.repo.GetByID(f.ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, stored.Rules, 2)
	assert.Equal(t, "n1", stored.Rules[1].Payload.(rule.OwnNftRule).ContractAddress)

	// The creator's own rule may still be rewritten.
	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, []rule.Rule{
		guildRule("alpha-guild", "g-new"),
		nftRule("beta-holder", "n1"),
	}))
	assert.NoError(t, err)
}

func TestUpdate_CreatorMayDropOwnRulesAndAddNew(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	updated, err := f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, []rule.Rule{
		nftRule("beta-holder", "n1"),
		tweetRule(""),
	}))
	require.NoError(t, err)

	stored, err := f.repo.GetByID(f.ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, 20, stored.MaxWinners)
	require.Len(t, stored.Rules, 2)
	assert.Equal(t, "beta-holder", stored.Rules[0].ID)
	assert.NotEmpty(t, stored.Rules[1].ID)
}

func TestUpdate_PartnerSideProtectionIsMirrored(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	// Beta is the collab side: Alpha's default rules are protected, Beta's
	// own holder rule is not.
	_, err = f.svc.Update(f.ctx, creator, "beta", f.editRequest(g, []rule.Rule{nftRule("beta-holder", "n1")}))
	assert.ErrorIs(t, err, ErrProtectedRuleRemoved)

	_, err = f.svc.Update(f.ctx, creator, "beta", f.editRequest(g, []rule.Rule{guildRule("alpha-guild", "g1")}))
	assert.NoError(t, err)
}

func TestUpdate_ReceiveSpotsProtectsPartnerDefaults(t *testing.T) {
	f := newFixture(t)
	req := &dto.GiveawayUpsertRequest{
		Type:            models.GiveawayTypeRaffle,
		MaxWinners:      5,
		CollabType:      models.CollabTypeReceiveSpots,
		CollabProjectID: "p-beta",
		CollabDuration:  24,
	}
	g, err := f.svc.Create(f.ctx, creator, "alpha", req)
	require.NoError(t, err)

	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, []rule.Rule{nftRule("alpha-holder", "0xa1")}))
	assert.ErrorIs(t, err, ErrProtectedRuleRemoved)

	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, []rule.Rule{guildRule("beta-guild", "g2")}))
	assert.NoError(t, err)
}

func TestUpdate_NotifiesWhenDiscordMessageExists(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	keep := []rule.Rule{guildRule("alpha-guild", "g1"), nftRule("beta-holder", "n1")}

	f.notifier.jobs = nil
	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, keep))
	require.NoError(t, err)
	assert.Empty(t, f.notifier.jobs)

	require.NoError(t, f.db.Model(&models.Giveaway{}).Where("id = ?", g.ID).
		Updates(map[string]interface{}{"discord_channel_id": "chan-9", "discord_message_id": "msg-9"}).Error)

	_, err = f.svc.Update(f.ctx, creator, "alpha", f.editRequest(g, keep))
	require.NoError(t, err)
	assert.Equal(t, []notifications.Job{notifications.GiveawayUpdated(g.Slug, "chan-9", "msg-9")}, f.notifier.jobs)
}

func TestUpdate_LookupFailures(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	req := f.editRequest(g, nil)
	req.ID = ""
	_, err = f.svc.Update(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrGiveawayIDRequired)

	req.ID = "missing"
	_, err = f.svc.Update(f.ctx, creator, "alpha", req)
	assert.ErrorIs(t, err, ErrGiveawayNotFound)

	// Gamma is neither side of the collab.
	_, err = f.svc.Update(f.ctx, creator, "gamma", f.editRequest(g, nil))
	assert.ErrorIs(t, err, ErrGiveawayNotFound)
}

func TestGetBySlug(t *testing.T) {
	f := newFixture(t)
	g, err := f.svc.Create(f.ctx, creator, "alpha", f.giveSpotsRequest("p-beta"))
	require.NoError(t, err)

	got, err := f.svc.GetBySlug(f.ctx, g.Slug)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	require.NotNil(t, got.Project)
	assert.Equal(t, "alpha", got.Project.Slug)

	_, err = f.svc.GetBySlug(f.ctx, "nope")
	assert.ErrorIs(t, err, ErrGiveawayNotFound)
}
