package service_test

import (
	"context"
	"errors"

	"github.com/slack-go/slack"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/model"
	"github.com/denwilliams/slack-retro/internal/service"
	"github.com/denwilliams/slack-retro/internal/service/chat"
)

type failingResolver struct{ err error }

func (r failingResolver) ForTeam(context.Context, string) (chat.Platform, error) {
	return nil, r.err
}

var _ = Describe("HomeService", func() {
	var (
		ctx      context.Context
		retros   *mockRetroService
		platform *mockPlatform
		home     service.HomeService
	)

	BeforeEach(func() {
		ctx = context.Background()
		retros = &mockRetroService{}
		platform = &mockPlatform{}
		home = service.NewHomeService(retros, chat.StaticResolver{Platform: platform})
	})

	It("publishes the team's board to the viewer", func() {
		var gotTeam string
		retros.boardFn = func(_ context.Context, teamID string) (*service.Board, error) {
			gotTeam = teamID
			return &service.Board{
				DiscussionItems: []model.DiscussionItem{{ID: 1, UserID: "U1", UserName: "al", Category: model.CategoryGood, Content: "ship it"}},
			}, nil
		}

		Expect(home.Publish(ctx, "T1", "U1")).To(Succeed())
		Expect(gotTeam).To(Equal("T1"))
		Expect(platform.published).To(Equal([]string{"U1"}))
		Expect(platform.lastHomeView.Type).To(Equal(slack.VTHomeTab))
		Expect(platform.lastHomeView.Blocks.BlockSet).NotTo(BeEmpty())
	})

	It("does not publish when the board cannot be loaded", func() {
		retros.boardFn = func(context.Context, string) (*service.Board, error) {
			return nil, errors.New("db down")
		}

		Expect(home.Publish(ctx, "T1", "U1")).To(MatchError(ContainSubstring("loading board")))
		Expect(platform.published).To(BeEmpty())
	})

	It("returns resolver failures", func() {
		home = service.NewHomeService(retros, failingResolver{err: errors.New("no token")})
		Expect(home.Publish(ctx, "T1", "U1")).To(MatchError("no token"))
	})

	It("returns publish failures", func() {
		platform.publishFn = func(context.Context, string, slack.HomeTabViewRequest) error {
			return errors.New("not_authed")
		}
		Expect(home.Publish(ctx, "T1", "U1")).To(MatchError("not_authed"))
	})
})
