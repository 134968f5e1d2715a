package chat_test

import (
	"context"
	"errors"

	"github.com/slack-go/slack"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/denwilliams/slack-retro/internal/service/chat"
)

var _ = Describe("SlackPlatform", func() {
	var (
		ctx context.Context
		api *mockSlackAPI
		p   chat.Platform
	)

	BeforeEach(func() {
		ctx = context.Background()
		api = &mockSlackAPI{}
		p = chat.NewSlackPlatform(api)
	})

	Describe("PublishHomeView", func() {
		It("publishes to the user without a hash", func() {
			var gotUser, gotHash string
			api.publishFn = func(_ context.Context, userID string, _ slack.HomeTabViewRequest, hash string) (*slack.ViewResponse, error) {
				gotUser, gotHash = userID, hash
				return &slack.ViewResponse{}, nil
			}

			Expect(p.PublishHomeView(ctx, "U1", slack.HomeTabViewRequest{Type: slack.VTHomeTab})).To(Succeed())
			Expect(gotUser).To(Equal("U1"))
			Expect(gotHash).To(BeEmpty())
		})

		It("wraps API errors", func() {
			boom := errors.New("boom")
			api.publishFn = func(context.Context, string, slack.HomeTabViewRequest, string) (*slack.ViewResponse, error) {
				return nil, boom
			}

			err := p.PublishHomeView(ctx, "U1", slack.HomeTabViewRequest{})
			Expect(err).To(MatchError(boom))
		})
	})

	Describe("OpenModal", func() {
		It("opens with the trigger id", func() {
			var gotTrigger string
			api.openFn = func(_ context.Context, triggerID string, _ slack.ModalViewRequest) (*slack.ViewResponse, error) {
				gotTrigger = triggerID
				return &slack.ViewResponse{}, nil
			}

			Expect(p.OpenModal(ctx, "trig", slack.ModalViewRequest{CallbackID: "x"})).To(Succeed())
			Expect(gotTrigger).To(Equal("trig"))
		})
	})

	Describe("LookupUserName", func() {
		DescribeTable("picks the best available name",
			func(user slack.User, want string) {
				api.userInfoFn = func(context.Context, string) (*slack.User, error) {
					return &user, nil
				}
				name, err := p.LookupUserName(ctx, "U2")
				Expect(err).NotTo(HaveOccurred())
				Expect(name).To(Equal(want))
			},
			Entry("real name", slack.User{RealName: "Bea Baker", Name: "bea"}, "Bea Baker"),
			Entry("handle", slack.User{Name: "bea"}, "bea"),
			Entry("nothing", slack.User{}, "Unknown"),
		)

		It("returns lookup failures", func() {
			api.userInfoFn = func(context.Context, string) (*slack.User, error) {
				return nil, errors.New("user_not_found")
			}
			_, err := p.LookupUserName(ctx, "U2")
			Expect(err).To(HaveOccurred())
		})
	})
})
