package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	discordmock "github.com/fadedpez/crazyeights/internal/discord/mock"
	"github.com/fadedpez/crazyeights/internal/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	session     *discordmock.SessionHandler
	interaction *discordgo.InteractionCreate
	components  []discordgo.MessageComponent
}

func TestResponseSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) SetupTest() {
	s.session = &discordmock.SessionHandler{}
	s.session.Test(s.T())
	s.interaction = &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:   "test_interaction",
			Type: discordgo.InteractionMessageComponent,
		},
	}
	s.components = []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Draw", Style: discordgo.PrimaryButton, CustomID: "crazyeights_draw"},
			},
		},
	}
}

// respondedWith matches an interaction response of the given type and content
func respondedWith(responseType discordgo.InteractionResponseType, content string, flags discordgo.MessageFlags) interface{} {
	return mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
		return r.Type == responseType && r.Data != nil && r.Data.Content == content && r.Data.Flags == flags
	})
}

func (s *ResponseTestSuite) TestNewResponse() {
	// Execute
	resp := NewResponse("table", s.components)
	ephemeral := NewEphemeralResponse("secret", nil)

	// Assert
	s.Equal("table", resp.Content)
	s.Equal(s.components, resp.Components)
	s.False(resp.Ephemeral)
	s.True(ephemeral.Ephemeral)
}

func (s *ResponseTestSuite) TestNewErrorResponse() {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "plain error",
			err:      errors.New("connection reset"),
			expected: "❌ An error occurred: connection reset",
		},
		{
			name:     "rejected intent",
			err:      types.NewGameError(types.ErrNotPlayerTurn, "It is not your turn"),
			expected: "⏳ It is not your turn",
		},
		{
			name:     "permission denied",
			err:      types.NewGameError(types.ErrPermissionDenied, "Only the player who opened this table can use it"),
			expected: "🚫 Only the player who opened this table can use it",
		},
		{
			name:     "wrapped game error",
			err:      types.WrapError(types.ErrDatabaseError, "failed to save", errors.New("disk full")),
			expected: "💾 failed to save",
		},
		{
			name:     "code without emoji",
			err:      types.NewGameError(types.ErrorCode("SOMETHING_NEW"), "odd"),
			expected: "❌ odd",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Execute
			resp := NewErrorResponse(tc.err)

			// Assert
			s.Equal(tc.expected, resp.Content)
			s.True(resp.Ephemeral, "Errors should only be shown to the user who caused them")
		})
	}
}

func (s *ResponseTestSuite) TestSendGameResponse() {
	// Setup
	s.session.On("InteractionRespond", s.interaction.Interaction,
		respondedWith(discordgo.InteractionResponseChannelMessageWithSource, "table", 0)).Return(nil).Once()

	// Execute
	err := SendGameResponse(s.session, s.interaction, "table", s.components)

	// Assert
	s.NoError(err)
	s.session.AssertExpectations(s.T())
}

func (s *ResponseTestSuite) TestUpdateGameResponse() {
	// Setup
	s.session.On("InteractionRespond", s.interaction.Interaction,
		respondedWith(discordgo.InteractionResponseUpdateMessage, "updated", 0)).Return(nil).Once()

	// Execute
	err := UpdateGameResponse(s.session, s.interaction, "updated", s.components)

	// Assert
	s.NoError(err)
	s.session.AssertExpectations(s.T())
}

func (s *ResponseTestSuite) TestSendErrorResponse() {
	// Setup
	s.session.On("InteractionRespond", s.interaction.Interaction,
		respondedWith(discordgo.InteractionResponseChannelMessageWithSource, "⚠️ game is paused", discordgo.MessageFlagsEphemeral)).
		Return(nil).Once()

	// Execute
	err := SendErrorResponse(s.session, s.interaction, types.NewGameError(types.ErrInvalidState, "game is paused"))

	// Assert
	s.NoError(err)
	s.session.AssertExpectations(s.T())
}

func (s *ResponseTestSuite) TestRespondFailure() {
	// Setup
	s.session.On("InteractionRespond", mock.Anything, mock.Anything).Return(errors.New("unknown interaction"))

	// Execute
	err := UpdateGameResponse(s.session, s.interaction, "updated", nil)

	// Assert
	s.Error(err)
}

func (s *ResponseTestSuite) TestEditMessage() {
	// Setup
	s.session.On("ChannelMessageEditComplex", mock.MatchedBy(func(m *discordgo.MessageEdit) bool {
		return m.Channel == "channel-1" && m.ID == "message-1" &&
			m.Content != nil && *m.Content == "opponent moved" &&
			m.Components != nil && len(*m.Components) == 1
	})).Return(&discordgo.Message{ID: "message-1"}, nil).Once()

	// Execute
	err := EditMessage(s.session, "channel-1", "message-1", "opponent moved", s.components)

	// Assert
	s.NoError(err)
	s.session.AssertExpectations(s.T())
}

func (s *ResponseTestSuite) TestUserID() {
	testCases := []struct {
		name        string
		interaction *discordgo.InteractionCreate
		expected    string
	}{
		{
			name: "guild member",
			interaction: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
				Member: &discordgo.Member{User: &discordgo.User{ID: "member-1"}},
			}},
			expected: "member-1",
		},
		{
			name: "direct message",
			interaction: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
				User: &discordgo.User{ID: "user-1"},
			}},
			expected: "user-1",
		},
		{
			name:        "no user",
			interaction: &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}},
			expected:    "",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, UserID(tc.interaction))
		})
	}
}
