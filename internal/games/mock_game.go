package games

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/crazyeights/internal/discord"
	"github.com/stretchr/testify/mock"
)

// MockManager implements Manager for testing
type MockManager struct {
	mock.Mock
}

func (m *MockManager) Commands() []*discordgo.ApplicationCommand {
	args := m.Called()
	commands, _ := args.Get(0).([]*discordgo.ApplicationCommand)
	return commands
}

func (m *MockManager) ComponentPrefix() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockManager) HandleCommand(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.Called(s, i)
}

func (m *MockManager) HandleButton(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	m.Called(s, i)
}

// MockFactory implements Factory for testing
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) CreateManager(session discord.SessionHandler) Manager {
	args := m.Called(session)
	return args.Get(0).(Manager)
}
