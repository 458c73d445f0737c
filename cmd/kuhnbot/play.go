package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kuhnlab/kuhnbot/cmd/kuhnbot/shared"
	"github.com/kuhnlab/kuhnbot/internal/bot"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"github.com/kuhnlab/kuhnbot/internal/tui"
)

type PlayCmd struct {
	Bot   string `kong:"default='heuristic',enum='random,heuristic',help='Opponent bot type'"`
	Seat  int    `kong:"default='0',help='Your seat: 0 acts first, 1 acts second'"`
	Hands int    `kong:"default='0',help='Number of hands to play (0 = until quit)'"`
	Seed  *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	if c.Seat != 0 && c.Seat != 1 {
		return fmt.Errorf("seat must be 0 or 1, got %d", c.Seat)
	}

	seed := randutil.TimeSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)

	opponent, err := bot.New(c.Bot, rng)
	if err != nil {
		return err
	}

	logger.Debug("starting play session", "bot", c.Bot, "seat", c.Seat, "seed", seed)

	model := tui.New(opponent, rng, contract.Player(c.Seat), c.Hands, logger)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("play session failed: %w", err)
	}
	return nil
}
