package main

import (
	"fmt"
	"time"

	"github.com/kuhnlab/kuhnbot/cmd/kuhnbot/shared"
	"github.com/kuhnlab/kuhnbot/internal/bot"
	"github.com/kuhnlab/kuhnbot/internal/contract"
	"github.com/kuhnlab/kuhnbot/internal/randutil"
	"github.com/kuhnlab/kuhnbot/internal/simulator"
)

type SimulateCmd struct {
	Hands     int    `kong:"default='1000',help='Number of hands to play'"`
	Seat0     string `kong:"name='seat0',default='heuristic',enum='random,heuristic',help='Bot for seat 0 (acts first)'"`
	Seat1     string `kong:"name='seat1',default='random',enum='random,heuristic',help='Bot for seat 1'"`
	Seed      int64  `kong:"default='7',help='Run seed; hand n plays with seed+n'"`
	TimeoutMs int    `kong:"default='5000',help='Per-hand timeout in milliseconds'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	agentRng := randutil.New(c.Seed)
	p0, err := bot.New(c.Seat0, agentRng)
	if err != nil {
		return err
	}
	p1, err := bot.New(c.Seat1, agentRng)
	if err != nil {
		return err
	}

	sim := simulator.New(simulator.Config{
		Hands:   c.Hands,
		Seed:    c.Seed,
		Timeout: time.Duration(c.TimeoutMs) * time.Millisecond,
		Logger:  logger,
	}, p0, p1)

	ctx := shared.SetupSignalHandler(logger)
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Hands: %d\n", stats.Hands)
	fmt.Printf("%s (%s) mean return: %+.3f ± %.3f chips/hand\n",
		contract.Player0, c.Seat0, stats.Mean(contract.Player0), stats.StdDev(contract.Player0))
	fmt.Printf("%s (%s) mean return: %+.3f ± %.3f chips/hand\n",
		contract.Player1, c.Seat1, stats.Mean(contract.Player1), stats.StdDev(contract.Player1))
	fmt.Printf("Showdown rate: %.1f%%, largest pot: %d chips\n",
		stats.ShowdownRate()*100, stats.MaxPot)
	return nil
}
