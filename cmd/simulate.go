package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoistlab/liftcore/config"
	"github.com/hoistlab/liftcore/core/dispatch"
	"github.com/hoistlab/liftcore/infra/logger"
	"github.com/hoistlab/liftcore/simulator"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless scenario and print statistics",
	RunE:  simulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func simulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	scn := cfg.Scenario
	scn.Cars = cfg.Building.Cars
	scn.Floors = cfg.Building.Floors
	scn.Capacity = cfg.Building.Capacity
	engine, err := simulator.New(scn, logger.New("engine"))
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	mgr, err := dispatch.NewManager(cfg.Dispatch, engine, nil, nil, logger.New("dispatch"))
	if err != nil {
		return fmt.Errorf("dispatch manager: %w", err)
	}
	engine.Bind(mgr)

	stats, err := engine.Run()
	if err != nil {
		return err
	}
	fmt.Println(stats)

	fleet, err := mgr.FleetCopy()
	if err != nil {
		return err
	}
	for _, car := range fleet.Cars {
		fmt.Printf("car %d: floor %d state %s traveled %d floors\n",
			car.ID, car.Floor, car.State, stats.FloorsTraveled[car.ID])
	}
	return nil
}
