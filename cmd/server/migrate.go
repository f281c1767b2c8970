package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repair_workorder/pkg/db"
)

func migrateCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "执行或回退数据库迁移",
		Long: `执行数据库迁移。

  workorder migrate          应用全部未执行的迁移
  workorder migrate down -n 1 回退最近一个版本`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			cfg, zapLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			gormDB, err := db.NewDB(cfg.Database, zapLogger)
			if err != nil {
				return err
			}
			defer db.Close(gormDB, zapLogger)

			switch direction {
			case "up":
				status, err := db.RunMigrations(gormDB, cfg.Database.Driver, zapLogger)
				if err != nil {
					return err
				}
				state := color.New(color.FgBlue).Sprint("UNCHANGED")
				if status.Changed {
					state = color.New(color.FgGreen).Sprint("MIGRATED")
				}
				if status.Dirty {
					state = color.New(color.FgRed).Sprint("DIRTY")
				}
				fmt.Printf("%s version %d\n", state, status.Version)
			case "down":
				if err := db.RollbackMigrations(gormDB, cfg.Database.Driver, steps, zapLogger); err != nil {
					return err
				}
				fmt.Printf("%s %d step(s)\n", color.New(color.FgYellow).Sprint("ROLLED BACK"), steps)
			default:
				return fmt.Errorf("未知的迁移方向: %q (可选 up, down)", direction)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "down 时回退的版本数")
	return cmd
}
