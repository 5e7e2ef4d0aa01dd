/*
Copyright 2025 Concilia Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/rmachado/concilia"
	"github.com/rmachado/concilia/config"
	"github.com/rmachado/concilia/internal/cache"
	"github.com/rmachado/concilia/internal/notification"
	redis_db "github.com/rmachado/concilia/internal/redis-db"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Concilia represents the CLI application, encapsulating the root Cobra command.
type Concilia struct {
	cmd *cobra.Command
}

// conciliaInstance holds the engine instance and its configuration.
type conciliaInstance struct {
	concilia *concilia.Concilia
	cnf      *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun sets up the configuration and initializes the engine before
// running any command.
func preRun(app *conciliaInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("concilia.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		engine, err := setupConcilia(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.concilia = engine
		app.cnf = cnf

		return nil
	}
}

// setupConcilia creates an engine from the configuration. The report
// cache is optional: with no Redis configured, reports live in process
// only.
func setupConcilia(cfg *config.Configuration) (*concilia.Concilia, error) {
	if cfg.Redis.Dns == "" {
		log.Println("no redis configured, reports will be held in memory only")
		return concilia.NewConcilia(nil, nil), nil
	}

	reportCache, err := cache.NewCache()
	if err != nil {
		return nil, fmt.Errorf("error connecting report cache: %v", err)
	}
	redisClient, err := redis_db.NewRedisClient([]string{fmt.Sprintf("redis://%s", cfg.Redis.Dns)})
	if err != nil {
		return nil, fmt.Errorf("error connecting redis: %v", err)
	}
	return concilia.NewConcilia(reportCache, redisClient.Client()), nil
}

// NewCLI creates the command-line interface for the application.
func NewCLI() *Concilia {
	var configFile string
	b := &conciliaInstance{}

	var rootCmd = &cobra.Command{
		Use:   "concilia",
		Short: "SPC import reconciliation",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./concilia.json", "Configuration file for concilia")

	rootCmd.PersistentPreRunE = preRun(b)

	rootCmd.AddCommand(serverCommands(b))
	rootCmd.AddCommand(reconcileCommands(b))
	rootCmd.AddCommand(configCommands())

	return &Concilia{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w Concilia) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
