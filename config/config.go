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

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "5003"

	// DefaultToleranceCents is the billed-value tolerance used when the
	// config does not set one. One centavo absorbs rounding drift
	// between the SPC extract and the billing store.
	DefaultToleranceCents = 1

	DefaultPageSize = 50

	// DefaultSuggestionMaxDistance bounds the edit distance for
	// near-match hints over exclusive notes. Zero disables them.
	DefaultSuggestionMaxDistance = 2
)

var ConfigStore atomic.Value

type ServerConfig struct {
	Secure    bool   `json:"secure" envconfig:"CONCILIA_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"CONCILIA_SERVER_SECRET_KEY"`
	Port      string `json:"port" envconfig:"CONCILIA_SERVER_PORT"`
}

type RedisConfig struct {
	Dns string `json:"dns" envconfig:"CONCILIA_REDIS_DNS"`
}

type ReconciliationConfig struct {
	ToleranceCents        int64 `json:"tolerance_cents" envconfig:"CONCILIA_TOLERANCE_CENTS"`
	DefaultPageSize       int   `json:"default_page_size" envconfig:"CONCILIA_DEFAULT_PAGE_SIZE"`
	SuggestionMaxDistance int   `json:"suggestion_max_distance" envconfig:"CONCILIA_SUGGESTION_MAX_DISTANCE"`
	ReportCacheTTLMinutes int   `json:"report_cache_ttl_minutes" envconfig:"CONCILIA_REPORT_CACHE_TTL_MINUTES"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"CONCILIA_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	Slack SlackWebhook `json:"slack"`
}

type Configuration struct {
	ProjectName    string               `json:"project_name" envconfig:"CONCILIA_PROJECT_NAME"`
	Server         ServerConfig         `json:"server"`
	Redis          RedisConfig          `json:"redis"`
	Reconciliation ReconciliationConfig `json:"reconciliation"`
	Notification   Notification         `json:"notification"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("concilia", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called concilia.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Concilia Server"
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Reconciliation.ToleranceCents < 0 {
		return errors.New("reconciliation tolerance must be non-negative")
	}
	if cnf.Reconciliation.ToleranceCents == 0 {
		cnf.Reconciliation.ToleranceCents = DefaultToleranceCents
	}

	if cnf.Reconciliation.DefaultPageSize <= 0 {
		cnf.Reconciliation.DefaultPageSize = DefaultPageSize
	}

	// A negative value disables suggestions; zero means "use default".
	if cnf.Reconciliation.SuggestionMaxDistance == 0 {
		cnf.Reconciliation.SuggestionMaxDistance = DefaultSuggestionMaxDistance
	} else if cnf.Reconciliation.SuggestionMaxDistance < 0 {
		cnf.Reconciliation.SuggestionMaxDistance = 0
	}

	if cnf.Reconciliation.ReportCacheTTLMinutes <= 0 {
		cnf.Reconciliation.ReportCacheTTLMinutes = 60
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	_ = mockConfig.validateAndAddDefaults()
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
