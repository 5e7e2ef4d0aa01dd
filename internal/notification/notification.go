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

package notification

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rmachado/concilia/config"
	"github.com/rmachado/concilia/internal/request"
	"github.com/sirupsen/logrus"
)

// SlackNotification posts a message to the configured Slack webhook.
func SlackNotification(header, body string) {
	// Header and body may carry newlines; encode them as JSON strings.
	headerJSON, _ := json.Marshal(header)
	bodyJSON, _ := json.Marshal(body)
	timeJSON, _ := json.Marshal(fmt.Sprintf("*Time:*\n%v", time.Now().Format(time.RFC822)))

	data := json.RawMessage(fmt.Sprintf(`{
		"blocks": [
			{
				"type": "header",
				"text": {
					"type": "plain_text",
					"text": %s,
					"emoji": true
				}
			},
			{
				"type": "section",
				"fields": [
					{
						"type": "mrkdwn",
						"text": %s
					},
					{
						"type": "mrkdwn",
						"text": %s
					}
				]
			}
		]
	}`, headerJSON, bodyJSON, timeJSON))

	conf, err := config.Fetch()
	if err != nil {
		log.Println(err)
		return
	}

	payload, err := request.ToJsonReq(&data)
	if err != nil {
		log.Println(err)
		return
	}

	req, err := http.NewRequest("POST", conf.Notification.Slack.WebhookUrl, payload)
	if err != nil {
		log.Println(err)
		return
	}

	var response map[string]interface{}
	_, err = request.Call(req, &response)
	if err != nil {
		log.Println(err)
	}
}

// NotifyError logs the error locally and, when Slack is configured,
// reports it to the webhook. Runs asynchronously to avoid blocking.
func NotifyError(systemError error) {
	go func(systemError error) {
		logrus.Error(systemError)

		conf, err := config.Fetch()
		if err != nil {
			log.Println(err)
			return
		}

		if conf.Notification.Slack.WebhookUrl != "" {
			SlackNotification("Error From Concilia 🐞", fmt.Sprintf("*Error:*\n%v", systemError))
		}
	}(systemError)
}

// NotifyDataQuality alerts operators that a reconciliation run carried
// data-quality warnings: malformed notes or duplicated note keys that
// were excluded from matching.
func NotifyDataQuality(importBatchID string, malformedCount, duplicateCount int) {
	go func() {
		logrus.Warnf("batch %s finished with %d malformed notes and %d duplicate keys",
			importBatchID, malformedCount, duplicateCount)

		conf, err := config.Fetch()
		if err != nil {
			log.Println(err)
			return
		}

		if conf.Notification.Slack.WebhookUrl != "" {
			SlackNotification("Data-quality issues in import batch",
				fmt.Sprintf("*Batch:*\n%s\n*Malformed notes:* %d\n*Duplicate keys:* %d",
					importBatchID, malformedCount, duplicateCount))
		}
	}()
}
