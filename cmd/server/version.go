package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goversion "github.com/hashicorp/go-version"
	"go.uber.org/zap"

	"github.com/forkful/saucier/internal/server"
)

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// checkForUpdates compares the running build against the latest GitHub
// release. Failures are silent; this is best-effort.
func checkForUpdates(logger *zap.Logger) {
	url := "https://api.github.com/repos/forkful/saucier/releases/latest"

	client := http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return
	}

	current, err := goversion.NewVersion(server.Version)
	if err != nil {
		return
	}
	latest, err := goversion.NewVersion(release.TagName)
	if err != nil {
		return
	}

	if current.LessThan(latest) {
		logger.Warn(fmt.Sprintf("running outdated version %s, latest is %s",
			server.Version, release.TagName))
	}
}
