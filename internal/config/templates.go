package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "skemadump":
		return skemadumpTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const skemadumpTemplate = `location = "Europe/Copenhagen"
max_depth = 512
mode = "schedule"
output = "text"

# Extra classes. decoder is a built-in routine name, alias maps onto a
# registered class.
[[types]]
class = "dk.uddata.model.skema.SkemaBegivenhedMinutter"
decoder = "event_minutes"

[[types]]
class = "dk.uddata.model.skema.SkemaBegivenhed$LokaleISkema"
alias = "dk.uddata.model.skema.SkemaBegivenhed$LokalerISkema"
`
