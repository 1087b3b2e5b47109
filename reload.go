package sitesync

import (
	"github.com/rs/zerolog/log"

	"github.com/statichost/site-sync/config"
)

// Reload refreshes all configuration keys from viper.
func Reload() {
	if reloadedKeys := config.Reload(); reloadedKeys != nil {
		for k := range reloadedKeys {
			if reloadedKeys[k].Error != nil {
				log.Error().
					Err(reloadedKeys[k].Error).
					Str("key", reloadedKeys[k].Key).
					Interface("oldValue", reloadedKeys[k].OldValue).
					Interface("newValue", reloadedKeys[k].NewValue).
					Msg("Failed to load configuration key, ignoring")
			}
		}
	}
}
