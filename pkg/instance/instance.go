package instance

import "os"

// GetID identifies this process in logs. Heroku's DYNO wins over
// LAUNDRYPRO_INSTANCE_ID; local runs report "local".
func GetID() string {
	for _, key := range []string{"DYNO", "LAUNDRYPRO_INSTANCE_ID"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
