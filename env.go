package cursorfx

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultEnvPrefix prefixes every environment variable read by PolicyFromEnv
// and ForcesFromEnv, e.g. CURSORFX_SPAWN_PROBABILITY or CURSORFX_BURST_MAX.
const DefaultEnvPrefix = "CURSORFX_"

// PolicyFromEnv starts from base and overrides the fields whose variables are
// set. The result is validated.
func PolicyFromEnv(base Policy, prefix string) (Policy, error) {
	p := base
	if err := parseEnv(&p, prefix); err != nil {
		return Policy{}, err
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// ForcesFromEnv starts from base and overrides the fields whose variables are set.
func ForcesFromEnv(base Forces, prefix string) (Forces, error) {
	f := base
	if err := parseEnv(&f, prefix); err != nil {
		return Forces{}, err
	}
	return f, nil
}

func parseEnv(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
