package game

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/samdwyer/tileroads/internal/route"
	"github.com/samdwyer/tileroads/internal/world"
)

// ErrInvalidConfig is returned when a Config field is out of range.
var ErrInvalidConfig = errors.New("game: invalid configuration")

// EnvPrefix prefixes every environment override, e.g. TILEROADS_WIDTH.
const EnvPrefix = "TILEROADS_"

// Config holds game configuration options.
type Config struct {
	Width, Height int
	TileSize      float64

	// Seed for random number generation. Used for reproducible maps and
	// routes. A seed of 0 means a random seed will be generated.
	Seed int64

	Agents       int
	AgentSpeed   float64 // World units per second
	AgentHeight  float64 // Driving height above the tile
	PlayerHeight float64

	MinPathLength       int // Minimum cells on the player objective route
	MaxAttemptsPerAgent int
	MaxObjectiveStarts  int
	TimeLimit           time.Duration

	// CatalogPath points at a JSON tile catalog. Empty uses the embedded one.
	CatalogPath string
}

// DefaultConfig returns the stock settings: a 10x10 map with three cars
// and a two minute objective.
func DefaultConfig() Config {
	return Config{
		Width:               world.DefaultWidth,
		Height:              world.DefaultHeight,
		TileSize:            world.DefaultTileSize,
		Agents:              3,
		AgentSpeed:          5,
		AgentHeight:         0.5,
		PlayerHeight:        0.5,
		MinPathLength:       5,
		MaxAttemptsPerAgent: route.DefaultMaxAttemptsPerAgent,
		MaxObjectiveStarts:  route.DefaultMaxObjectiveStarts,
		TimeLimit:           120 * time.Second,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %g", ErrInvalidConfig, c.TileSize)
	case c.Agents < 0:
		return fmt.Errorf("%w: agents must not be negative, got %d", ErrInvalidConfig, c.Agents)
	case c.AgentSpeed <= 0:
		return fmt.Errorf("%w: agent speed must be positive, got %g", ErrInvalidConfig, c.AgentSpeed)
	case c.MinPathLength < 1:
		return fmt.Errorf("%w: minimum path length must be positive, got %d", ErrInvalidConfig, c.MinPathLength)
	case c.MaxAttemptsPerAgent < 1:
		return fmt.Errorf("%w: attempts per agent must be positive, got %d", ErrInvalidConfig, c.MaxAttemptsPerAgent)
	case c.MaxObjectiveStarts < 1:
		return fmt.Errorf("%w: objective starts must be positive, got %d", ErrInvalidConfig, c.MaxObjectiveStarts)
	case c.TimeLimit < 0:
		return fmt.Errorf("%w: time limit must not be negative, got %s", ErrInvalidConfig, c.TimeLimit)
	}
	return nil
}

// RouteConfig returns the planner limits derived from c.
func (c Config) RouteConfig() route.Config {
	rc := route.DefaultConfig()
	rc.MaxAttemptsPerAgent = c.MaxAttemptsPerAgent
	rc.GoalResampleAttempts = c.MaxAttemptsPerAgent
	rc.MaxObjectiveStarts = c.MaxObjectiveStarts
	return rc
}

// ApplyEnv overrides fields from TILEROADS_* variables looked up through
// getenv. Unset or empty variables leave the field alone.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	ints := map[string]*int{
		"WIDTH":            &c.Width,
		"HEIGHT":           &c.Height,
		"AGENTS":           &c.Agents,
		"MIN_PATH_LENGTH":  &c.MinPathLength,
		"AGENT_ATTEMPTS":   &c.MaxAttemptsPerAgent,
		"OBJECTIVE_STARTS": &c.MaxObjectiveStarts,
	}
	for name, field := range ints {
		raw := getenv(EnvPrefix + name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, name, raw, err)
		}
		*field = v
	}

	floats := map[string]*float64{
		"TILE_SIZE":    &c.TileSize,
		"AGENT_SPEED":  &c.AgentSpeed,
		"AGENT_HEIGHT": &c.AgentHeight,
	}
	for name, field := range floats {
		raw := getenv(EnvPrefix + name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, name, raw, err)
		}
		*field = v
	}

	if raw := getenv(EnvPrefix + "SEED"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalidConfig, EnvPrefix, raw, err)
		}
		c.Seed = v
	}
	if raw := getenv(EnvPrefix + "TIME_LIMIT"); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: %sTIME_LIMIT=%q: %v", ErrInvalidConfig, EnvPrefix, raw, err)
		}
		c.TimeLimit = v
	}
	if raw := getenv(EnvPrefix + "CATALOG"); raw != "" {
		c.CatalogPath = raw
	}
	return nil
}
