package sample

// Option applies a configuration option to the generator.
type Option func(*generator)

// WithEntities sets the number of simulated entities.
func WithEntities(n int) Option {
	return func(g *generator) {
		if n > 0 {
			g.entities = n
		}
	}
}

// WithEpisodes sets the number of episodes.
func WithEpisodes(n int) Option {
	return func(g *generator) {
		if n > 0 {
			g.episodes = n
		}
	}
}

// WithSteps sets the number of snapshots per episode.
func WithSteps(n int) Option {
	return func(g *generator) {
		if n > 0 {
			g.steps = n
		}
	}
}

// WithSeed sets the random seed. Equal seeds give equal trajectories.
func WithSeed(seed uint64) Option {
	return func(g *generator) {
		g.seed = seed
	}
}

// WithPaths sets where positions and feature values are stored in each
// snapshot. Segments are separated by '/' or '.'.
func WithPaths(coordinates, feature string) Option {
	return func(g *generator) {
		if coordinates != "" {
			g.coordinates = coordinates
		}
		if feature != "" {
			g.feature = feature
		}
	}
}

// WithCenter sets the point entities are scattered around, in degrees.
func WithCenter(lat, lon float64) Option {
	return func(g *generator) {
		g.center = [2]float64{lat, lon}
	}
}
