package sea

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/plunder/internal/island"
)

// GenConfig holds chart generation parameters.
type GenConfig struct {
	Radius     int     `yaml:"radius"`      // Hex grid radius
	Seed       int64   `yaml:"seed"`        // Random seed (0 = random)
	SeaLevel   float64 `yaml:"sea_level"`   // Elevation an island peak must exceed (0.0–1.0)
	MinSpacing int     `yaml:"min_spacing"` // Minimum hex distance between islands
	MaxMoney   float64 `yaml:"max_money"`
	MaxMarines int     `yaml:"max_marines"`
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:     18,
		Seed:       0,
		SeaLevel:   0.55,
		MinSpacing: 3,
		MaxMoney:   island.RandomMaxMoney,
		MaxMarines: island.RandomMaxMarines,
	}
}

// SmallTestConfig returns a tiny chart for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:     6,
		Seed:       42,
		SeaLevel:   0.5,
		MinSpacing: 2,
		MaxMoney:   200,
		MaxMarines: 60,
	}
}

// Site is an island placed on the chart.
type Site struct {
	Coord     HexCoord
	Elevation float64
	Island    *island.Island
}

// Chart is a generated sea.
type Chart struct {
	Radius int
	Seed   int64
	Sites  []Site
}

// Islands returns the charted islands in placement order.
func (c *Chart) Islands() []*island.Island {
	out := make([]*island.Island, len(c.Sites))
	for i, s := range c.Sites {
		out[i] = s.Island
	}
	return out
}

// Generate charts a sea. Islands rise at elevation peaks above sea level;
// their money follows a treasure layer and their marines a garrison layer,
// so rich waters tend to be well defended. Output is deterministic for a
// non-zero seed.
func Generate(cfg GenConfig, names []string) *Chart {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	elevNoise := opensimplex.NewNormalized(seed)
	treasureNoise := opensimplex.NewNormalized(seed + 1)
	garrisonNoise := opensimplex.NewNormalized(seed + 2)

	elevation := make(map[HexCoord]float64)
	var coords []HexCoord
	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if max(abs(q), abs(r), abs(coord.S())) > cfg.Radius {
				continue
			}
			x, y := cartesian(coord)
			elevation[coord] = octaveNoise(elevNoise, x, y, 4, 0.15, 0.5)
			coords = append(coords, coord)
		}
	}

	namer := NewNamer(names, rand.New(rand.NewSource(seed+200)))
	chart := &Chart{Radius: cfg.Radius, Seed: seed}

	for _, coord := range coords {
		elev := elevation[coord]
		if elev <= cfg.SeaLevel || !isPeak(elevation, coord) {
			continue
		}
		if tooClose(coord, chart.Sites, cfg.MinSpacing) {
			continue
		}

		x, y := cartesian(coord)
		treasure := octaveNoise(treasureNoise, x, y, 3, 0.08, 0.5)
		garrison := octaveNoise(garrisonNoise, x, y, 3, 0.1, 0.5)

		// Higher peaks hold more; garrisons lean toward the treasure.
		height := (elev - cfg.SeaLevel) / (1 - cfg.SeaLevel)
		money := math.Round(cfg.MaxMoney*treasure*(0.5+0.5*height)*100) / 100
		marines := int(math.Round(float64(cfg.MaxMarines) * garrison * (0.4 + 0.6*treasure)))

		isl, err := island.New(namer.Next(), money, marines)
		if err != nil {
			continue
		}
		chart.Sites = append(chart.Sites, Site{Coord: coord, Elevation: elev, Island: isl})
	}

	return chart
}

// Reinforcements creates n islands with random holdings and unique names.
func Reinforcements(rng *rand.Rand, n int, namer *Namer) []*island.Island {
	out := make([]*island.Island, 0, n)
	for i := 0; i < n; i++ {
		isl := island.Random(rng, nil)
		isl.Name = namer.Next()
		out = append(out, isl)
	}
	return out
}

// cartesian converts axial coordinates to continuous space for noise sampling.
func cartesian(c HexCoord) (x, y float64) {
	return float64(c.Q) + float64(c.R)*0.5, float64(c.R) * math.Sqrt(3.0) / 2.0
}

func isPeak(elevation map[HexCoord]float64, coord HexCoord) bool {
	elev := elevation[coord]
	for _, nc := range coord.Neighbors() {
		if ne, ok := elevation[nc]; ok && ne > elev {
			return false
		}
	}
	return true
}

func tooClose(coord HexCoord, existing []Site, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
