package island

import "math/rand"

// Random generation bounds.
const (
	RandomMaxMoney   = 500.0
	RandomMaxMarines = 300
)

var defaultNames = []string{
	"Dawn Island",
	"Shimotsuki Village",
	"Gecko Islands",
	"Baratie",
	"Conomi Islands",
	"Drum Island",
	"Water 7",
	"Ohara",
	"Thriller Bark",
	"Fish-Man Island",
	"Zou",
	"Wano Country",
	"Arabasta Kingdom",
	"Loguetown",
	"Cactus Island",
	"Little Garden",
	"Jaya",
	"Skypeia",
	"Long Ring Long Land",
	"Enies Lobby",
	"Sabaody Archipelago",
	"Impel Down",
	"Marineford",
	"Punk Hazard",
	"Dressrosa",
	"Whole Cake Island",
}

// DefaultNames returns a copy of the built-in island name table.
func DefaultNames() []string {
	names := make([]string, len(defaultNames))
	copy(names, defaultNames)
	return names
}

// Random creates an island with a name drawn from names, money in
// [0, RandomMaxMoney) and marines in [0, RandomMaxMarines].
// An empty table falls back to DefaultNames.
func Random(rng *rand.Rand, names []string) *Island {
	if len(names) == 0 {
		names = defaultNames
	}
	name := names[rng.Intn(len(names))]
	i := &Island{Name: name}
	i.Reset(rng.Float64()*RandomMaxMoney, rng.Intn(RandomMaxMarines+1))
	return i
}
