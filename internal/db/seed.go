package db

import (
	"fmt"
	"math/rand"

	"github.com/Spok95/fitness-tracker/internal/fitness"
)

// SeedStudent is demo input; score and level are computed by the caller.
type SeedStudent struct {
	Name        string
	Measurement fitness.Measurement
}

var (
	firstNames = []string{"Ahmad", "Siti", "Budi", "Dewi", "Rizky", "Putri", "Agus", "Nur", "Fajar", "Indah", "Bayu", "Ayu", "Dimas", "Rina", "Hendra"}
	lastNames  = []string{"Santoso", "Wijaya", "Pratama", "Lestari", "Saputra", "Hidayat", "Kusuma", "Nugroho", "Rahmawati", "Setiawan"}
)

// RandomStudent draws a measurement from the ranges used for demo data.
func RandomStudent(rng *rand.Rand) SeedStudent {
	name := fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))])
	return SeedStudent{
		Name: name,
		Measurement: fitness.Measurement{
			Age:         between(rng, 16, 25),
			Height:      float64(between(rng, 150, 190)),
			Weight:      float64(between(rng, 45, 90)),
			RunningTime: fitness.Round2(6 + rng.Float64()*12),
			SitUps:      between(rng, 10, 60),
			PushUps:     between(rng, 5, 40),
		},
	}
}

// DemoStudents: фиксированные примеры для демонстрации всех трёх уровней.
func DemoStudents() []SeedStudent {
	return []SeedStudent{
		{Name: "Ahmad Fitri", Measurement: fitness.Measurement{Age: 18, Height: 175, Weight: 65, RunningTime: 7.5, SitUps: 45, PushUps: 30}},
		{Name: "Siti Aminah", Measurement: fitness.Measurement{Age: 17, Height: 160, Weight: 55, RunningTime: 9.2, SitUps: 35, PushUps: 20}},
		{Name: "Budi Santoso", Measurement: fitness.Measurement{Age: 19, Height: 180, Weight: 85, RunningTime: 12.0, SitUps: 25, PushUps: 15}},
	}
}

func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
