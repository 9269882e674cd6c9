// Command seed fills the configured store with demo records.
// Records go through students.Service, so scores are computed as usual.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/config"
	"github.com/Spok95/fitness-tracker/internal/db"
	"github.com/Spok95/fitness-tracker/internal/logging"
	"github.com/Spok95/fitness-tracker/internal/students"
)

func main() {
	n := flag.Int("n", 15, "number of random students")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	noDemo := flag.Bool("no-demo", false, "skip the three fixed demo students")
	flag.Parse()

	if err := config.LoadDotenv(); err != nil {
		log.Println("Не удалось загрузить .env:", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DBDriver == db.DriverMemory {
		log.Fatal("DB_DRIVER=memory: nothing to seed, data would be lost on exit")
	}
	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, closeStore, err := db.OpenStore(ctx, cfg.DBDriver, cfg.DatabaseURL, lg.Named("db"))
	if err != nil {
		lg.Base.Fatal("store", zap.Error(err))
	}
	defer closeStore()

	svc := students.NewService(store, lg.Named("seed"))
	rng := rand.New(rand.NewSource(*seed))

	var batch []db.SeedStudent
	for i := 0; i < *n; i++ {
		batch = append(batch, db.RandomStudent(rng))
	}
	if !*noDemo {
		batch = append(batch, db.DemoStudents()...)
	}

	created := 0
	for _, s := range batch {
		st, err := svc.Create(ctx, students.Input{Name: s.Name, Measurement: s.Measurement})
		if err != nil {
			lg.Base.Error("seed student", zap.String("name", s.Name), zap.Error(err))
			continue
		}
		created++
		lg.Sugar.Infof("#%d %s: %.2f %s", st.ID, st.Name, st.Score, st.Level)
	}
	lg.Base.Info("seed done", zap.Int("created", created), zap.Int64("seed", *seed))
}
