package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/develevate/backend/conf"
	"github.com/develevate/backend/contest"
	contestpg "github.com/develevate/backend/contest/pgrepo"
	"github.com/develevate/backend/hackathon"
	hackathonpg "github.com/develevate/backend/hackathon/pgrepo"
	"github.com/develevate/backend/http"
	"github.com/develevate/backend/judge"
	"github.com/develevate/backend/realtime"
	"github.com/develevate/backend/s3bucket"
	submpg "github.com/develevate/backend/subm/pgrepo"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		panic("Error loading .env file")
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), conf.GetPgConnStrFromEnv())
	if err != nil {
		slog.Error("failed to create pg connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	contestRepo := contestpg.NewPgContestRepo(pool)
	submRepo := submpg.NewPgSubmRepo(pool)
	hackathonRepo := hackathonpg.NewPgHackathonRepo(pool)

	contestSrvc := contest.NewContestSrvc(contestRepo, submRepo)
	hackathonSrvc := hackathon.NewHackathonSrvc(hackathonRepo)

	registry := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(registry, slog.Default())
	wsHandler := realtime.NewWsHandler(broadcaster, []byte(jwtKey), slog.Default())

	langs, err := judge.DefaultLanguages()
	if err != nil {
		slog.Error("failed to load language configuration", "error", err)
		os.Exit(1)
	}

	// Artifact archival is optional. Without a bucket the judge skips
	// uploading captured outputs.
	var artifacts judge.ArtifactStore
	if bucketName := os.Getenv("ARTIFACT_S3_BUCKET"); bucketName != "" {
		bucket, err := s3bucket.NewS3Bucket("eu-central-1", bucketName)
		if err != nil {
			slog.Error("failed to init artifact s3 bucket", "error", err)
			os.Exit(1)
		}
		artifacts = bucket
	}

	judgeSrvc := judge.NewJudgeSrvc(
		langs,
		judge.NewLocalRunner(),
		submRepo,
		contestRepo,
		broadcaster,
		artifacts,
	)

	httpServer := http.NewHttpServer(
		contestSrvc,
		hackathonSrvc,
		judgeSrvc,
		submRepo,
		wsHandler,
		[]byte(jwtKey),
	)

	address := ":8080"
	log.Printf("Starting server on %s", address)
	err = httpServer.Start(address)
	log.Printf("Server stopped with error: %v", err)
}
