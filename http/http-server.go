package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/develevate/backend/auth"
	"github.com/develevate/backend/contest"
	"github.com/develevate/backend/hackathon"
	"github.com/develevate/backend/judge"
	"github.com/develevate/backend/subm"
)

type HttpServer struct {
	contestSrvc   *contest.ContestSrvc
	hackathonSrvc *hackathon.HackathonSrvc
	judgeSrvc     *judge.JudgeSrvc
	submRepo      subm.Repo
	wsHandler     http.Handler
	router        *chi.Mux
}

func NewHttpServer(
	contestSrvc *contest.ContestSrvc,
	hackathonSrvc *hackathon.HackathonSrvc,
	judgeSrvc *judge.JudgeSrvc,
	submRepo subm.Repo,
	wsHandler http.Handler,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("develevate", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		contestSrvc:   contestSrvc,
		hackathonSrvc: hackathonSrvc,
		judgeSrvc:     judgeSrvc,
		submRepo:      submRepo,
		wsHandler:     wsHandler,
		router:        router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Handler exposes the configured router, mainly for httptest servers.
func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Post("/contests", httpserver.createContest)
	r.Get("/contests", httpserver.listContests)
	r.Get("/contests/{contestId}", httpserver.getContest)
	r.Post("/contests/{contestId}/register", httpserver.registerForContest)
	r.Get("/contests/{contestId}/leaderboard", httpserver.getLeaderboard)
	r.Post("/contests/{contestId}/finalize", httpserver.finalizeContest)
	r.Post("/contests/{contestId}/reopen", httpserver.reopenContest)

	r.Post("/contests/{contestId}/submissions", httpserver.createSubmission)
	r.Get("/contests/{contestId}/submissions", httpserver.listSubmissions)
	r.Get("/submissions/{submId}", httpserver.getSubmission)

	r.Post("/hackathons", httpserver.createHackathon)
	r.Get("/hackathons", httpserver.listHackathons)
	r.Get("/hackathons/{hackathonId}", httpserver.getHackathon)
	r.Post("/hackathons/{hackathonId}/teams", httpserver.createTeam)
	r.Post("/hackathons/{hackathonId}/teams/join", httpserver.joinTeam)
	r.Post("/hackathons/{hackathonId}/finalize-registration", httpserver.finalizeRegistration)
	r.Post("/hackathons/{hackathonId}/submissions", httpserver.submitProject)
	r.Get("/hackathons/{hackathonId}/submissions", httpserver.listProjectSubmissions)
	r.Post("/hackathon-submissions/{submId}/vote", httpserver.voteForSubmission)
	r.Delete("/hackathon-submissions/{submId}/vote", httpserver.withdrawVote)

	r.Get("/languages", httpserver.listLanguages)

	if httpserver.wsHandler != nil {
		r.Get("/ws", httpserver.wsHandler.ServeHTTP)
	}
}
